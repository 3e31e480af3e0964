package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultFilePath is the JSON log sink, relative to the working directory.
const DefaultFilePath = "logs/gallery.log"

// MaxLines caps the in-memory transcript; older lines stay in the file sink only.
const MaxLines = 500

// Options selects where structured logs go and at what level.
type Options struct {
	// File is the JSON sink path. Empty means DefaultFilePath; "-" means stderr.
	File string
	// Level is a zap level name ("debug", "info", "warn", "error"). Empty means info.
	Level string
	// Verbose forces debug regardless of Level.
	Verbose bool
}

// Logger is the structured logger plus an in-memory transcript of chat lines that the
// terminal overlay draws. Each transcript entry is also written to the structured sink.
type Logger struct {
	*zap.Logger

	mu    sync.Mutex
	lines []string
}

// New builds a production zap logger writing JSON to opts.File, creating its directory.
func New(opts Options) (*Logger, error) {
	path := opts.File
	if path == "" {
		path = DefaultFilePath
	}
	config := zap.NewProductionConfig()
	if opts.Level != "" {
		level, err := zap.ParseAtomicLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		config.Level = level
	}
	if opts.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if path == "-" {
		config.OutputPaths = []string{"stderr"}
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		config.OutputPaths = []string{path}
	}
	z, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return Wrap(z), nil
}

// Wrap adapts an existing zap logger (tests pass zaptest loggers here).
func Wrap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{Logger: z, lines: make([]string, 0)}
}

// Log appends a line to the transcript, prefixed with [timestamp].
func (l *Logger) Log(line string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if over := len(l.lines) - MaxLines; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	l.mu.Unlock()

	l.Info("transcript", zap.String("line", line))
}

// Lines returns a copy of the last MaxLines transcript lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
