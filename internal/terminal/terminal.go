// Package terminal is the in-window chat bar: a line editor whose submitted lines either run
// a "cmd ..." command or go to the gallery guide.
package terminal

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"hark-back/internal/commands"
	"hark-back/internal/logger"
)

// Asker answers a natural-language line (the guide). It runs on its own goroutine.
type Asker func(ctx context.Context, line string) (string, error)

// Terminal holds the bar's state. It is shown and hidden with Toggle; while open it owns the
// keyboard and OnOpen/OnClose let the gallery suspend and resume its own key handling.
// Lines starting with "cmd " are executed via the registry; other lines go to Ask.
type Terminal struct {
	log *logger.Logger
	reg *commands.Registry

	// OnOpen and OnClose run on the caller's goroutine when the bar changes visibility.
	OnOpen  func()
	OnClose func()
	// Ask, if set, receives natural-language lines.
	Ask Asker

	mu      sync.Mutex
	open    bool
	input   string
	pending int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New returns a closed terminal that logs lines and runs "cmd ..." through reg.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	ctx, cancel := context.WithCancel(context.Background())
	return &Terminal{log: log, reg: reg, ctx: ctx, cancel: cancel}
}

// IsOpen reports whether the bar is visible and capturing input.
func (t *Terminal) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

// Toggle opens or closes the bar.
func (t *Terminal) Toggle() {
	t.mu.Lock()
	t.open = !t.open
	open := t.open
	t.mu.Unlock()

	if open && t.OnOpen != nil {
		t.OnOpen()
	}
	if !open && t.OnClose != nil {
		t.OnClose()
	}
}

// Input returns the line being typed.
func (t *Terminal) Input() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.input
}

// Waiting reports whether a guide answer is outstanding.
func (t *Terminal) Waiting() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending > 0
}

// Type appends text (typed runes or a paste). Newlines are dropped.
func (t *Terminal) Type(text string) {
	text = strings.NewReplacer("\r", "", "\n", " ").Replace(text)
	t.mu.Lock()
	t.input += text
	t.mu.Unlock()
}

// Backspace removes the last rune.
func (t *Terminal) Backspace() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.input == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(t.input)
	t.input = t.input[:len(t.input)-size]
}

// Submit takes the typed line and dispatches it. Commands run synchronously; guide questions
// run on a goroutine and their answer is logged when it arrives.
func (t *Terminal) Submit() {
	t.mu.Lock()
	line := strings.TrimSpace(t.input)
	t.input = ""
	t.mu.Unlock()
	if line == "" {
		return
	}
	t.log.Log("you> " + line)

	if args, isCmd := commands.Parse(line); isCmd {
		if err := t.reg.Execute(args); err != nil {
			t.log.Log(err.Error())
		}
		return
	}
	if t.Ask == nil {
		t.log.Log("(no guide configured; try \"cmd help\")")
		return
	}

	t.mu.Lock()
	t.pending++
	t.mu.Unlock()
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer func() {
			t.mu.Lock()
			t.pending--
			t.mu.Unlock()
		}()
		reply, err := t.Ask(t.ctx, line)
		if err != nil {
			t.log.Log("guide error: " + err.Error())
			return
		}
		t.log.Log("guide> " + reply)
	}()
}

// Close cancels outstanding guide requests and waits for them to finish.
func (t *Terminal) Close() {
	t.cancel()
	t.wg.Wait()
}
