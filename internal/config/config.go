package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"hark-back/internal/empathy"
	"hark-back/internal/motion"
	"hark-back/internal/proximity"
	"hark-back/internal/world"
)

// DefaultPath is the gallery config file, relative to the process working directory.
const DefaultPath = "config/gallery.yaml"

// EnvPrefix namespaces environment overrides, e.g. GALLERY_CHAT_PROVIDER.
const EnvPrefix = "GALLERY"

// ErrInvalid is returned when a loaded value is out of range.
var ErrInvalid = errors.New("config: invalid value")

type WindowConfig struct {
	Title      string `mapstructure:"title"`
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Fullscreen bool   `mapstructure:"fullscreen"`
	TargetFPS  int    `mapstructure:"target_fps"`
}

type ProximityConfig struct {
	Threshold float32 `mapstructure:"threshold"`
}

// ChatConfig selects the Empathy Engine provider. API keys come from the environment
// (OPENAI_API_KEY, GROQ_API_KEY, XAI_API_KEY, GEMINI_API_KEY), never from this file.
type ChatConfig struct {
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	OllamaURL string `mapstructure:"ollama_url"`
	Role      string       `mapstructure:"role"`
	Mode      string       `mapstructure:"mode"`
	Origin    OriginConfig `mapstructure:"origin"`
}

// OriginConfig is where the visitor is, passed to the chat as request hints.
type OriginConfig struct {
	Latitude  string `mapstructure:"latitude"`
	Longitude string `mapstructure:"longitude"`
	City      string `mapstructure:"city"`
	Country   string `mapstructure:"country"`
}

// Hints returns the origin as request hints, or nil when nothing is set.
func (o OriginConfig) Hints() *empathy.RequestHints {
	if o == (OriginConfig{}) {
		return nil
	}
	return &empathy.RequestHints{
		Latitude:  o.Latitude,
		Longitude: o.Longitude,
		City:      o.City,
		Country:   o.Country,
	}
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type UIConfig struct {
	Stylesheet string `mapstructure:"stylesheet"`
	Font       string `mapstructure:"font"`
}

// Prefs are the overlay toggles the terminal commands flip at runtime; Save persists them.
type Prefs struct {
	ShowFPS      bool `mapstructure:"show_fps"`
	ShowMemAlloc bool `mapstructure:"show_memalloc"`
	ShowPose     bool `mapstructure:"show_pose"`
}

// Config is the whole gallery configuration.
type Config struct {
	Window    WindowConfig    `mapstructure:"window"`
	Motion    motion.Params   `mapstructure:"motion"`
	Proximity ProximityConfig `mapstructure:"proximity"`
	Room      world.Room      `mapstructure:"room"`
	Chat      ChatConfig      `mapstructure:"chat"`
	Store     StoreConfig     `mapstructure:"store"`
	Log       LogConfig       `mapstructure:"log"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	UI        UIConfig        `mapstructure:"ui"`
	Prefs     Prefs           `mapstructure:"prefs"`
}

// Default returns the built-in configuration (overlays off, auto provider).
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "Hark Back",
			Width:     1280,
			Height:    720,
			TargetFPS: 60,
		},
		Motion:    motion.DefaultParams(),
		Proximity: ProximityConfig{Threshold: proximity.DefaultThreshold},
		Room:      world.DefaultRoom(),
		Chat: ChatConfig{
			Provider:  "auto",
			OllamaURL: "http://localhost:11434",
			Role:      "other",
		},
		Store:   StoreConfig{Path: "data/history.db"},
		Log:     LogConfig{Level: "info", File: "logs/gallery.log"},
		Catalog: CatalogConfig{Path: "assets/exhibits.yaml"},
		UI:      UIConfig{Stylesheet: "assets/ui/gallery.css"},
	}
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("window.title", c.Window.Title)
	v.SetDefault("window.width", c.Window.Width)
	v.SetDefault("window.height", c.Window.Height)
	v.SetDefault("window.fullscreen", c.Window.Fullscreen)
	v.SetDefault("window.target_fps", c.Window.TargetFPS)

	v.SetDefault("motion.move_speed", c.Motion.MoveSpeed)
	v.SetDefault("motion.rotate_speed", c.Motion.RotateSpeed)
	v.SetDefault("motion.reference_fps", c.Motion.ReferenceFPS)
	v.SetDefault("motion.frame_rate_independent", c.Motion.FrameRateIndependent)

	v.SetDefault("proximity.threshold", c.Proximity.Threshold)

	v.SetDefault("room.half_width", c.Room.HalfWidth)
	v.SetDefault("room.min_z", c.Room.MinZ)
	v.SetDefault("room.max_z", c.Room.MaxZ)
	v.SetDefault("room.width", c.Room.Width)
	v.SetDefault("room.height", c.Room.Height)
	v.SetDefault("room.length", c.Room.Length)
	v.SetDefault("room.spawn", c.Room.Spawn[:])

	v.SetDefault("chat.provider", c.Chat.Provider)
	v.SetDefault("chat.model", c.Chat.Model)
	v.SetDefault("chat.ollama_url", c.Chat.OllamaURL)
	v.SetDefault("chat.role", c.Chat.Role)
	v.SetDefault("chat.mode", c.Chat.Mode)
	v.SetDefault("chat.origin.latitude", c.Chat.Origin.Latitude)
	v.SetDefault("chat.origin.longitude", c.Chat.Origin.Longitude)
	v.SetDefault("chat.origin.city", c.Chat.Origin.City)
	v.SetDefault("chat.origin.country", c.Chat.Origin.Country)

	v.SetDefault("store.path", c.Store.Path)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.file", c.Log.File)
	v.SetDefault("catalog.path", c.Catalog.Path)
	v.SetDefault("ui.stylesheet", c.UI.Stylesheet)
	v.SetDefault("ui.font", c.UI.Font)

	v.SetDefault("prefs.show_fps", c.Prefs.ShowFPS)
	v.SetDefault("prefs.show_memalloc", c.Prefs.ShowMemAlloc)
	v.SetDefault("prefs.show_pose", c.Prefs.ShowPose)
}

// Load reads path (DefaultPath when empty) over the defaults, then applies GALLERY_*
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func isNotExist(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)
}

// Validate rejects values the walk cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Proximity.Threshold <= 0:
		return fmt.Errorf("%w: proximity.threshold must be positive", ErrInvalid)
	case c.Room.HalfWidth <= 0:
		return fmt.Errorf("%w: room.half_width must be positive", ErrInvalid)
	case c.Room.MinZ >= c.Room.MaxZ:
		return fmt.Errorf("%w: room.min_z must be below room.max_z", ErrInvalid)
	case c.Motion.MoveSpeed < 0 || c.Motion.RotateSpeed < 0:
		return fmt.Errorf("%w: motion speeds must not be negative", ErrInvalid)
	case c.Motion.FrameRateIndependent && c.Motion.ReferenceFPS <= 0:
		return fmt.Errorf("%w: motion.reference_fps must be positive", ErrInvalid)
	}
	return nil
}

// Save writes c to path as YAML, creating the directory if needed.
func Save(path string, c Config) error {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	v := viper.New()
	setDefaults(v, c)
	v.SetConfigType("yaml")
	return v.WriteConfigAs(path)
}

// LoadDotEnv reads KEY=VALUE pairs from path (e.g. ".env") into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return err
		}
	}
	return nil
}
