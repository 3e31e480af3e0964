package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hark-back/internal/config"
	"hark-back/internal/empathy"
	"hark-back/internal/gallery"
	"hark-back/internal/llm"
	"hark-back/internal/logger"
	"hark-back/internal/store"
	"hark-back/internal/world"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Hark Back - a walkable 3D portfolio gallery",
	Long: `Hark Back opens a small gallery hall. Walk with WASD or the arrow keys,
press Enter near a frame to read about the exhibit and Escape to close it.
Press backquote to open the guide terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(".env"); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		log, err = logger.New(logger.Options{File: cfg.Log.File, Level: cfg.Log.Level, Verbose: verbose})
		if err != nil {
			return err
		}
		log.Debug("config loaded", zap.String("path", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWindow()
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the Empathy Engine in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context())
	},
}

var exhibitsCmd = &cobra.Command{
	Use:   "exhibits",
	Short: "List the exhibits in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		g := loadGallery()
		out := cmd.OutOrStdout()
		if exportCatalog {
			data, err := world.MarshalCatalog(g)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		}
		for i := 0; i < g.Len(); i++ {
			e, _ := g.Exhibit(i)
			fmt.Fprintf(out, "%d. %-28s %s\n", i+1, e.Title, e.Subtitle)
		}
		return nil
	},
}

var (
	exportCatalog bool
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recent Empathy Engine conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printHistory(cmd.Context(), cmd.OutOrStdout(), historyLimit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	exhibitsCmd.Flags().BoolVar(&exportCatalog, "export", false, "Print the catalog as YAML")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of conversations to show")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(exhibitsCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadGallery reads the configured catalog, falling back to the built-in exhibits.
func loadGallery() *world.Gallery {
	g, err := world.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		log.Warn("using built-in exhibits", zap.String("catalog", cfg.Catalog.Path), zap.Error(err))
		return world.Default()
	}
	return g
}

func galleryConfig() gallery.Config {
	return gallery.Config{
		Motion:    cfg.Motion,
		Room:      cfg.Room,
		Threshold: cfg.Proximity.Threshold,
	}
}

// modelSetting is the chat model the terminal's "model" command reads and writes.
type modelSetting struct {
	mu    sync.Mutex
	model string
}

func (m *modelSetting) Get() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.model
}

func (m *modelSetting) Set(model string) {
	m.mu.Lock()
	m.model = model
	m.mu.Unlock()
}

// openChat builds the configured client and a session persisted to the history store.
// The returned close func releases the store.
func openChat(c empathy.Context) (*empathy.Session, *modelSetting, func(), error) {
	client, model, err := llm.FromConfig(llm.Settings{
		Provider:  cfg.Chat.Provider,
		Model:     cfg.Chat.Model,
		OllamaURL: cfg.Chat.OllamaURL,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	setting := &modelSetting{model: model}
	session := empathy.NewSession(client, setting.Get, c, log.Logger)
	session.Hints = cfg.Chat.Origin.Hints()

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Warn("chat history disabled", zap.String("path", cfg.Store.Path), zap.Error(err))
		return session, setting, func() {}, nil
	}
	session.Persist(db)
	return session, setting, func() {
		if err := db.Close(); err != nil {
			log.Warn("closing history store", zap.Error(err))
		}
	}, nil
}
