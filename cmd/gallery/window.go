package main

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"hark-back/internal/assets"
	"hark-back/internal/commands"
	"hark-back/internal/config"
	"hark-back/internal/debug"
	"hark-back/internal/empathy"
	"hark-back/internal/gallery"
	"hark-back/internal/graphics"
	"hark-back/internal/guide"
	"hark-back/internal/scene"
	"hark-back/internal/terminal"
	"hark-back/internal/terminal/screen"
	"hark-back/internal/ui"
	"hark-back/internal/ui/render"
)

// runWindow opens the gallery window and blocks until it is closed.
func runWindow() error {
	g := loadGallery()
	ctrl := gallery.New(galleryConfig(), g, log.Logger)
	dbg := debug.New()
	dbg.SetShowFPS(cfg.Prefs.ShowFPS)
	dbg.SetShowMemAlloc(cfg.Prefs.ShowMemAlloc)
	dbg.SetShowPose(cfg.Prefs.ShowPose)

	reg := commands.NewRegistry()
	term := terminal.New(log, reg)
	defer term.Close()

	role := empathy.RoleOther
	if r, err := empathy.ParseRole(cfg.Chat.Role); err == nil {
		role = r
	}
	session, model, closeStore, err := openChat(empathy.Context{UserRole: string(role), Mode: cfg.Chat.Mode})
	if err != nil {
		// The gallery still runs without a guide; terminal commands keep working.
		log.Warn("guide disabled", zap.Error(err))
		model = &modelSetting{}
	} else {
		defer closeStore()
		session.Preamble = func() string { return guide.Preamble(g, ctrl.Nearby) }
		docent := guide.New(session)
		guide.RegisterCommandHandlers(docent, reg)
		term.Ask = docent.Run
	}

	commands.RegisterGallery(reg, commands.Bindings{
		Print:        log.Log,
		ShowFPS:      dbg.SetShowFPS,
		ShowMemAlloc: dbg.SetShowMemAlloc,
		ShowPose:     dbg.SetShowPose,
		Overlays:     dbg.Overlays,
		Model:        model.Get,
		SetModel:     model.Set,
		Exhibits: func() []string {
			out := make([]string, 0, g.Len())
			for i := 0; i < g.Len(); i++ {
				e, _ := g.Exhibit(i)
				out = append(out, e.Title)
			}
			return out
		},
		Where:      func() string { return where(ctrl) },
		ToggleMenu: ctrl.ToggleMenu,
		SavePrefs: func() error {
			saved := cfg
			saved.Prefs.ShowFPS, saved.Prefs.ShowMemAlloc, saved.Prefs.ShowPose = dbg.Overlays()
			saved.Chat.Model = model.Get()
			return config.Save(configPath, saved)
		},
	})

	keys := graphics.NewKeySource()
	release := ctrl.Mount(keys)
	defer release()
	term.OnOpen = func() {
		keys.Suspend()
		// Keys held when the bar opened never see their release.
		ctrl.Sampler().Reset()
	}
	term.OnClose = keys.Resume

	sheet, err := ui.LoadStylesheet(resolveOrEmpty(cfg.UI.Stylesheet))
	if err != nil {
		log.Warn("using built-in stylesheet", zap.Error(err))
		sheet = ui.DefaultStylesheet()
	}
	overlay := ui.NewOverlay()

	// raylib resources need a window, so they are created on the first frame.
	var (
		engine *render.Engine
		scn    *scene.Scene
		bar    *screen.Screen
	)
	setup := func() {
		engine = render.New(sheet)
		if cfg.UI.Font != "" {
			if path, err := assets.FindFont(cfg.UI.Font); err == nil {
				if err := engine.LoadFont(path); err != nil {
					log.Warn("font not loaded", zap.String("font", path), zap.Error(err))
				}
			} else {
				log.Warn("font not found", zap.String("font", cfg.UI.Font))
			}
		}
		scn = scene.New(cfg.Room, g, log.Logger)
		bar = screen.New(term, log)
		bar.SetFont(engine.Font())
		dbg.SetFont(engine.Font())
	}

	update := func(dt float32) {
		if engine == nil {
			setup()
		}
		bar.Update()
		keys.Poll()
		ctrl.Frame(dt)
		switch engine.Click() {
		case ui.ActionToggleMenu:
			ctrl.ToggleMenu()
		case ui.ActionCloseMenu:
			ctrl.CloseMenu()
		case ui.ActionCloseDetail:
			ctrl.CloseDetail()
		}
	}
	draw := func() {
		snap := ctrl.Snapshot()
		scn.Draw(snap)
		engine.Draw(overlay.Nodes(snap))
		bar.Draw()
		dbg.Draw(snap.Pose)
	}

	log.Info("gallery opened", zap.Int("exhibits", g.Len()))
	graphics.Run(cfg.Window, update, draw, func() {
		if engine != nil {
			scn.Unload()
			engine.Unload()
		}
	})
	log.Info("gallery closed")
	return nil
}

func resolveOrEmpty(path string) string {
	p, err := assets.Resolve(path)
	if err != nil {
		return ""
	}
	return p
}

func where(ctrl *gallery.Controller) string {
	var b strings.Builder
	b.WriteString(debug.PoseText(ctrl.Pose()))
	if n := ctrl.Nearby(); n.Exhibit != nil {
		fmt.Fprintf(&b, "  near %q", n.Exhibit.Title)
	}
	return b.String()
}
