package commands

import (
	"fmt"
	"strings"
)

// Bindings connect the gallery commands to the running app. Nil fields disable the
// commands that need them.
type Bindings struct {
	Print func(line string)

	ShowFPS      func(show bool)
	ShowMemAlloc func(show bool)
	ShowPose     func(show bool)
	Overlays     func() (fps, mem, pose bool)

	Model    func() string
	SetModel func(model string)

	Exhibits   func() []string
	Where      func() string
	ToggleMenu func()
	SavePrefs  func() error
}

// toggle registers a --show/--hide command; with neither flag it flips the current state.
func (r *Registry) toggle(name, what string, set func(bool), current func() bool, say func(string)) {
	fs := NewFlagSet(name)
	show := fs.Bool("show", false, "show "+what)
	hide := fs.Bool("hide", false, "hide "+what)
	r.Register(name, name+" [--show|--hide]", fs, func() error {
		if *show && *hide {
			return fmt.Errorf("%s: --show and --hide are exclusive", name)
		}
		on := !current()
		switch {
		case *show:
			on = true
		case *hide:
			on = false
		}
		set(on)
		if on {
			say(what + " on")
		} else {
			say(what + " off")
		}
		return nil
	})
}

// RegisterGallery adds the in-window terminal commands: help, fps, memalloc, pose, model,
// exhibits, where, menu and save.
func RegisterGallery(r *Registry, b Bindings) {
	say := b.Print
	if say == nil {
		say = func(string) {}
	}
	overlay := func(i int) func() bool {
		return func() bool {
			if b.Overlays == nil {
				return false
			}
			fps, mem, pose := b.Overlays()
			return [3]bool{fps, mem, pose}[i]
		}
	}

	r.Register("help", "help", NewFlagSet("help"), func() error {
		for _, name := range r.Names() {
			say("cmd " + r.Usage(name))
		}
		return nil
	})
	if b.ShowFPS != nil {
		r.toggle("fps", "FPS counter", b.ShowFPS, overlay(0), say)
	}
	if b.ShowMemAlloc != nil {
		r.toggle("memalloc", "memory counter", b.ShowMemAlloc, overlay(1), say)
	}
	if b.ShowPose != nil {
		r.toggle("pose", "pose readout", b.ShowPose, overlay(2), say)
	}
	if b.SetModel != nil && b.Model != nil {
		fs := NewFlagSet("model")
		r.Register("model", "model [name]", fs, func() error {
			if fs.NArg() == 0 {
				m := b.Model()
				if m == "" {
					m = "(provider default)"
				}
				say("model: " + m)
				return nil
			}
			b.SetModel(fs.Arg(0))
			say("model set to " + fs.Arg(0))
			return nil
		})
	}
	if b.Exhibits != nil {
		r.Register("exhibits", "exhibits", NewFlagSet("exhibits"), func() error {
			for i, e := range b.Exhibits() {
				say(fmt.Sprintf("%d. %s", i+1, e))
			}
			return nil
		})
	}
	if b.Where != nil {
		r.Register("where", "where", NewFlagSet("where"), func() error {
			say(b.Where())
			return nil
		})
	}
	if b.ToggleMenu != nil {
		r.Register("menu", "menu", NewFlagSet("menu"), func() error {
			b.ToggleMenu()
			return nil
		})
	}
	if b.SavePrefs != nil {
		r.Register("save", "save", NewFlagSet("save"), func() error {
			if err := b.SavePrefs(); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			say("preferences saved")
			return nil
		})
	}
}

// Help lists usages joined by newlines (for the CLI and tests).
func (r *Registry) Help() string {
	lines := make([]string, 0, len(r.cmds))
	for _, name := range r.Names() {
		lines = append(lines, "cmd "+r.Usage(name))
	}
	return strings.Join(lines, "\n")
}
