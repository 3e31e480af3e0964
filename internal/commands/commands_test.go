package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	args, ok := Parse("cmd fps --show")
	require.True(t, ok)
	assert.Equal(t, []string{"fps", "--show"}, args)

	args, ok = Parse("cmd   ")
	assert.True(t, ok)
	assert.Nil(t, args)

	_, ok = Parse("what is project alpha?")
	assert.False(t, ok)
	_, ok = Parse("CMD fps")
	assert.False(t, ok, "prefix is case-sensitive")
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()
	assert.EqualError(t, r.Execute(nil), "missing subcommand")
	assert.EqualError(t, r.Execute([]string{"nope"}), "unknown command: nope")

	fs := NewFlagSet("x")
	fs.Bool("on", false, "")
	r.Register("x", "x [--on]", fs, func() error { return errors.New("boom") })
	assert.Error(t, r.Execute([]string{"x", "--bogus"}))
	assert.EqualError(t, r.Execute([]string{"x"}), "boom")
}

type fakeApp struct {
	lines          []string
	fps, mem, pose bool
	model          string
	menuToggles    int
	saved          int
}

func (f *fakeApp) bindings() Bindings {
	return Bindings{
		Print:        func(s string) { f.lines = append(f.lines, s) },
		ShowFPS:      func(b bool) { f.fps = b },
		ShowMemAlloc: func(b bool) { f.mem = b },
		ShowPose:     func(b bool) { f.pose = b },
		Overlays:     func() (bool, bool, bool) { return f.fps, f.mem, f.pose },
		Model:        func() string { return f.model },
		SetModel:     func(m string) { f.model = m },
		Exhibits:     func() []string { return []string{"Harken", "Project Alpha"} },
		Where:        func() string { return "x=0.00 z=10.00" },
		ToggleMenu:   func() { f.menuToggles++ },
		SavePrefs:    func() error { f.saved++; return nil },
	}
}

func TestGalleryToggles(t *testing.T) {
	app := &fakeApp{}
	r := NewRegistry()
	RegisterGallery(r, app.bindings())

	require.NoError(t, r.Execute([]string{"fps", "--show"}))
	assert.True(t, app.fps)
	require.NoError(t, r.Execute([]string{"fps", "--hide"}))
	assert.False(t, app.fps, "flags reset between runs")
	require.NoError(t, r.Execute([]string{"fps"}))
	assert.True(t, app.fps, "no flag toggles")
	assert.Error(t, r.Execute([]string{"fps", "--show", "--hide"}))

	require.NoError(t, r.Execute([]string{"memalloc"}))
	assert.True(t, app.mem)
	require.NoError(t, r.Execute([]string{"pose", "--show"}))
	assert.True(t, app.pose)
	assert.Contains(t, app.lines, "pose readout on")
}

func TestGalleryInfoCommands(t *testing.T) {
	app := &fakeApp{}
	r := NewRegistry()
	RegisterGallery(r, app.bindings())

	require.NoError(t, r.Execute([]string{"model"}))
	require.NoError(t, r.Execute([]string{"model", "llama3.2"}))
	assert.Equal(t, "llama3.2", app.model)
	require.NoError(t, r.Execute([]string{"exhibits"}))
	require.NoError(t, r.Execute([]string{"where"}))
	require.NoError(t, r.Execute([]string{"menu"}))
	require.NoError(t, r.Execute([]string{"save"}))

	assert.Equal(t, []string{
		"model: (provider default)",
		"model set to llama3.2",
		"1. Harken",
		"2. Project Alpha",
		"x=0.00 z=10.00",
		"preferences saved",
	}, app.lines)
	assert.Equal(t, 1, app.menuToggles)
	assert.Equal(t, 1, app.saved)
}

func TestHelpListsRegistered(t *testing.T) {
	r := NewRegistry()
	RegisterGallery(r, Bindings{Where: func() string { return "" }})
	assert.Equal(t, []string{"help", "where"}, r.Names())
	assert.Equal(t, "cmd help\ncmd where", r.Help())
}
