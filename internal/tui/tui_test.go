package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hark-back/internal/empathy"
)

type fakeChat struct {
	mu       sync.Mutex
	contexts []empathy.Context
	sent     []string
	err      error
}

func (f *fakeChat) Send(_ context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	if f.err != nil {
		return "", f.err
	}
	return "heard: " + text, nil
}

func (f *fakeChat) SetContext(c empathy.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contexts = append(f.contexts, c)
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestRoleThenModeStartsChat(t *testing.T) {
	chat := &fakeChat{}
	m := New(context.Background(), chat, Options{})
	assert.Equal(t, screenRoles, m.screen)

	// Engineer is the second role; its first mode is tech-to-business.
	m, _ = press(t, m, key(tea.KeyDown), key(tea.KeyEnter))
	require.Equal(t, screenModes, m.screen)
	assert.Equal(t, empathy.RoleEngineer, m.role)

	m, _ = press(t, m, key(tea.KeyEnter))
	require.Equal(t, screenChat, m.screen)
	require.Len(t, chat.contexts, 1)
	assert.Equal(t, empathy.Context{Mode: "tech-to-business", UserRole: "engineer"}, chat.contexts[0])
	assert.Contains(t, m.View(), "Tech to Business Translation")
}

func TestSendAndReply(t *testing.T) {
	chat := &fakeChat{}
	m := New(context.Background(), chat, Options{Role: empathy.RoleOther, Mode: "team-dynamics"})
	require.Equal(t, screenChat, m.screen)

	m, cmd := press(t, m, runes("why do sales and eng fight?"), key(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, m.waiting)
	assert.Empty(t, m.input.Value())

	m, again := press(t, m, runes("more"), key(tea.KeyEnter))
	assert.Nil(t, again, "one request at a time")

	m, _ = press(t, m, cmd())
	assert.False(t, m.waiting)
	require.Len(t, m.turns, 2)
	assert.Equal(t, "heard: why do sales and eng fight?", m.turns[1].text)
	assert.Equal(t, []string{"why do sales and eng fight?"}, chat.sent)
}

func TestReplyError(t *testing.T) {
	chat := &fakeChat{err: errors.New("no provider")}
	m := New(context.Background(), chat, Options{Role: empathy.RoleDesigner, Mode: "design-advocacy"})
	m, cmd := press(t, m, runes("hi"), key(tea.KeyEnter))
	require.NotNil(t, cmd)
	m, _ = press(t, m, cmd())
	require.Len(t, m.turns, 2)
	assert.True(t, m.turns[1].err)
	assert.Contains(t, m.view.View(), "no provider")
}

func TestBlankInputIsNotSent(t *testing.T) {
	m := New(context.Background(), &fakeChat{}, Options{Role: empathy.RolePM, Mode: "multi-perspective"})
	_, cmd := press(t, m, runes("   "), key(tea.KeyEnter))
	assert.Nil(t, cmd)
}

func TestPerspectiveCheckAsksForTeam(t *testing.T) {
	chat := &fakeChat{}
	m := New(context.Background(), chat, Options{Role: empathy.RolePM, Mode: "perspective-check"})
	require.Equal(t, screenPersona, m.screen)

	m, _ = press(t, m, key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyEnter))
	require.Equal(t, screenChat, m.screen)
	require.Len(t, chat.contexts, 1)
	assert.Equal(t, empathy.Teams()[2].Name, chat.contexts[0].Persona)
}

func TestTranslationAsksFromAndTo(t *testing.T) {
	chat := &fakeChat{}
	m := New(context.Background(), chat, Options{Role: empathy.RolePM, Mode: "translation"})
	require.Equal(t, screenFrom, m.screen)

	m, _ = press(t, m, key(tea.KeyEnter))
	require.Equal(t, screenTo, m.screen)
	m, _ = press(t, m, key(tea.KeyDown), key(tea.KeyEnter))
	require.Equal(t, screenChat, m.screen)

	roles := empathy.TranslationRoles()
	got := chat.contexts[0]
	assert.Equal(t, roles[0].Name, got.FromRole)
	assert.Equal(t, roles[1].Name, got.ToRole)
}

func TestEscapeGoesBack(t *testing.T) {
	m := New(context.Background(), &fakeChat{}, Options{Role: empathy.RoleOther, Mode: "team-dynamics"})
	m, _ = press(t, m, key(tea.KeyEsc))
	assert.Equal(t, screenModes, m.screen)
	m, _ = press(t, m, key(tea.KeyEsc))
	assert.Equal(t, screenRoles, m.screen)
	_, cmd := press(t, m, key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestCursorIsClamped(t *testing.T) {
	m := New(context.Background(), &fakeChat{}, Options{})
	m, _ = press(t, m, key(tea.KeyUp))
	assert.Equal(t, 0, m.cursor)
	for range 10 {
		m, _ = press(t, m, key(tea.KeyDown))
	}
	assert.Equal(t, len(empathy.Roles())-1, m.cursor)
}

func TestWindowSize(t *testing.T) {
	m := New(context.Background(), &fakeChat{}, Options{})
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 0, Height: 0})
	assert.Equal(t, 3, m.view.Height)
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 116, m.view.Width)
	assert.Equal(t, 31, m.view.Height)
}

func TestUnknownRoleOptionStartsAtRoles(t *testing.T) {
	m := New(context.Background(), &fakeChat{}, Options{Role: "ceo"})
	assert.Equal(t, screenRoles, m.screen)
}
