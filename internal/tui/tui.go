// Package tui is the terminal front end of the Empathy Engine: pick a role, pick a mode,
// then chat.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hark-back/internal/empathy"
)

// Chat is the conversation the chat screen talks to (an *empathy.Session).
type Chat interface {
	Send(ctx context.Context, text string) (string, error)
	SetContext(c empathy.Context)
}

// Options preselect screens, e.g. from config or flags. Empty fields start at the beginning.
type Options struct {
	Role empathy.Role
	Mode string
}

type screen int

const (
	screenRoles screen = iota
	screenModes
	screenPersona
	screenFrom
	screenTo
	screenChat
)

type item struct {
	id, icon, title, desc string
}

type turn struct {
	user bool
	err  bool
	text string
}

type replyMsg struct {
	text string
	err  error
}

// Model is the bubbletea model of the chat screens.
type Model struct {
	ctx    context.Context
	chat   Chat
	styles Styles

	screen screen
	cursor int
	role   empathy.Role
	mode   empathy.Mode
	ectx   empathy.Context

	input   textinput.Model
	view    viewport.Model
	turns   []turn
	waiting bool

	width, height int
}

// New returns a model on chat. ctx bounds every request.
func New(ctx context.Context, chat Chat, opts Options) Model {
	in := textinput.New()
	in.Prompt = "› "
	in.CharLimit = 2000
	in.Width = 72
	m := Model{
		ctx:    ctx,
		chat:   chat,
		styles: DefaultStyles(),
		input:  in,
		view:   viewport.New(80, 20),
	}
	if opts.Role != "" {
		if r, err := empathy.ParseRole(string(opts.Role)); err == nil {
			m.role = r
			m.screen = screenModes
			if mode, ok := empathy.FindMode(r, opts.Mode); ok {
				m = m.selectMode(mode)
			}
		}
	}
	return m
}

// Run starts the program on the alternate screen and blocks until the user quits.
func Run(ctx context.Context, chat Chat, opts Options) error {
	p := tea.NewProgram(New(ctx, chat, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) items() []item {
	var out []item
	switch m.screen {
	case screenRoles:
		for _, r := range empathy.Roles() {
			out = append(out, item{string(r.ID), r.Icon, r.Title, r.Description})
		}
	case screenModes:
		for _, md := range empathy.ModesFor(m.role) {
			out = append(out, item{md.ID, md.Icon, md.Title, md.Description})
		}
	case screenPersona:
		for _, t := range empathy.Teams() {
			out = append(out, item{t.ID, t.Icon, t.Name, ""})
		}
	case screenFrom, screenTo:
		for _, t := range empathy.TranslationRoles() {
			out = append(out, item{t.ID, t.Icon, t.Name, ""})
		}
	}
	return out
}

func (m Model) selectMode(mode empathy.Mode) Model {
	m.mode = mode
	m.ectx = empathy.Context{Mode: mode.ID, UserRole: string(m.role)}
	m.cursor = 0
	switch mode.ID {
	case "perspective-check":
		m.screen = screenPersona
	case "translation":
		m.screen = screenFrom
	default:
		m = m.startChat()
	}
	return m
}

func (m Model) startChat() Model {
	m.chat.SetContext(m.ectx)
	m.screen = screenChat
	m.turns = nil
	m.waiting = false
	m.input.Reset()
	m.input.Placeholder = m.mode.Example
	m.input.Focus()
	m.refresh()
	return m
}

// choose acts on the highlighted list entry.
func (m Model) choose() Model {
	items := m.items()
	if len(items) == 0 {
		return m
	}
	it := items[m.cursor]
	switch m.screen {
	case screenRoles:
		m.role = empathy.Role(it.id)
		m.screen = screenModes
		m.cursor = 0
	case screenModes:
		if mode, ok := empathy.FindMode(m.role, it.id); ok {
			m = m.selectMode(mode)
		}
	case screenPersona:
		m.ectx.Persona = it.title
		m = m.startChat()
	case screenFrom:
		m.ectx.FromRole = it.title
		m.screen = screenTo
		m.cursor = 0
	case screenTo:
		m.ectx.ToRole = it.title
		m = m.startChat()
	}
	return m
}

func (m Model) back() (Model, tea.Cmd) {
	switch m.screen {
	case screenRoles:
		return m, tea.Quit
	case screenModes:
		m.screen = screenRoles
	default:
		m.screen = screenModes
		m.input.Blur()
	}
	m.cursor = 0
	return m, nil
}

func (m Model) send() (Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.waiting {
		return m, nil
	}
	m.input.Reset()
	m.turns = append(m.turns, turn{user: true, text: text})
	m.waiting = true
	m.refresh()

	chat, ctx := m.chat, m.ctx
	return m, func() tea.Msg {
		reply, err := chat.Send(ctx, text)
		return replyMsg{text: reply, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = max(msg.Width, 0), max(msg.Height, 0)
		m.view.Width = max(m.width-4, 20)
		m.view.Height = max(m.height-9, 3)
		m.input.Width = max(m.width-8, 10)
		m.refresh()
		return m, nil

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.turns = append(m.turns, turn{err: true, text: msg.err.Error()})
		} else {
			m.turns = append(m.turns, turn{text: msg.text})
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == screenChat {
			return m.updateChat(msg)
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items())-1 {
				m.cursor++
			}
		case "enter":
			m = m.choose()
		case "esc", "q":
			return m.back()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.send()
	case "esc":
		return m.back()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (m *Model) refresh() {
	wrap := lipgloss.NewStyle().Width(max(m.view.Width-2, 10))
	var b strings.Builder
	for _, t := range m.turns {
		switch {
		case t.user:
			b.WriteString(m.styles.User.Render("You") + "\n")
			b.WriteString(wrap.Render(t.text) + "\n\n")
		case t.err:
			b.WriteString(m.styles.Error.Render(wrap.Render("error: "+t.text)) + "\n\n")
		default:
			b.WriteString(m.styles.Header.UnsetMarginBottom().Render("Empathy Engine") + "\n")
			b.WriteString(m.styles.Assistant.Render(wrap.Render(t.text)) + "\n\n")
		}
	}
	if m.waiting {
		b.WriteString(m.styles.Subtitle.Render("thinking..."))
	}
	m.view.SetContent(b.String())
	m.view.GotoBottom()
}

func (m Model) subtitle() string {
	switch m.screen {
	case screenRoles:
		return "What's your role?"
	case screenModes:
		return fmt.Sprintf("%s: choose how to use the engine", m.role.DisplayName())
	case screenPersona:
		return "Whose perspective do you want?"
	case screenFrom:
		return "Translate from"
	case screenTo:
		return fmt.Sprintf("Translate from %s to", m.ectx.FromRole)
	}
	s := m.mode.Icon + " " + m.mode.Title
	if m.ectx.Persona != "" {
		s += " · " + m.ectx.Persona
	}
	if m.ectx.FromRole != "" {
		s += fmt.Sprintf(" · %s → %s", m.ectx.FromRole, m.ectx.ToRole)
	}
	return s
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Empathy Engine") + "\n")
	b.WriteString(m.styles.Subtitle.Render(m.subtitle()) + "\n\n")

	if m.screen == screenChat {
		b.WriteString(m.view.View() + "\n")
		b.WriteString(m.input.View() + "\n")
		b.WriteString(m.styles.Footer.Render("enter send · pgup/pgdown scroll · esc modes · ctrl+c quit"))
		return m.styles.App.Render(b.String())
	}

	for i, it := range m.items() {
		label := strings.TrimSpace(it.icon + " " + it.title)
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render(label) + "\n")
		} else {
			b.WriteString(m.styles.Item.Render(label) + "\n")
		}
		if it.desc != "" {
			b.WriteString(m.styles.Desc.Render(it.desc) + "\n")
		}
	}
	b.WriteString(m.styles.Footer.Render("↑/↓ move · enter select · esc back"))
	return m.styles.App.Render(b.String())
}
