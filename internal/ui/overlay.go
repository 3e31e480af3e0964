package ui

import (
	"strings"
	"unicode/utf8"

	"hark-back/internal/gallery"
	"hark-back/internal/interaction"
)

const (
	descWrap       = 46
	descLineHeight = 24
	maxDescLines   = 8
)

// Overlay is the 2D layer over the gallery: menu button, control HUD with the nearby hint,
// the menu panel and the exhibit detail panel. It owns its nodes and updates their text from
// the frame snapshot.
type Overlay struct {
	// ProfileURL is shown as the menu's GitHub link.
	ProfileURL string

	menuButton *Node

	hud, moveLabel, moveKeys, escLabel, escKeys, enterLabel, enterKey, hint *Node

	menuDim, menuPanel, menuTitle, menuSubtitle, menuResume, menuLink *Node
	menuFooter1, menuFooter2, menuClose                                *Node

	detailDim, detailPanel, swatch, swatchTitle, swatchSubtitle *Node
	tech, github, live, detailClose                            *Node
	desc                                                        []*Node
}

// NewOverlay creates the overlay nodes, styled by the stylesheet's .hud, .menu-*, .detail-* rules.
func NewOverlay() *Overlay {
	o := &Overlay{ProfileURL: "github.com/harineek24"}

	o.menuButton = NewNode("button", "menu-btn", "", "MENU")
	o.menuButton.Action = ActionToggleMenu

	o.hud = NewNode("panel", "hud", "", "")
	o.moveLabel = o.hud.Child("label", "hud-label", "Move")
	o.moveLabel.ID = "hud-move-label"
	o.moveKeys = o.hud.Child("label", "hud-key", "↑ ← ↓ →")
	o.moveKeys.ID = "hud-move-keys"
	o.escLabel = o.hud.Child("label", "hud-label", "Open/Close Menu")
	o.escLabel.ID = "hud-esc-label"
	o.escKeys = o.hud.Child("label", "hud-key", "ESC")
	o.escKeys.ID = "hud-esc-keys"
	o.enterLabel = o.hud.Child("label", "hud-label", "See details")
	o.enterLabel.ID = "hud-enter-label"
	o.enterKey = o.hud.Child("label", "hud-key", "ENTER")
	o.enterKey.ID = "hud-enter-key"
	o.hint = o.hud.Child("label", "hud-nearby-hint", "")

	o.menuDim = NewNode("panel", "overlay-dim", "", "")
	o.menuDim.Action = ActionSwallow
	o.menuPanel = NewNode("panel", "menu-content", "", "")
	o.menuPanel.Action = ActionSwallow
	o.menuTitle = o.menuPanel.Child("label", "menu-title", "Hark Back")
	o.menuSubtitle = o.menuPanel.Child("label", "menu-subtitle", "portfolio gallery")
	o.menuResume = o.menuPanel.Child("button", "menu-link", "Resume Exploring")
	o.menuResume.ID = "menu-resume"
	o.menuResume.Action = ActionCloseMenu
	o.menuLink = o.menuPanel.Child("label", "menu-link", "")
	o.menuLink.ID = "menu-github"
	o.menuFooter1 = o.menuPanel.Child("label", "menu-footer", "Use arrow keys to explore the gallery.")
	o.menuFooter2 = o.menuPanel.Child("label", "menu-footer", "Walk up to a painting and press Enter for details.")
	o.menuFooter2.ID = "menu-footer-2"
	o.menuClose = o.menuPanel.Child("button", "menu-close-btn", "Press ESC or click to close")
	o.menuClose.Action = ActionCloseMenu

	o.detailDim = NewNode("panel", "overlay-dim", "", "")
	o.detailDim.Action = ActionCloseDetail
	o.detailPanel = NewNode("panel", "detail-panel", "", "")
	o.detailPanel.Action = ActionSwallow
	o.swatch = o.detailPanel.Child("panel", "detail-swatch", "")
	o.swatchTitle = o.swatch.Child("label", "detail-swatch-title", "")
	o.swatchSubtitle = o.swatch.Child("label", "detail-swatch-subtitle", "")
	o.tech = o.detailPanel.Child("label", "detail-tech", "")
	o.github = o.detailPanel.Child("label", "detail-link", "")
	o.live = o.detailPanel.Child("label", "detail-link", "")
	o.live.ID = "detail-link-live"
	o.detailClose = o.detailPanel.Child("button", "detail-close", "X")
	o.detailClose.Action = ActionCloseDetail
	return o
}

// Nodes returns the nodes to draw this frame, in draw order, after updating them from s.
func (o *Overlay) Nodes(s gallery.Snapshot) []*Node {
	nodes := []*Node{o.menuButton, o.hud, o.moveLabel, o.moveKeys, o.escLabel, o.escKeys, o.enterLabel}

	if s.Nearby.Ok() {
		o.enterKey.Class = "hud-key-active"
		o.hint.Text = s.Nearby.Exhibit.Title
		nodes = append(nodes, o.enterKey, o.hint)
	} else {
		o.enterKey.Class = "hud-key"
		nodes = append(nodes, o.enterKey)
	}

	switch s.Mode {
	case interaction.MenuOpen:
		o.menuLink.Text = "GitHub: " + o.ProfileURL
		nodes = append(nodes, o.menuDim, o.menuPanel, o.menuTitle, o.menuSubtitle,
			o.menuResume, o.menuLink, o.menuFooter1, o.menuFooter2, o.menuClose)
	case interaction.DetailOpen:
		if s.Detail == nil {
			break
		}
		e := s.Detail
		o.swatch.Fill = nil
		if c, ok := ParseColor(e.Color); ok {
			o.swatch.Fill = &c
		}
		o.swatchTitle.Text = e.Title
		o.swatchSubtitle.Text = e.Subtitle
		nodes = append(nodes, o.detailDim, o.detailPanel, o.swatch, o.swatchTitle, o.swatchSubtitle)

		lines := Wrap(e.Description, descWrap)
		if len(lines) > maxDescLines {
			lines = append(lines[:maxDescLines-1], lines[maxDescLines-1]+"...")
		}
		for len(o.desc) < len(lines) {
			o.desc = append(o.desc, o.detailPanel.Child("label", "detail-description", ""))
		}
		for i, line := range lines {
			o.desc[i].Text = line
			o.desc[i].Offset = [2]float32{0, float32(i * descLineHeight)}
			nodes = append(nodes, o.desc[i])
		}

		if len(e.Tech) > 0 {
			o.tech.Text = strings.Join(e.Tech, " · ")
			nodes = append(nodes, o.tech)
		}
		if e.GitHub != "" {
			o.github.Text = "GitHub → " + e.GitHub
			nodes = append(nodes, o.github)
		}
		if e.URL != "" {
			o.live.Text = "Live Demo → " + e.URL
			nodes = append(nodes, o.live)
		}
		nodes = append(nodes, o.detailClose)
	}
	return nodes
}

// Wrap breaks text into lines of at most width runes at spaces. Longer words get their own line.
func Wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	n := 0
	for _, word := range strings.Fields(text) {
		wl := utf8.RuneCountInString(word)
		if n > 0 && n+1+wl > width {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(word)
		n += wl
	}
	if n > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
