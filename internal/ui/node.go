package ui

import "image/color"

// Action is what a click on a node asks for.
type Action int

const (
	ActionNone Action = iota
	// ActionSwallow consumes the click without doing anything (panel bodies over a backdrop).
	ActionSwallow
	ActionToggleMenu
	ActionCloseMenu
	ActionCloseDetail
)

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Node is a single UI element: panel, label, etc. It has optional class and id for CSS matching
// and optional text for labels. Children are positioned relative to Parent.
type Node struct {
	Type   string // "panel", "label", "button"
	Class  string // e.g. "menu" for .menu
	ID     string // e.g. "main" for #main
	Text   string
	Parent *Node
	// Offset is added after CSS positioning (stacked lines of wrapped text).
	Offset [2]float32
	// Fill, if set, replaces the CSS background (the detail swatch uses the exhibit color).
	Fill   *color.RGBA
	Action Action
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}

// Child creates a node positioned inside n.
func (n *Node) Child(typ, class, text string) *Node {
	c := NewNode(typ, class, "", text)
	c.Parent = n
	return c
}
