package ui

import (
	_ "embed"
	"os"
)

//go:embed default.css
var defaultCSS string

// DefaultStylesheet is the built-in gallery look.
func DefaultStylesheet() *Stylesheet {
	sheet, err := ParseCSS(defaultCSS)
	if err != nil {
		panic("ui: default stylesheet: " + err.Error())
	}
	return sheet
}

// LoadStylesheet loads path, falling back to the built-in stylesheet when path is empty or missing.
func LoadStylesheet(path string) (*Stylesheet, error) {
	if path == "" {
		return DefaultStylesheet(), nil
	}
	sheet, err := LoadCSS(path)
	if os.IsNotExist(err) {
		return DefaultStylesheet(), nil
	}
	return sheet, err
}

// Styler resolves and caches node styles. Resolved styles are keyed by class and id, so
// rebuilding the node list each frame does not re-resolve.
type Styler struct {
	sheet *Stylesheet
	cache map[[2]string]ComputedStyle
}

// NewStyler returns a Styler over sheet (nil means no rules).
func NewStyler(sheet *Stylesheet) *Styler {
	return &Styler{sheet: sheet, cache: make(map[[2]string]ComputedStyle)}
}

// Stylesheet returns the current stylesheet (may be nil).
func (s *Styler) Stylesheet() *Stylesheet {
	return s.sheet
}

// SetStylesheet replaces the stylesheet and drops cached styles.
func (s *Styler) SetStylesheet(sheet *Stylesheet) {
	s.sheet = sheet
	s.cache = make(map[[2]string]ComputedStyle)
}

// resolveProps returns merged properties for a node (class and id matched; last wins).
func (s *Styler) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if s.sheet == nil {
		return merged
	}
	for _, rule := range s.sheet.Rules {
		sel := rule.Selector
		matches := false
		if sel[0] == '.' && n.Class == sel[1:] {
			matches = true
		} else if sel[0] == '#' && n.ID == sel[1:] {
			matches = true
		}
		if matches {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// Style returns the computed style of n.
func (s *Styler) Style(n *Node) ComputedStyle {
	key := [2]string{n.Class, n.ID}
	if st, ok := s.cache[key]; ok {
		return st
	}
	st := ResolveProps(s.resolveProps(n))
	s.cache[key] = st
	return st
}

// Box is a laid-out node.
type Box struct {
	Node  *Node
	Style ComputedStyle
	Rect  Rect
}

// Layout positions nodes on a screen of the given size. Parents must come before their children.
// Percent sizes and positions are relative to the parent (the screen for top-level nodes);
// a percent position places the box so that 0% is flush left/top and 100% flush right/bottom.
func (s *Styler) Layout(nodes []*Node, screenW, screenH float32) []Box {
	boxes := make([]Box, 0, len(nodes))
	placed := make(map[*Node]Rect, len(nodes))
	for _, n := range nodes {
		st := s.Style(n)
		frame := Rect{Width: screenW, Height: screenH}
		if n.Parent != nil {
			if r, ok := placed[n.Parent]; ok {
				frame = r
			}
		}
		w, h := float32(st.Width), float32(st.Height)
		if st.WidthPct >= 0 {
			w = frame.Width * float32(st.WidthPct) / 100
		}
		if st.HeightPct >= 0 {
			h = frame.Height * float32(st.HeightPct) / 100
		}
		x, y := float32(st.Left), float32(st.Top)
		if st.LeftPct >= 0 {
			x = (frame.Width - w) * float32(st.LeftPct) / 100
		}
		if st.TopPct >= 0 {
			y = (frame.Height - h) * float32(st.TopPct) / 100
		}
		r := Rect{
			X:      frame.X + x + n.Offset[0],
			Y:      frame.Y + y + n.Offset[1],
			Width:  w,
			Height: h,
		}
		placed[n] = r
		boxes = append(boxes, Box{Node: n, Style: st, Rect: r})
	}
	return boxes
}

// HitTest returns the action of the topmost clickable box under (x, y).
// Boxes are drawn in order, so the last one is on top.
func HitTest(boxes []Box, x, y float32) Action {
	for i := len(boxes) - 1; i >= 0; i-- {
		b := boxes[i]
		if b.Node.Action == ActionNone || !b.Rect.Contains(x, y) {
			continue
		}
		if b.Node.Action == ActionSwallow {
			return ActionNone
		}
		return b.Node.Action
	}
	return ActionNone
}
