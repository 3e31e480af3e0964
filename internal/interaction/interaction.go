package interaction

import (
	"hark-back/internal/proximity"
	"hark-back/internal/world"
)

// Mode is the overlay state of the gallery.
type Mode int

const (
	Exploring Mode = iota
	MenuOpen
	DetailOpen
)

func (m Mode) String() string {
	switch m {
	case Exploring:
		return "exploring"
	case MenuOpen:
		return "menu"
	case DetailOpen:
		return "detail"
	}
	return "unknown"
}

// Machine is the exploring / menu / detail state machine. Keyboard (Escape, Enter) and
// pointer paths (ToggleMenu, CloseMenu, CloseDetail) drive the same state.
// Machine is not safe for concurrent use; gallery.Controller serializes access.
type Machine struct {
	mode     Mode
	detail   world.Exhibit
	nearby   proximity.NearbyState
	onChange []func(from, to Mode)
}

// New returns a machine in Exploring with nothing nearby.
func New() *Machine {
	return &Machine{mode: Exploring, nearby: proximity.None()}
}

// OnChange registers fn to run after every mode transition.
func (m *Machine) OnChange(fn func(from, to Mode)) {
	m.onChange = append(m.onChange, fn)
}

func (m *Machine) set(next Mode) {
	if next == m.mode {
		return
	}
	prev := m.mode
	m.mode = next
	if next != DetailOpen {
		m.detail = world.Exhibit{}
	}
	for _, fn := range m.onChange {
		fn(prev, next)
	}
}

// Mode returns the active mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Frozen reports whether movement and camera follow are suspended (any overlay open).
func (m *Machine) Frozen() bool {
	return m.mode != Exploring
}

// Detail returns the exhibit shown in the detail panel.
func (m *Machine) Detail() (world.Exhibit, bool) {
	if m.mode != DetailOpen {
		return world.Exhibit{}, false
	}
	return m.detail, true
}

// Nearby returns the last proximity state fed to the machine.
func (m *Machine) Nearby() proximity.NearbyState {
	return m.nearby
}

// SetNearby records the proximity detector's latest transition.
func (m *Machine) SetNearby(s proximity.NearbyState) {
	m.nearby = s
}

// Escape closes an open detail panel; otherwise it toggles the menu.
func (m *Machine) Escape() {
	switch m.mode {
	case DetailOpen, MenuOpen:
		m.set(Exploring)
	default:
		m.set(MenuOpen)
	}
}

// Enter opens the detail panel for the nearby exhibit. It does nothing while an overlay is
// open or when no exhibit is nearby.
func (m *Machine) Enter() {
	if m.mode != Exploring || !m.nearby.Ok() {
		return
	}
	m.detail = *m.nearby.Exhibit
	m.set(DetailOpen)
}

// ToggleMenu is the menu button: it flips the menu and always dismisses the detail panel.
func (m *Machine) ToggleMenu() {
	if m.mode == MenuOpen {
		m.set(Exploring)
		return
	}
	m.set(MenuOpen)
}

// CloseMenu returns to Exploring when the menu is open.
func (m *Machine) CloseMenu() {
	if m.mode == MenuOpen {
		m.set(Exploring)
	}
}

// CloseDetail returns to Exploring when the detail panel is open.
func (m *Machine) CloseDetail() {
	if m.mode == DetailOpen {
		m.set(Exploring)
	}
}
