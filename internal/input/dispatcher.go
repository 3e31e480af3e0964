package input

import "sync"

// Dispatcher is a Source that fans key events out to its listeners. Platform adapters
// (graphics.KeySource) embed it and call KeyDown/KeyUp; tests drive it directly.
type Dispatcher struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
}

// Subscribe adds l and returns a function that removes it.
func (d *Dispatcher) Subscribe(l Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listeners == nil {
		d.listeners = make(map[int]Listener)
	}
	id := d.nextID
	d.nextID++
	d.listeners[id] = l
	return func() {
		d.mu.Lock()
		delete(d.listeners, id)
		d.mu.Unlock()
	}
}

// Listeners returns how many listeners are attached.
func (d *Dispatcher) Listeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

func (d *Dispatcher) snapshot() []Listener {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Listener, 0, len(d.listeners))
	for _, l := range d.listeners {
		out = append(out, l)
	}
	return out
}

// KeyDown delivers a press. It reports whether any listener asked to suppress the default action.
// Listeners run outside the lock so a callback may unsubscribe.
func (d *Dispatcher) KeyDown(k Key) (suppress bool) {
	for _, l := range d.snapshot() {
		if l.OnKeyDown(k) {
			suppress = true
		}
	}
	return suppress
}

// KeyUp delivers a release.
func (d *Dispatcher) KeyUp(k Key) {
	for _, l := range d.snapshot() {
		l.OnKeyUp(k)
	}
}
