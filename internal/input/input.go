package input

import (
	"sync"
	"sync/atomic"
)

// Key identifies a physical key. Values match raylib key codes so graphics.KeySource can pass them through.
type Key int32

const (
	KeyEnter   Key = 257
	KeyEscape  Key = 256
	KeyRight   Key = 262
	KeyLeft    Key = 263
	KeyDown    Key = 264
	KeyUp      Key = 265
	KeyA       Key = 65
	KeyD       Key = 68
	KeyS       Key = 83
	KeyW       Key = 87
	KeyKpEnter Key = 335
)

// State is one frame's view of the held movement keys. Escape and Enter are never held state;
// they arrive as callbacks on the Sampler.
type State struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

// Idle reports whether no movement key is held.
func (s State) Idle() bool {
	return !s.Forward && !s.Backward && !s.Left && !s.Right
}

// Listener receives key transitions from a Source.
type Listener interface {
	OnKeyDown(k Key) bool
	OnKeyUp(k Key)
}

// Source delivers key events. Subscribe returns a function that removes the listener.
type Source interface {
	Subscribe(l Listener) (unsubscribe func())
}

// Sampler turns key events into held movement flags plus two edge-triggered callbacks.
// Each flag has exactly one writer (the handler for its key codes), so events may arrive
// on a different goroutine than the frame loop that reads Snapshot.
type Sampler struct {
	forward  atomic.Bool
	backward atomic.Bool
	left     atomic.Bool
	right    atomic.Bool

	// OnEscape and OnEnter run synchronously inside OnKeyDown. Set them before Mount.
	OnEscape func()
	OnEnter  func()
}

// NewSampler returns a sampler with every flag released.
func NewSampler(onEscape, onEnter func()) *Sampler {
	return &Sampler{OnEscape: onEscape, OnEnter: onEnter}
}

func (s *Sampler) flag(k Key) *atomic.Bool {
	switch k {
	case KeyUp, KeyW:
		return &s.forward
	case KeyDown, KeyS:
		return &s.backward
	case KeyLeft, KeyA:
		return &s.left
	case KeyRight, KeyD:
		return &s.right
	}
	return nil
}

// OnKeyDown sets the movement flag for k (repeat presses are idempotent) and returns true,
// meaning the host should suppress the key's default action. Escape and Enter fire their
// callbacks and return false. Unknown keys are ignored.
func (s *Sampler) OnKeyDown(k Key) bool {
	if f := s.flag(k); f != nil {
		f.Store(true)
		return true
	}
	switch k {
	case KeyEscape:
		if s.OnEscape != nil {
			s.OnEscape()
		}
	case KeyEnter, KeyKpEnter:
		if s.OnEnter != nil {
			s.OnEnter()
		}
	}
	return false
}

// OnKeyUp clears the movement flag for k. Escape, Enter and unknown keys are no-ops.
func (s *Sampler) OnKeyUp(k Key) {
	if f := s.flag(k); f != nil {
		f.Store(false)
	}
}

// Snapshot returns the held flags for this frame.
func (s *Sampler) Snapshot() State {
	return State{
		Forward:  s.forward.Load(),
		Backward: s.backward.Load(),
		Left:     s.left.Load(),
		Right:    s.right.Load(),
	}
}

// Reset releases every held flag, e.g. when keyboard focus moves to the terminal.
func (s *Sampler) Reset() {
	s.forward.Store(false)
	s.backward.Store(false)
	s.left.Store(false)
	s.right.Store(false)
}

// Mount subscribes s to src for the lifetime of the caller. The returned release unsubscribes,
// clears held flags so nothing stays stuck after teardown, and is safe to call more than once.
func (s *Sampler) Mount(src Source) (release func()) {
	unsubscribe := src.Subscribe(s)
	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			s.Reset()
		})
	}
}
