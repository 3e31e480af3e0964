package gallery

import (
	"sync"

	"go.uber.org/zap"

	"hark-back/internal/input"
	"hark-back/internal/interaction"
	"hark-back/internal/motion"
	"hark-back/internal/proximity"
	"hark-back/internal/world"
)

// Config is the navigation tuning for one session.
type Config struct {
	Motion    motion.Params
	Room      world.Room
	Threshold float32
}

// DefaultConfig returns the tuned gallery walk.
func DefaultConfig() Config {
	return Config{
		Motion:    motion.DefaultParams(),
		Room:      world.DefaultRoom(),
		Threshold: proximity.DefaultThreshold,
	}
}

// Controller runs the per-frame navigation update and owns the interaction state.
// Frame runs on the render goroutine; key callbacks and pointer actions may arrive from
// elsewhere, so everything except the input flags is guarded by mu.
type Controller struct {
	log     *zap.Logger
	gallery *world.Gallery
	sampler *input.Sampler

	mu         sync.Mutex
	integrator *motion.Integrator
	follower   *motion.Follower
	tracker    *proximity.Tracker
	machine    *interaction.Machine
	pose       motion.Pose
	camera     motion.Camera
}

// New builds a controller with the character at the room's spawn point.
func New(cfg Config, g *world.Gallery, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		log:        log,
		gallery:    g,
		integrator: motion.NewIntegrator(cfg.Motion, cfg.Room),
		follower:   motion.NewFollower(),
		tracker:    proximity.NewTracker(g, cfg.Threshold),
		machine:    interaction.New(),
		pose:       motion.Pose{Position: cfg.Room.Spawn},
	}
	c.camera = c.follower.Snap(c.pose)
	c.sampler = input.NewSampler(c.Escape, c.Enter)
	c.machine.OnChange(func(from, to interaction.Mode) {
		c.log.Debug("interaction mode changed",
			zap.Stringer("from", from),
			zap.Stringer("to", to))
	})
	return c
}

// Mount attaches the controller's key sampler to src. Call release on teardown.
func (c *Controller) Mount(src input.Source) (release func()) {
	return c.sampler.Mount(src)
}

// Sampler exposes the key sampler, e.g. to release held keys when the terminal takes focus.
func (c *Controller) Sampler() *input.Sampler {
	return c.sampler
}

// Gallery returns the session's exhibit table.
func (c *Controller) Gallery() *world.Gallery {
	return c.gallery
}

// Frame runs one update in fixed order: integrate and follow (only while exploring),
// then proximity (always), then feed a changed proximity result to the state machine.
func (c *Controller) Frame(dt float32) {
	keys := c.sampler.Snapshot()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.machine.Frozen() {
		c.pose = c.integrator.Step(c.pose, keys, dt)
		c.camera = c.follower.Follow(c.pose)
	}

	state, changed := c.tracker.Update(c.pose.Position)
	if !changed {
		return
	}
	c.machine.SetNearby(state)
	if state.Ok() {
		c.log.Debug("exhibit nearby",
			zap.Int("index", state.Index),
			zap.String("exhibit", state.Exhibit.ID))
	} else {
		c.log.Debug("left exhibit")
	}
}

// Escape is the escape-key path: close detail, else toggle menu.
func (c *Controller) Escape() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.Escape()
}

// Enter is the enter-key path: open the detail panel for the nearby exhibit.
func (c *Controller) Enter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.Enter()
}

// ToggleMenu is the pointer path for the menu button.
func (c *Controller) ToggleMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.ToggleMenu()
}

// CloseMenu is the pointer path for the menu's close target.
func (c *Controller) CloseMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.CloseMenu()
}

// CloseDetail is the pointer path for the detail panel's close target.
func (c *Controller) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.machine.CloseDetail()
}

// Pose returns the character pose.
func (c *Controller) Pose() motion.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose
}

// Camera returns the chase camera.
func (c *Controller) Camera() motion.Camera {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.camera
}

// Nearby returns the nearest exhibit for the on-screen hint.
func (c *Controller) Nearby() proximity.NearbyState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Nearby()
}

// Mode returns the overlay mode for the HUD.
func (c *Controller) Mode() interaction.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Mode()
}

// Detail returns the exhibit in the detail panel, if open.
func (c *Controller) Detail() (world.Exhibit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Detail()
}

// Snapshot is a consistent read of everything the HUD and scene draw in one frame.
type Snapshot struct {
	Pose   motion.Pose
	Camera motion.Camera
	Nearby proximity.NearbyState
	Mode   interaction.Mode
	Detail *world.Exhibit
}

// Snapshot returns the frame state under a single lock.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		Pose:   c.pose,
		Camera: c.camera,
		Nearby: c.machine.Nearby(),
		Mode:   c.machine.Mode(),
	}
	if e, ok := c.machine.Detail(); ok {
		s.Detail = &e
	}
	return s
}
