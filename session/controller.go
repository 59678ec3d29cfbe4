package session

import (
	"sync"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/mkrall/hapt/pattern"
)

// State is a snapshot of a controller's observable state.
type State struct {
	Supported bool
	Active    bool
}

// Controller owns the active/idle flag for one vibration capability and
// schedules its own reset once a triggered pattern should have finished.
//
// Support is probed once at construction and never re-checked. When the
// capability is unsupported every operation is a no-op and Active stays
// false.
type Controller struct {
	cap       Capability
	supported bool
	clk       clock.Clock
	log       *zap.Logger
	def       pattern.Pattern

	mu          sync.Mutex
	active      bool
	generation  uint64
	subscribers map[int]func(State)
	nextSubID   int
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock, letting tests drive deferred resets
// deterministically.
func WithClock(clk clock.Clock) Option {
	return func(c *Controller) { c.clk = clk }
}

// WithLogger sets the sink for driver errors. Errors are never returned
// to callers; this is the only place they surface.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithDefault replaces the pattern used by Trigger when none is given.
func WithDefault(p pattern.Pattern) Option {
	return func(c *Controller) { c.def = p }
}

// New builds a controller around the given capability, probing support
// exactly once.
func New(cap Capability, opts ...Option) *Controller {
	c := &Controller{
		cap:         cap,
		clk:         clock.New(),
		log:         zap.NewNop(),
		def:         pattern.Default,
		subscribers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.supported = cap != nil && cap.Supported()
	return c
}

// Trigger requests a vibration. With no argument the default pattern is
// used; extra arguments beyond the first are ignored. The active flag
// follows the capability's acceptance signal and clears itself once the
// pattern's total duration has elapsed. Driver failures are absorbed:
// they go to the logger and force the flag false.
func (c *Controller) Trigger(ps ...pattern.Pattern) {
	if !c.supported {
		return
	}
	p := c.def
	if len(ps) > 0 {
		p = ps[0]
	}

	accepted, err := c.cap.Vibrate(p)
	if err != nil {
		c.log.Error("vibration failed", zap.String("pattern", p.String()), zap.Error(err))
		c.setActive(false)
		return
	}

	gen := c.setActive(accepted)

	if total := p.Total(); total > 0 {
		// A later Trigger or Stop bumps the generation, so a reset
		// scheduled here can never clip a newer session.
		c.clk.AfterFunc(total, func() {
			c.clearIfCurrent(gen)
		})
	}
}

// Stop cancels any in-progress vibration and forces the flag idle. If
// the driver errors the flag is left untouched: the hardware state is
// unknown and pretending otherwise helps nobody.
func (c *Controller) Stop() {
	if !c.supported {
		return
	}
	if _, err := c.cap.Vibrate(pattern.Stop); err != nil {
		c.log.Error("stop failed", zap.Error(err))
		c.mu.Lock()
		c.generation++
		c.mu.Unlock()
		return
	}
	c.setActive(false)
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Supported: c.supported, Active: c.active}
}

// Supported reports whether the capability was present at construction.
func (c *Controller) Supported() bool { return c.supported }

// Active reports whether a triggered vibration is still expected to be
// running.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Subscribe registers fn to be called with a snapshot on every state
// transition. The returned cancel func unregisters it. Callbacks run
// synchronously on whichever goroutine caused the transition, outside
// the controller's lock.
func (c *Controller) Subscribe(fn func(State)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

// setActive records a new flag value under a fresh generation and
// returns that generation for the caller's deferred reset.
func (c *Controller) setActive(active bool) uint64 {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	changed := c.active != active
	c.active = active
	snapshot := State{Supported: c.supported, Active: c.active}
	subs := c.snapshotSubscribersLocked()
	c.mu.Unlock()

	if changed {
		notify(subs, snapshot)
	}
	return gen
}

// clearIfCurrent is the deferred reset: it only clears the flag when no
// newer Trigger or Stop has superseded the session it was scheduled for.
func (c *Controller) clearIfCurrent(gen uint64) {
	c.mu.Lock()
	if c.generation != gen || !c.active {
		c.mu.Unlock()
		return
	}
	c.active = false
	snapshot := State{Supported: c.supported, Active: false}
	subs := c.snapshotSubscribersLocked()
	c.mu.Unlock()

	notify(subs, snapshot)
}

func (c *Controller) snapshotSubscribersLocked() []func(State) {
	subs := make([]func(State), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(State), s State) {
	for _, fn := range subs {
		fn(s)
	}
}
