package internal

import (
	"sync"
	"time"

	"github.com/petermattis/goid"
)

// Tick is the stamp assigned to one externally-initiated propagation. It is
// monotonically increasing per runtime and is carried unchanged through the
// whole fan-out of a single push.
type Tick = uint64

// Timer is the platform clock the runtime schedules against. Delay-style
// streams and integration are built on it; tests swap in a manual clock.
type Timer interface {
	Now() time.Time
	// AfterFunc schedules fn after d and returns a cancel function.
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

type wallTimer struct{}

func (wallTimer) Now() time.Time { return time.Now() }

func (wallTimer) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Runtime holds the propagation clock for one cooperative graph. Propagation
// itself is single-threaded; the mutex only serializes re-entry from timer
// callbacks and channel bridges.
type Runtime struct {
	mu    sync.Mutex
	clock Tick
	timer Timer

	// set while a moment body runs, so samples register as dependencies
	activeMoment *MomentBehavior
	momentTick   Tick
}

func NewRuntime() *Runtime {
	return &Runtime{timer: wallTimer{}}
}

var runtimes sync.Map

// GetRuntime returns the runtime owned by the calling goroutine, creating it
// on first use. Each goroutine gets its own graph clock.
func GetRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

// Tick advances the clock and returns the fresh stamp. Called once per
// external initiation: sink push, future resolve, producer callback, timer
// fire, channel settlement, or a top-level sample.
func (r *Runtime) Tick() Tick {
	r.clock++
	return r.clock
}

// Now returns the current stamp without advancing. Listener registration uses
// this so a node added mid-propagation can be told apart from the in-flight
// push.
func (r *Runtime) Now() Tick { return r.clock }

// Dispatch funnels an external callback back into the graph. Timer fires and
// channel bridges re-enter through here so they never interleave with each
// other.
func (r *Runtime) Dispatch(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}

func (r *Runtime) Timer() Timer { return r.timer }

// SetTimer swaps the platform clock. Tests install a manual clock here.
func (r *Runtime) SetTimer(t Timer) { r.timer = t }
