package multiplayer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/lanecross/internal/crossing"
)

// SnapshotCell holds the most recent snapshot of a world. One goroutine
// stores, any number load.
type SnapshotCell struct {
	p atomic.Pointer[crossing.Snapshot]
}

// Store publishes snap.
func (c *SnapshotCell) Store(snap crossing.Snapshot) {
	c.p.Store(&snap)
}

// Load returns the latest snapshot, or false if nothing was stored yet.
func (c *SnapshotCell) Load() (crossing.Snapshot, bool) {
	p := c.p.Load()
	if p == nil {
		return crossing.Snapshot{}, false
	}
	return *p, true
}

// Runner drives one World at a fixed tick rate. While Run is active the
// runner's goroutine is the only one touching the World; other goroutines
// push actions into the queue and read snapshots from Latest.
type Runner struct {
	world    *crossing.World
	queue    *InputQueue
	dt       float64
	interval time.Duration
	latest   SnapshotCell
	ticks    atomic.Uint64
	onTick   func(crossing.Snapshot)
}

// NewRunner binds a world and its input queue to a tick rate.
func NewRunner(world *crossing.World, queue *InputQueue, tickRate int) *Runner {
	if tickRate < 1 {
		tickRate = 60
	}
	r := &Runner{
		world:    world,
		queue:    queue,
		dt:       1.0 / float64(tickRate),
		interval: time.Second / time.Duration(tickRate),
	}
	r.publish()
	return r
}

// OnTick registers a callback invoked on the runner goroutine after every
// tick with the fresh snapshot. Set it before Run.
func (r *Runner) OnTick(fn func(crossing.Snapshot)) {
	r.onTick = fn
}

// Queue returns the runner's input queue.
func (r *Runner) Queue() *InputQueue {
	return r.queue
}

// Step performs one loop iteration: every pending action is applied in
// arrival order, then the world advances one tick. It reports whether the
// world is still playing.
func (r *Runner) Step() bool {
	if r.world.IsGameOver() {
		return false
	}

	for {
		a, ok := r.queue.TryPop()
		if !ok {
			break
		}
		r.world.HandleInput(a)
	}
	r.world.Tick(r.dt)
	r.ticks.Add(1)

	snap := r.publish()
	if r.onTick != nil {
		r.onTick(snap)
	}
	return !snap.GameOver
}

// Run steps the world on a ticker until it is over or ctx is cancelled.
// It returns nil on game over and ctx.Err() on cancellation.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !r.Step() {
				return nil
			}
		}
	}
}

// Latest returns the most recently published snapshot.
func (r *Runner) Latest() crossing.Snapshot {
	snap, _ := r.latest.Load()
	return snap
}

// Ticks returns the number of ticks simulated so far.
func (r *Runner) Ticks() uint64 {
	return r.ticks.Load()
}

// Reset restarts the world with seed. It must not be called while Run is active.
func (r *Runner) Reset(seed string, startX int) {
	r.queue.Clear()
	r.world.Reset(seed, startX)
	r.ticks.Store(0)
	r.publish()
}

func (r *Runner) publish() crossing.Snapshot {
	snap := r.world.Snapshot()
	r.latest.Store(snap)
	return snap
}
