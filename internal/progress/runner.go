package progress

import (
	"context"
	"sync"
	"time"
)

// Update is one progress tick delivered to the callback.
type Update struct {
	Stage   string  `json:"stage"`
	Percent float64 `json:"percent"` // 0-100, monotonically non-decreasing
	Done    bool    `json:"done"`
}

// Callback receives progress updates. It is invoked from the runner's
// goroutine; callbacks must not block for long.
type Callback func(Update)

// Runner subdivides the total duration of its stages across fixed-size ticks
// and reports a monotonically increasing percentage. It is an explicit
// cancellable task: Start launches it, Cancel (or context cancellation) stops
// it before completion, and Wait blocks until it has stopped either way.
type Runner struct {
	stages   []Stage
	interval time.Duration
	onUpdate Callback

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	started  bool
	lastPct  float64
	finished bool
}

// NewRunner creates a runner over the given stages. A zero interval defaults
// to 100ms ticks.
func NewRunner(stages []Stage, interval time.Duration, onUpdate Callback) *Runner {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Runner{
		stages:   stages,
		interval: interval,
		onUpdate: onUpdate,
	}
}

// Start launches the tick loop. It is a no-op if the runner already started.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.started = true

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(runCtx)
}

// Cancel stops the runner before completion. Safe to call multiple times and
// after completion.
func (r *Runner) Cancel() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Wait blocks until the runner has stopped, via completion or cancellation.
func (r *Runner) Wait() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Finished reports whether the runner reached 100 percent.
func (r *Runner) Finished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finished
}

// Percent returns the last reported percentage.
func (r *Runner) Percent() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPct
}

func (r *Runner) loop(ctx context.Context) {
	defer close(r.done)
	defer r.cancel()

	total := TotalDuration(r.stages)
	if total <= 0 || len(r.stages) == 0 {
		r.emit(Update{Percent: 100, Done: true})
		r.mu.Lock()
		r.finished = true
		r.mu.Unlock()
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			// Cancelled: no further increases, no completion event.
			return
		case <-ticker.C:
			elapsed := time.Since(start)
			pct := float64(elapsed) / float64(total) * 100
			if pct >= 100 {
				r.emit(Update{
					Stage:   r.stages[len(r.stages)-1].Name,
					Percent: 100,
					Done:    true,
				})
				r.mu.Lock()
				r.finished = true
				r.mu.Unlock()
				return
			}
			r.emit(Update{
				Stage:   r.stages[stageAt(r.stages, elapsed)].Name,
				Percent: pct,
			})
		}
	}
}

// emit guards monotonicity and records the last percentage before invoking
// the callback.
func (r *Runner) emit(u Update) {
	r.mu.Lock()
	if u.Percent < r.lastPct {
		u.Percent = r.lastPct
	}
	r.lastPct = u.Percent
	cb := r.onUpdate
	r.mu.Unlock()

	if cb != nil {
		cb(u)
	}
}
