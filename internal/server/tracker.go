package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skillgap-ai/skillgap-api/internal/progress"
)

// progressTracker owns the simulated pipeline runners, one per analysis, and
// fans their updates out to any number of SSE subscribers.
type progressTracker struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*trackerEntry
}

type trackerEntry struct {
	runner *progress.Runner

	mu   sync.Mutex
	last progress.Update
	subs map[chan progress.Update]struct{}
}

func newProgressTracker() *progressTracker {
	return &progressTracker{entries: make(map[uuid.UUID]*trackerEntry)}
}

// Start launches a runner for the analysis. A second Start for the same ID is
// a no-op; the existing runner keeps ticking.
func (t *progressTracker) Start(analysisID uuid.UUID, stages []progress.Stage, interval time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.entries[analysisID]; exists {
		return
	}

	entry := &trackerEntry{subs: make(map[chan progress.Update]struct{})}
	entry.runner = progress.NewRunner(stages, interval, func(u progress.Update) {
		entry.broadcast(u)
		if u.Done {
			// Finished runners have nothing left to deliver; late
			// subscribers are served from the stored analysis status.
			t.remove(analysisID, entry)
		}
	})
	t.entries[analysisID] = entry
	entry.runner.Start(context.Background())
}

// remove evicts the entry unless Cancel already replaced or dropped it.
func (t *progressTracker) remove(analysisID uuid.UUID, entry *trackerEntry) {
	t.mu.Lock()
	if t.entries[analysisID] == entry {
		delete(t.entries, analysisID)
	}
	t.mu.Unlock()
}

// Subscribe returns a channel of updates for the analysis and an unsubscribe
// function. ok is false when no runner exists for the ID. The last known
// update is replayed immediately so late subscribers see current progress.
func (t *progressTracker) Subscribe(analysisID uuid.UUID) (<-chan progress.Update, func(), bool) {
	t.mu.Lock()
	entry, exists := t.entries[analysisID]
	t.mu.Unlock()
	if !exists {
		return nil, nil, false
	}

	ch := make(chan progress.Update, 16)

	entry.mu.Lock()
	last := entry.last
	done := last.Done
	if !done {
		entry.subs[ch] = struct{}{}
	}
	entry.mu.Unlock()

	// Replay the latest update; if the runner already finished the channel
	// carries the terminal event and nothing else.
	if last.Percent > 0 || done {
		ch <- last
	}
	if done {
		close(ch)
		return ch, func() {}, true
	}

	unsubscribe := func() {
		entry.mu.Lock()
		if _, ok := entry.subs[ch]; ok {
			delete(entry.subs, ch)
			close(ch)
		}
		entry.mu.Unlock()
	}
	return ch, unsubscribe, true
}

// Cancel stops the runner for the analysis, if any.
func (t *progressTracker) Cancel(analysisID uuid.UUID) {
	t.mu.Lock()
	entry, exists := t.entries[analysisID]
	delete(t.entries, analysisID)
	t.mu.Unlock()
	if exists {
		entry.runner.Cancel()
		entry.runner.Wait()
		entry.closeSubs()
	}
}

// CancelAll stops every runner. Called on server shutdown.
func (t *progressTracker) CancelAll() {
	t.mu.Lock()
	entries := make([]*trackerEntry, 0, len(t.entries))
	for id, e := range t.entries {
		entries = append(entries, e)
		delete(t.entries, id)
	}
	t.mu.Unlock()

	for _, e := range entries {
		e.runner.Cancel()
		e.runner.Wait()
		e.closeSubs()
	}
}

// broadcast delivers an update to all subscribers, dropping ticks for any
// subscriber whose buffer is full. Terminal updates close the channels.
func (e *trackerEntry) broadcast(u progress.Update) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.last = u
	for ch := range e.subs {
		select {
		case ch <- u:
		default:
			if !u.Done {
				// Slow subscriber; it will catch up on the next tick.
				continue
			}
			// The terminal update has no next tick. Evict the oldest
			// buffered update to make room; only broadcast sends, so
			// the freed slot cannot fill before the send below.
			select {
			case <-ch:
			default:
			}
			ch <- u
		}
	}
	if u.Done {
		for ch := range e.subs {
			close(ch)
			delete(e.subs, ch)
		}
	}
}

func (e *trackerEntry) closeSubs() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for ch := range e.subs {
		close(ch)
		delete(e.subs, ch)
	}
}
