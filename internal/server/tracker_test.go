package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgap-ai/skillgap-api/internal/progress"
)

func shortStages() []progress.Stage {
	return []progress.Stage{
		{Name: "Parsing", Duration: 40 * time.Millisecond},
		{Name: "Scoring", Duration: 40 * time.Millisecond},
	}
}

func collectUpdates(t *testing.T, ch <-chan progress.Update) []progress.Update {
	t.Helper()

	var updates []progress.Update
	timeout := time.After(2 * time.Second)
	for {
		select {
		case u, open := <-ch:
			if !open {
				return updates
			}
			updates = append(updates, u)
			if u.Done {
				return updates
			}
		case <-timeout:
			t.Fatal("timed out waiting for progress updates")
		}
	}
}

func TestProgressTracker_RunsToCompletion(t *testing.T) {
	tracker := newProgressTracker()
	id := uuid.New()

	tracker.Start(id, shortStages(), 10*time.Millisecond)
	ch, unsubscribe, ok := tracker.Subscribe(id)
	require.True(t, ok)
	defer unsubscribe()

	updates := collectUpdates(t, ch)
	require.NotEmpty(t, updates)

	last := updates[len(updates)-1]
	assert.True(t, last.Done)
	assert.Equal(t, float64(100), last.Percent)

	for i := 1; i < len(updates); i++ {
		assert.GreaterOrEqual(t, updates[i].Percent, updates[i-1].Percent,
			"progress must never decrease")
	}
}

func TestProgressTracker_SubscribeUnknownID(t *testing.T) {
	tracker := newProgressTracker()

	_, _, ok := tracker.Subscribe(uuid.New())
	assert.False(t, ok)
}

func TestProgressTracker_DoubleStartIsNoop(t *testing.T) {
	tracker := newProgressTracker()
	id := uuid.New()

	tracker.Start(id, shortStages(), 10*time.Millisecond)
	tracker.Start(id, shortStages(), 10*time.Millisecond)

	ch, unsubscribe, ok := tracker.Subscribe(id)
	require.True(t, ok)
	defer unsubscribe()

	updates := collectUpdates(t, ch)
	assert.True(t, updates[len(updates)-1].Done)
}

func TestProgressTracker_CompletedRunnerIsEvicted(t *testing.T) {
	tracker := newProgressTracker()
	id := uuid.New()

	tracker.Start(id, shortStages(), 10*time.Millisecond)

	ch, unsubscribe, ok := tracker.Subscribe(id)
	require.True(t, ok)
	defer unsubscribe()
	collectUpdates(t, ch)

	// Completion drops the entry; late subscribers are served from the
	// stored analysis status instead.
	require.Eventually(t, func() bool {
		tracker.mu.Lock()
		defer tracker.mu.Unlock()
		return len(tracker.entries) == 0
	}, 2*time.Second, 10*time.Millisecond)

	_, _, ok = tracker.Subscribe(id)
	assert.False(t, ok)
}

func TestTrackerEntry_FullBufferStillGetsTerminalUpdate(t *testing.T) {
	entry := &trackerEntry{subs: make(map[chan progress.Update]struct{})}
	ch := make(chan progress.Update, 16)
	entry.subs[ch] = struct{}{}

	// Overflow the buffer without reading, then finish.
	for i := 1; i <= 20; i++ {
		entry.broadcast(progress.Update{Stage: "Scoring", Percent: float64(i)})
	}
	entry.broadcast(progress.Update{Stage: "Scoring", Percent: 100, Done: true})

	var last progress.Update
	for u := range ch {
		last = u
	}
	assert.True(t, last.Done, "terminal update must reach a slow subscriber")
	assert.Equal(t, float64(100), last.Percent)
}

func TestProgressTracker_CancelStopsRunner(t *testing.T) {
	tracker := newProgressTracker()
	id := uuid.New()

	stages := []progress.Stage{{Name: "Slow", Duration: time.Hour}}
	tracker.Start(id, stages, 10*time.Millisecond)

	ch, _, ok := tracker.Subscribe(id)
	require.True(t, ok)

	tracker.Cancel(id)

	// Channel closes without a terminal 100% event
	for u := range ch {
		assert.False(t, u.Done)
	}

	_, _, ok = tracker.Subscribe(id)
	assert.False(t, ok, "cancelled runner should be dropped from the tracker")
}

func TestProgressTracker_CancelAll(t *testing.T) {
	tracker := newProgressTracker()
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	for _, id := range ids {
		tracker.Start(id, []progress.Stage{{Name: "Slow", Duration: time.Hour}}, 10*time.Millisecond)
	}

	tracker.CancelAll()

	for _, id := range ids {
		_, _, ok := tracker.Subscribe(id)
		assert.False(t, ok)
	}
}
