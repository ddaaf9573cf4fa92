package watch

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder counts hook invocations and can hold runs open to simulate
// long regenerations
type recorder struct {
	mu      sync.Mutex
	runs    []string
	removed []string
	full    atomic.Int32
	block   chan struct{}
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		RunFile: func(path string) {
			if r.block != nil {
				<-r.block
			}
			r.mu.Lock()
			r.runs = append(r.runs, path)
			r.mu.Unlock()
		},
		RemoveFile: func(path string) {
			r.mu.Lock()
			r.removed = append(r.removed, path)
			r.mu.Unlock()
		},
		FullRun: func() { r.full.Add(1) },
	}
}

func (r *recorder) runCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.runs)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestDebounceCoalescesBursts(t *testing.T) {
	rec := &recorder{}
	c := NewCoordinator(30*time.Millisecond, rec.hooks())
	defer c.Stop()

	for i := 0; i < 10; i++ {
		c.Handle(Event{Path: "lib/user.dart", Kind: Modified})
		time.Sleep(2 * time.Millisecond)
	}

	waitFor(t, func() bool { return rec.runCount() == 1 })
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, rec.runCount(), "burst must collapse to one run")
}

func TestDistinctPathsRunIndependently(t *testing.T) {
	rec := &recorder{}
	c := NewCoordinator(10*time.Millisecond, rec.hooks())
	defer c.Stop()

	c.Handle(Event{Path: "lib/a.dart", Kind: Modified})
	c.Handle(Event{Path: "lib/b.dart", Kind: Created})

	waitFor(t, func() bool { return rec.runCount() == 2 })

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.ElementsMatch(t, []string{"lib/a.dart", "lib/b.dart"}, rec.runs)
}

func TestEventDuringRunQueuesOneTrailingPass(t *testing.T) {
	rec := &recorder{block: make(chan struct{})}
	c := NewCoordinator(5*time.Millisecond, rec.hooks())
	defer c.Stop()

	c.Handle(Event{Path: "lib/a.dart", Kind: Modified})
	time.Sleep(20 * time.Millisecond) // first run is now blocked inside RunFile

	// Several events while the run is in flight queue exactly one more pass
	for i := 0; i < 5; i++ {
		c.Handle(Event{Path: "lib/a.dart", Kind: Modified})
	}
	time.Sleep(20 * time.Millisecond)
	close(rec.block)

	waitFor(t, func() bool { return rec.runCount() == 2 })
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, rec.runCount())
}

func TestDeleteCancelsPendingAndRemoves(t *testing.T) {
	rec := &recorder{}
	c := NewCoordinator(50*time.Millisecond, rec.hooks())
	defer c.Stop()

	c.Handle(Event{Path: "lib/a.dart", Kind: Modified})
	c.Handle(Event{Path: "lib/a.dart", Kind: Deleted})

	rec.mu.Lock()
	require.Equal(t, []string{"lib/a.dart"}, rec.removed)
	rec.mu.Unlock()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, rec.runCount(), "pending regeneration must be cancelled by the delete")
}

func TestConfigChangeTriggersFullRun(t *testing.T) {
	rec := &recorder{}
	c := NewCoordinator(10*time.Millisecond, rec.hooks())
	defer c.Stop()

	c.Handle(Event{Path: "superfastgen.yaml", Kind: ConfigChanged})
	c.Handle(Event{Path: "superfastgen.yaml", Kind: ConfigChanged})

	waitFor(t, func() bool { return rec.full.Load() == 1 })
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), rec.full.Load(), "config burst collapses to one full rerun")
}

func TestConfigChangeFlushesPendingPathTimers(t *testing.T) {
	rec := &recorder{}
	c := NewCoordinator(50*time.Millisecond, rec.hooks())
	defer c.Stop()

	c.Handle(Event{Path: "lib/a.dart", Kind: Modified})
	c.Handle(Event{Path: "superfastgen.yaml", Kind: ConfigChanged})

	waitFor(t, func() bool { return rec.full.Load() == 1 })
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, rec.runCount(), "full rerun subsumes the pending per-file run")
}

func TestStopPreventsFurtherRuns(t *testing.T) {
	rec := &recorder{}
	c := NewCoordinator(20*time.Millisecond, rec.hooks())

	c.Handle(Event{Path: "lib/a.dart", Kind: Modified})
	c.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, rec.runCount())
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "created", Created.String())
	assert.Equal(t, "modified", Modified.String())
	assert.Equal(t, "deleted", Deleted.String())
	assert.Equal(t, "config-changed", ConfigChanged.String())
}
