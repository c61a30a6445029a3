package sync

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-journal/lumina/internal/client/models"
	"github.com/lumina-journal/lumina/internal/client/state"
	"github.com/lumina-journal/lumina/internal/common"
	"github.com/lumina-journal/lumina/internal/logging"
)

type fakeRemote struct {
	mu    sync.Mutex
	err   error
	calls []*models.UserDocument
}

func (f *fakeRemote) UpsertDocument(_ context.Context, _ string, doc *models.UserDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, doc)
	return nil
}

func (f *fakeRemote) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRemote) last() *models.UserDocument {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

type fakeGate struct {
	mu       sync.Mutex
	stable   bool
	failures int
}

func (g *fakeGate) IsStable() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stable
}

func (g *fakeGate) ReportWriteFailure() {
	g.mu.Lock()
	g.failures++
	g.mu.Unlock()
}

func (g *fakeGate) ReportWriteSuccess() {}

func (g *fakeGate) setStable(v bool) {
	g.mu.Lock()
	g.stable = v
	g.mu.Unlock()
}

type cachePut struct {
	userID string
	dirty  bool
}

type fakeCache struct {
	mu   sync.Mutex
	puts []cachePut
}

func (c *fakeCache) Put(userID string, _ *models.UserDocument, dirty bool) error {
	c.mu.Lock()
	c.puts = append(c.puts, cachePut{userID: userID, dirty: dirty})
	c.mu.Unlock()
	return nil
}

func newTestCoordinator(t *testing.T) (*Coordinator, *fakeRemote, *fakeGate, *fakeCache, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()
	rem := &fakeRemote{}
	gate := &fakeGate{stable: true}
	cache := &fakeCache{}
	c := New(clk, rem, gate, cache, DefaultDebounceWindow, logging.NewTextLogger(io.Discard, slog.LevelError))
	return c, rem, gate, cache, clk
}

func docV(version uint64) state.Change {
	doc := models.DefaultDocument()
	doc.DisplayName = "v"
	return state.Change{Doc: doc, Version: version}
}

func TestCoordinatorDebouncesBursts(t *testing.T) {
	c, rem, _, _, clk := newTestCoordinator(t)
	ctx := context.Background()
	c.Arm("user-1")
	c.MarkLoaded()

	c.onChange(ctx, docV(1))
	clk.Add(time.Second)
	c.onChange(ctx, docV(2))
	clk.Add(time.Second)
	c.onChange(ctx, docV(3))

	// Each edit restarted the window, so nothing has been written yet.
	require.Equal(t, 0, rem.count())
	assert.True(t, c.Dirty())

	// The mock clock fires the debounce callback on its own goroutine.
	clk.Add(DefaultDebounceWindow)
	require.Eventually(t, func() bool { return rem.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, c.Dirty())
	assert.Equal(t, clk.Now(), c.LastSaveTime())
}

func TestCoordinatorSkipsWithoutSession(t *testing.T) {
	c, rem, _, _, clk := newTestCoordinator(t)
	ctx := context.Background()

	c.onChange(ctx, docV(1))
	clk.Add(DefaultDebounceWindow)
	assert.Equal(t, 0, rem.count())
}

func TestCoordinatorSkipsBeforeInitialLoad(t *testing.T) {
	c, rem, _, _, clk := newTestCoordinator(t)
	ctx := context.Background()
	c.Arm("user-1")

	c.onChange(ctx, docV(1))
	clk.Add(DefaultDebounceWindow)
	require.Equal(t, 0, rem.count())
	assert.True(t, c.Dirty())

	// The pending edit is flushed once the load completes.
	c.MarkLoaded()
	c.Kick(ctx)
	assert.Equal(t, 1, rem.count())
}

func TestCoordinatorSkipsWhileUnstableAndFlushesOnStable(t *testing.T) {
	c, rem, gate, _, clk := newTestCoordinator(t)
	ctx := context.Background()
	c.Arm("user-1")
	c.MarkLoaded()
	gate.setStable(false)

	c.onChange(ctx, docV(1))
	clk.Add(DefaultDebounceWindow)
	require.Equal(t, 0, rem.count())
	assert.True(t, c.Dirty())

	gate.setStable(true)
	c.OnStableEntry()
	require.Eventually(t, func() bool { return rem.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, c.Dirty())
}

func TestCoordinatorReportsWriteFailure(t *testing.T) {
	c, rem, gate, _, clk := newTestCoordinator(t)
	ctx := context.Background()
	c.Arm("user-1")
	c.MarkLoaded()
	rem.err = common.ErrUnavailable

	c.onChange(ctx, docV(1))
	clk.Add(DefaultDebounceWindow)

	require.Eventually(t, func() bool {
		gate.mu.Lock()
		defer gate.mu.Unlock()
		return gate.failures == 1
	}, time.Second, 5*time.Millisecond)
	assert.True(t, c.Dirty(), "failed save must keep the edit pending")

	// Next attempt succeeds and clears the pending edit.
	rem.mu.Lock()
	rem.err = nil
	rem.mu.Unlock()
	c.Kick(ctx)
	assert.Equal(t, 1, rem.count())
	assert.False(t, c.Dirty())
}

func TestCoordinatorDoesNotResaveUnchangedVersion(t *testing.T) {
	c, rem, _, _, clk := newTestCoordinator(t)
	ctx := context.Background()
	c.Arm("user-1")
	c.MarkLoaded()

	c.onChange(ctx, docV(1))
	clk.Add(DefaultDebounceWindow)
	require.Eventually(t, func() bool { return rem.count() == 1 }, time.Second, 5*time.Millisecond)

	c.Kick(ctx)
	c.OnStableEntry()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, rem.count())
}

func TestCoordinatorDisarmDiscardsPending(t *testing.T) {
	c, rem, _, _, clk := newTestCoordinator(t)
	ctx := context.Background()
	c.Arm("user-1")
	c.MarkLoaded()

	c.onChange(ctx, docV(1))
	c.Disarm()
	clk.Add(DefaultDebounceWindow)

	assert.Equal(t, 0, rem.count())
	assert.False(t, c.Dirty())
}

func TestCoordinatorWritesThroughToCache(t *testing.T) {
	c, _, _, cache, clk := newTestCoordinator(t)
	ctx := context.Background()
	c.Arm("user-1")
	c.MarkLoaded()

	c.onChange(ctx, docV(1))
	clk.Add(DefaultDebounceWindow)

	require.Eventually(t, func() bool {
		cache.mu.Lock()
		defer cache.mu.Unlock()
		return len(cache.puts) == 2
	}, time.Second, 5*time.Millisecond)

	cache.mu.Lock()
	defer cache.mu.Unlock()
	assert.Equal(t, cachePut{userID: "user-1", dirty: true}, cache.puts[0])
	assert.Equal(t, cachePut{userID: "user-1", dirty: false}, cache.puts[1])
}

func TestCoordinatorRunConsumesChangeStream(t *testing.T) {
	c, rem, _, _, clk := newTestCoordinator(t)
	c.Arm("user-1")
	c.MarkLoaded()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan state.Change, 1)
	done := make(chan struct{})
	go func() {
		c.Run(ctx, changes)
		close(done)
	}()

	changes <- docV(1)
	require.Eventually(t, func() bool { return c.Dirty() }, time.Second, 5*time.Millisecond)

	clk.Add(DefaultDebounceWindow)
	require.Eventually(t, func() bool { return rem.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "v", rem.last().DisplayName)

	cancel()
	<-done
}
