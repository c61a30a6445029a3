// Package sync owns save scheduling: it watches the state store's change
// stream, debounces bursts of edits into single writes, refuses to write
// until the session is loaded and the connection is stable, and serializes
// upserts so at most one is ever in flight. Edits are never dropped: a
// skipped save stays pending until the next change or until the connection
// stabilizes again.
package sync

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/lumina-journal/lumina/internal/client/models"
	"github.com/lumina-journal/lumina/internal/client/state"
	"github.com/lumina-journal/lumina/internal/logging"
)

// DefaultDebounceWindow is the idle period after the last edit before a
// save attempt fires.
const DefaultDebounceWindow = 2 * time.Second

// Remote is the slice of the store adapter the coordinator needs.
type Remote interface {
	UpsertDocument(ctx context.Context, userID string, doc *models.UserDocument) error
}

// Gate tells the coordinator whether writes are currently permitted and
// receives the outcome of each attempt. Implemented by connectivity.Monitor.
type Gate interface {
	IsStable() bool
	ReportWriteFailure()
	ReportWriteSuccess()
}

// LocalCache receives a write-through copy of every snapshot so offline
// edits survive a restart. Implemented by cache.Cache; may be nil.
type LocalCache interface {
	Put(userID string, doc *models.UserDocument, dirty bool) error
}

// Coordinator schedules document persistence for one session at a time.
type Coordinator struct {
	clk      clock.Clock
	remote   Remote
	gate     Gate
	cache    LocalCache
	log      logging.Logger
	debounce time.Duration

	// saveMu serializes upserts: a debounce firing while a save is in
	// flight blocks here until the previous one settles.
	saveMu sync.Mutex

	mu           sync.Mutex
	userID       string
	loaded       bool
	pending      *models.UserDocument
	pendingVer   uint64
	savedVer     uint64
	timer        *clock.Timer
	gen          uint64
	lastSaveTime time.Time
}

// New builds a coordinator. The gate's stable-entry hook is wired so that
// edits held back while the connection was settling are flushed as soon as
// it stabilizes, instead of waiting for the next mutation.
func New(clk clock.Clock, rem Remote, gate Gate, localCache LocalCache, debounce time.Duration, log logging.Logger) *Coordinator {
	if debounce <= 0 {
		debounce = DefaultDebounceWindow
	}
	return &Coordinator{
		clk:      clk,
		remote:   rem,
		gate:     gate,
		cache:    localCache,
		log:      log,
		debounce: debounce,
	}
}

// Arm binds the coordinator to an authenticated session. No write happens
// until MarkLoaded is also called.
func (c *Coordinator) Arm(userID string) {
	c.mu.Lock()
	c.userID = userID
	c.loaded = false
	c.pending = nil
	c.pendingVer = 0
	c.savedVer = 0
	c.stopTimerLocked()
	c.mu.Unlock()
}

// MarkLoaded records that the initial document load for the armed session
// completed successfully, unblocking the save gate.
func (c *Coordinator) MarkLoaded() {
	c.mu.Lock()
	c.loaded = true
	c.mu.Unlock()
}

// Disarm detaches from the session on logout; pending edits are discarded
// together with the session that owned them.
func (c *Coordinator) Disarm() {
	c.mu.Lock()
	c.userID = ""
	c.loaded = false
	c.pending = nil
	c.pendingVer = 0
	c.savedVer = 0
	c.stopTimerLocked()
	c.mu.Unlock()
}

// Run consumes the state store's change stream until ctx is done. Intended
// to run on its own goroutine.
func (c *Coordinator) Run(ctx context.Context, changes <-chan state.Change) {
	for {
		select {
		case ch := <-changes:
			c.onChange(ctx, ch)
		case <-ctx.Done():
			return
		}
	}
}

// onChange registers the latest snapshot and (re)starts the debounce timer,
// coalescing rapid edits into one save attempt.
func (c *Coordinator) onChange(ctx context.Context, ch state.Change) {
	c.mu.Lock()
	c.pending = ch.Doc
	c.pendingVer = ch.Version
	userID := c.userID
	c.startTimerLocked()
	c.mu.Unlock()

	// Write-through to the local cache so the edit survives a crash or an
	// offline restart. Marked dirty until the store confirms the write.
	if c.cache != nil && userID != "" {
		if err := c.cache.Put(userID, ch.Doc, true); err != nil {
			c.log.Warn(ctx, "local cache write failed", "error", err)
		}
	}
}

// OnStableEntry is registered with the connectivity monitor; entering the
// stable state flushes any edit that a skipped save left pending.
func (c *Coordinator) OnStableEntry() {
	go c.attempt(context.Background())
}

// Kick forces an immediate save attempt (manual re-trigger). Gating still
// applies.
func (c *Coordinator) Kick(ctx context.Context) {
	c.attempt(ctx)
}

func (c *Coordinator) startTimerLocked() {
	c.stopTimerLocked()
	c.gen++
	gen := c.gen
	c.timer = c.clk.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		stale := gen != c.gen
		c.mu.Unlock()
		if stale {
			return
		}
		c.attempt(context.Background())
	})
}

func (c *Coordinator) stopTimerLocked() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// attempt performs one gated save. The skip cases deliberately leave the
// pending snapshot in place: the next change or stability transition
// re-evaluates, so nothing is silently dropped.
func (c *Coordinator) attempt(ctx context.Context) {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.mu.Lock()
	doc := c.pending
	version := c.pendingVer
	saved := c.savedVer
	userID := c.userID
	loaded := c.loaded
	c.mu.Unlock()

	if doc == nil || version <= saved {
		return
	}
	if userID == "" {
		c.log.Debug(ctx, "save skipped", "reason", "no session")
		return
	}
	if !loaded {
		c.log.Debug(ctx, "save skipped", "reason", "initial load pending")
		return
	}
	if !c.gate.IsStable() {
		c.log.Warn(ctx, "save skipped", "reason", "connection not stable")
		return
	}

	if err := c.remote.UpsertDocument(ctx, userID, doc); err != nil {
		c.gate.ReportWriteFailure()
		c.log.Error(ctx, "auto-save failed, will retry on next change", "error", err)
		return
	}

	c.gate.ReportWriteSuccess()
	c.mu.Lock()
	if version > c.savedVer {
		c.savedVer = version
	}
	c.lastSaveTime = c.clk.Now()
	c.mu.Unlock()

	if c.cache != nil {
		if err := c.cache.Put(userID, doc, false); err != nil {
			c.log.Warn(ctx, "local cache write failed", "error", err)
		}
	}
	c.log.Info(ctx, "document saved", "version", version)
}

// Dirty reports whether edits newer than the last confirmed save exist.
func (c *Coordinator) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil && c.pendingVer > c.savedVer
}

// LastSaveTime returns when the last successful save completed (zero when
// none happened yet).
func (c *Coordinator) LastSaveTime() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSaveTime
}
