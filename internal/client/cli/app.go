// Package cli implements the interactive Lumina terminal client: a small
// REPL over the state store, wired to the persistence coordinator, the
// connectivity monitor and the store adapter.
package cli

import (
	"bufio"
	"context"
	"errors"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/robfig/cron/v3"

	"github.com/lumina-journal/lumina/internal/client/cache"
	"github.com/lumina-journal/lumina/internal/client/config"
	"github.com/lumina-journal/lumina/internal/client/connectivity"
	"github.com/lumina-journal/lumina/internal/client/remote"
	"github.com/lumina-journal/lumina/internal/client/services"
	"github.com/lumina-journal/lumina/internal/client/state"
	docsync "github.com/lumina-journal/lumina/internal/client/sync"
	"github.com/lumina-journal/lumina/internal/common"
	"github.com/lumina-journal/lumina/internal/logging"
)

// App holds the wired client. One session at most is active at a time.
type App struct {
	config      *config.Config
	log         logging.Logger
	clk         clock.Clock
	client      remote.Client
	authService services.AuthService
	docService  services.DocumentService
	store       *state.Store
	coordinator *docsync.Coordinator
	monitor     *connectivity.Monitor
	cron        *cron.Cron

	session      *remote.Session
	offline      bool
	pendingEmail string
	reader       *bufio.Reader
}

// NewApp wires all client components together.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	clk := clock.New()

	client := remote.NewHTTPClient(cfg.StoreURL, cfg.StoreAnonKey, clk, log)
	localCache := cache.New(cfg.CacheDir)

	// Initial connectivity state comes from a single startup probe.
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	initiallyUp := client.Ping(probeCtx) == nil
	cancel()

	monitor := connectivity.NewMonitor(clk, cfg.StabilityWindow, initiallyUp, log)
	store := state.New()
	coordinator := docsync.New(clk, client, monitor, localCache, cfg.DebounceWindow, log)
	monitor.OnStable(coordinator.OnStableEntry)

	a := &App{
		config:      cfg,
		log:         log,
		clk:         clk,
		client:      client,
		authService: services.NewAuthService(client, localCache, clk, log),
		docService:  services.NewDocumentService(client, localCache, clk, log),
		store:       store,
		coordinator: coordinator,
		monitor:     monitor,
		reader:      bufio.NewReader(os.Stdin),
	}
	return a, nil
}

// Run starts the background machinery, tries to restore the previous
// session, and hands control to the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.client.Close()

	go a.coordinator.Run(ctx, a.store.Changes())
	go a.startOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	a.startMidnightRollover(ctx)

	a.restoreSession(ctx)
	a.root(ctx)
}

// restoreSession revives a cached session at startup and loads its
// document, falling back to the local cache when the store is unreachable.
func (a *App) restoreSession(ctx context.Context) {
	session, err := a.authService.RestoreSession(ctx)
	if err != nil {
		if session == nil {
			if !errors.Is(err, common.ErrNoSession) {
				a.log.Warn(ctx, "session restore failed", "error", err)
			}
			return
		}
		// Stale session kept for offline use.
		a.log.Warn(ctx, "session restore degraded", "error", err)
	}
	a.session = session
	a.loadDocument(ctx)
}

// loadDocument performs the initial load for the current session: fetch,
// normalize, rollover, publish to the state store, arm the coordinator.
// Ordering matters: the rollover happens before the document is exposed,
// and the coordinator only unblocks after a successful load.
func (a *App) loadDocument(ctx context.Context) {
	if a.session == nil {
		return
	}
	a.coordinator.Arm(a.session.UserID)

	doc, fromCache, err := a.docService.Load(ctx, a.session)
	if err != nil {
		a.log.Error(ctx, "failed to load document", "error", err)
		a.session = nil
		a.coordinator.Disarm()
		return
	}
	a.offline = fromCache
	if doc.DisplayName != "" {
		a.session.DisplayName = doc.DisplayName
	}
	a.store.SetDocument(doc)
	a.coordinator.MarkLoaded()
}

// startOnlineStatusWatcher probes store reachability on an interval and
// feeds up/down signals into the connectivity monitor.
func (a *App) startOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.client.Ping(probeCtx)
			cancel()

			if err != nil {
				a.monitor.SetOffline()
			} else {
				a.monitor.SetOnline()
			}

		case <-ctx.Done():
			return
		}
	}
}

// startMidnightRollover re-runs the daily task migration at local midnight
// for sessions that stay open across day boundaries.
func (a *App) startMidnightRollover(ctx context.Context) {
	a.cron = cron.New()
	_, err := a.cron.AddFunc("0 0 * * *", func() {
		if a.session == nil {
			return
		}
		doc := a.store.Snapshot()
		if moved := a.docService.Rollover(ctx, a.session.UserID, doc); moved > 0 {
			a.store.SetDocument(doc)
			a.log.Info(ctx, "midnight rollover", "moved", moved)
		}
	})
	if err != nil {
		a.log.Error(ctx, "failed to schedule midnight rollover", "error", err)
		return
	}
	a.cron.Start()
	go func() {
		<-ctx.Done()
		a.cron.Stop()
	}()
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}
