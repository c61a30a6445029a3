// Package connectivity classifies network reachability for the persistence
// layer. The monitor is a small state machine fed by network up/down signals
// and write-failure reports; writes are only permitted once the connection
// has been continuously up for the stability window.
package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/lumina-journal/lumina/internal/logging"
)

// State is the internal machine state.
type State string

const (
	// StateOffline: the network is down.
	StateOffline State = "offline"
	// StateStabilizing: the network came up less than the stability window ago.
	StateStabilizing State = "stabilizing"
	// StateStable: the network has been up for at least the stability window.
	StateStable State = "stable"
	// StateUnstable: the network is up but a write failed since it was stable.
	StateUnstable State = "unstable"
)

// Status is the coarse classification shown to the user.
type Status string

const (
	StatusOnline   Status = "online"
	StatusOffline  Status = "offline"
	StatusUnstable Status = "unstable"
)

// DefaultStabilityWindow is the minimum continuous online duration before
// writes are permitted.
const DefaultStabilityWindow = 5 * time.Second

// Monitor tracks connectivity state. All methods are safe for concurrent use.
type Monitor struct {
	mu     sync.Mutex
	clk    clock.Clock
	window time.Duration
	log    logging.Logger

	state State
	up    bool
	timer *clock.Timer
	gen   uint64

	onStable func()
}

// NewMonitor builds a monitor with the given stability window. The initial
// state is derived from the runtime's reported connectivity: Stabilizing if
// the network is up, Offline otherwise.
func NewMonitor(clk clock.Clock, window time.Duration, initiallyUp bool, log logging.Logger) *Monitor {
	if window <= 0 {
		window = DefaultStabilityWindow
	}
	m := &Monitor{clk: clk, window: window, log: log, state: StateOffline}
	if initiallyUp {
		m.up = true
		m.state = StateStabilizing
		m.startTimerLocked()
	}
	return m
}

// OnStable registers fn to run every time the monitor enters Stable. The
// persistence coordinator uses this to flush edits that were gated while the
// connection was settling.
func (m *Monitor) OnStable(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStable = fn
}

// SetOnline signals that the network came up.
func (m *Monitor) SetOnline() {
	m.mu.Lock()
	m.up = true
	if m.state == StateOffline {
		m.state = StateStabilizing
		m.startTimerLocked()
		m.log.Info(context.Background(), "network up, stabilizing", "window", m.window)
	}
	m.mu.Unlock()
}

// SetOffline signals that the network went down. Any pending stability timer
// is invalidated.
func (m *Monitor) SetOffline() {
	m.mu.Lock()
	m.up = false
	m.stopTimerLocked()
	if m.state != StateOffline {
		m.state = StateOffline
		m.log.Warn(context.Background(), "network down")
	}
	m.mu.Unlock()
}

// ReportWriteFailure demotes a Stable connection to Unstable and restarts
// the stability timer. Called by the persistence coordinator when an upsert
// fails after its own retries.
func (m *Monitor) ReportWriteFailure() {
	m.mu.Lock()
	if m.state == StateStable {
		m.state = StateUnstable
		m.startTimerLocked()
		m.log.Warn(context.Background(), "write failed, connection demoted to unstable")
	}
	m.mu.Unlock()
}

// ReportWriteSuccess exists for symmetry; status only changes through
// network signals and write failures.
func (m *Monitor) ReportWriteSuccess() {}

// IsStable reports whether writes are currently permitted.
func (m *Monitor) IsStable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateStable
}

// CurrentState returns the fine-grained machine state.
func (m *Monitor) CurrentState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentStatus returns the coarse status for display.
func (m *Monitor) CurrentStatus() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case StateOffline:
		return StatusOffline
	case StateUnstable:
		return StatusUnstable
	default:
		return StatusOnline
	}
}

func (m *Monitor) startTimerLocked() {
	m.stopTimerLocked()
	m.gen++
	gen := m.gen
	m.timer = m.clk.AfterFunc(m.window, func() { m.timerElapsed(gen) })
}

func (m *Monitor) stopTimerLocked() {
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Monitor) timerElapsed(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || !m.up {
		m.mu.Unlock()
		return
	}
	var fire func()
	if m.state == StateStabilizing || m.state == StateUnstable {
		m.state = StateStable
		fire = m.onStable
		m.log.Info(context.Background(), "connection stable")
	}
	m.mu.Unlock()

	if fire != nil {
		fire()
	}
}
