package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/zapdeck/zapdeck/internal/gateway"
)

// State is the poller's mode for the currently selected session.
type State int

const (
	// StateIdle means no timer is running: nothing is selected, or the
	// selected session is past the pairing window.
	StateIdle State = iota
	// StateActive means a timer is running and pairing artifacts are
	// being fetched.
	StateActive
	// StateDisabled means the failure threshold was hit; no automatic
	// poll fires until an explicit retry or a selection change.
	StateDisabled
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateDisabled:
		return "disabled"
	default:
		return "idle"
	}
}

const (
	// DefaultInterval is the pairing poll cadence.
	DefaultInterval = 3 * time.Second
	// FailureThreshold is the number of consecutive poll failures that
	// disables polling for the current pairing attempt.
	FailureThreshold = 3
)

// ArtifactFetcher fetches pairing artifacts. Implemented by
// *gateway.Client and by test fakes.
type ArtifactFetcher interface {
	FetchPairing(ctx context.Context, id string) (gateway.PairingResponse, error)
}

// StatusSource reads a session's current status. The poller never
// writes status itself; the registry is read-only to it so the pull
// channel can never fight the push channel over ground truth.
type StatusSource interface {
	Get(id string) (gateway.Session, bool)
}

// Health is the poller's observable condition for the selected session.
type Health struct {
	State    State
	Failures int
}

// Disabled reports whether the operator must explicitly re-arm polling.
func (h Health) Disabled() bool { return h.State == StateDisabled }

// Poller runs at most one polling task, scoped to the currently
// selected session. Selection changes cancel the previous task before
// starting a new one, so orphaned timers never accumulate.
type Poller struct {
	fetch    ArtifactFetcher
	source   StatusSource
	logger   *slog.Logger
	interval time.Duration

	mu        sync.Mutex
	sessionID string
	state     State
	failures  int
	artifact  string
	cancel    context.CancelFunc
	// gen invalidates in-flight fetches from a superseded task: a poll
	// response that lands after a reselection must not publish.
	gen uint64
}

// New builds a Poller. The interval defaults to DefaultInterval when
// zero.
func New(fetch ArtifactFetcher, source StatusSource, logger *slog.Logger, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		fetch:    fetch,
		source:   source,
		logger:   logger,
		interval: interval,
	}
}

// Select switches the poller to a new session (empty id for no
// selection). The previous task is cancelled, the failure counter is
// reset regardless of any prior disabled state, and any cached artifact
// is dropped. A new task starts only if the session is in the pairing
// window.
func (p *Poller) Select(ctx context.Context, sessionID string) {
	p.mu.Lock()
	p.stopLocked()
	p.sessionID = sessionID
	p.failures = 0
	p.artifact = ""
	p.state = StateIdle
	p.mu.Unlock()

	p.Reconcile(ctx)
}

// Retry re-arms polling after the failure threshold was hit: the
// counter resets to zero and the normal activation rule is re-applied.
func (p *Poller) Retry(ctx context.Context) {
	p.mu.Lock()
	p.failures = 0
	if p.state == StateDisabled {
		p.state = StateIdle
	}
	p.mu.Unlock()

	p.Reconcile(ctx)
}

// Reconcile re-applies the activation rule against the registry's
// current status for the selected session: active iff the status is in
// the pairing window. Leaving the window discards the artifact and
// cancels the timer. A disabled poller stays disabled until Retry or
// Select, but its cached artifact is still subject to the window rule.
func (p *Poller) Reconcile(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sessionID == "" {
		return
	}

	session, ok := p.source.Get(p.sessionID)
	pairing := ok && session.Status.Pairing()

	// Pairing material never outlives the window, whatever state the
	// poller itself is in.
	if !pairing {
		p.artifact = ""
	}
	if p.state == StateDisabled {
		return
	}

	switch {
	case p.state == StateActive && !pairing:
		p.stopLocked()
		p.state = StateIdle
	case p.state == StateIdle && pairing:
		p.startLocked(ctx)
	}
}

// Stop cancels any running task. Used on application teardown.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.state = StateIdle
}

// Health returns the current failure counter and state.
func (p *Poller) Health() Health {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Health{State: p.state, Failures: p.failures}
}

// Artifact returns the pairing artifact for the selected session, or ""
// when none is current.
func (p *Poller) Artifact() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.artifact
}

func (p *Poller) startLocked(ctx context.Context) {
	taskCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.state = StateActive
	p.gen++
	go p.run(taskCtx, p.sessionID, p.gen)
}

func (p *Poller) stopLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// run is the per-selection polling task: one immediate poll, then one
// per interval, until the session leaves the pairing window, the
// failure threshold disables it, or the task is cancelled.
func (p *Poller) run(ctx context.Context, sessionID string, gen uint64) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if !p.pollOnce(ctx, sessionID, gen) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// pollOnce performs one tick. Returns false when the task should stop.
func (p *Poller) pollOnce(ctx context.Context, sessionID string, gen uint64) bool {
	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return false
	}
	session, ok := p.source.Get(sessionID)
	if !ok || !session.Status.Pairing() {
		// Observed via the registry, not the poll response: the push
		// channel owns status, the poller only reacts to it.
		p.artifact = ""
		p.state = StateIdle
		p.mu.Unlock()
		return false
	}
	p.mu.Unlock()

	resp, err := p.fetch.FetchPairing(ctx, sessionID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen || p.state != StateActive {
		// Superseded or reconciled away while the fetch was in flight;
		// the result must not publish.
		return false
	}

	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.failures++
		p.logger.Debug("pairing poll failed",
			slog.String("session", sessionID),
			slog.Int("failures", p.failures),
			slog.String("error", err.Error()),
		)
		if p.failures >= FailureThreshold {
			p.state = StateDisabled
			p.logger.Warn("pairing polls disabled, gateway unreachable",
				slog.String("session", sessionID),
			)
			return false
		}
		return true
	}

	if resp.QRCodeURL != "" {
		p.artifact = resp.QRCodeURL
		p.failures = 0
	}
	return true
}
