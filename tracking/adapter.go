package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/anchorview/common"
	"github.com/milk9111/anchorview/internal/log"
)

const defaultAcquireTimeout = 10 * time.Second

// Config tunes an Adapter. Zero fields take defaults.
type Config struct {
	Space          ReferenceSpace
	AcquireTimeout time.Duration
	Logger         *slog.Logger
	// Now is the clock used for the acquisition deadline.
	Now func() time.Time
	// Run starts an acquisition. It defaults to a new goroutine.
	Run func(func())
}

// Session is a snapshot of the current tracking session.
type Session struct {
	ID    uuid.UUID
	State SessionState
	// Err is ErrTrackingUnavailable (wrapped) when acquisition failed.
	Err error
}

type acquisition struct {
	gen    uint64
	source HitTestSource
	err    error
}

// Adapter owns at most one tracking session and its hit-test source. All
// methods except the acquisition callback run on the tick goroutine.
type Adapter struct {
	platform Platform
	space    ReferenceSpace
	timeout  time.Duration
	logger   *slog.Logger
	now      func() time.Time
	run      func(func())

	id       uuid.UUID
	state    SessionState
	source   HitTestSource
	err      error
	deadline time.Time
	cancel   context.CancelFunc

	mu         sync.Mutex
	generation uint64
	pending    *acquisition
	inflight   sync.WaitGroup
}

func NewAdapter(platform Platform, cfg Config) *Adapter {
	a := &Adapter{
		platform: platform,
		space:    cfg.Space,
		timeout:  cfg.AcquireTimeout,
		logger:   cfg.Logger,
		now:      cfg.Now,
		run:      cfg.Run,
	}
	if a.space == "" {
		a.space = SpaceViewer
	}
	if a.timeout <= 0 {
		a.timeout = defaultAcquireTimeout
	}
	if a.logger == nil {
		a.logger = log.L()
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.run == nil {
		a.run = func(f func()) { go f() }
	}
	return a
}

// BeginSession starts acquiring a hit-test source. It is a no-op while a
// session is initializing or ready.
func (a *Adapter) BeginSession() {
	if a == nil {
		return
	}
	if a.state == StateInitializing || a.state == StateReady {
		return
	}

	a.mu.Lock()
	a.generation++
	gen := a.generation
	a.pending = nil
	a.mu.Unlock()

	a.id = uuid.New()
	a.state = StateInitializing
	a.err = nil
	a.source = nil
	a.deadline = a.now().Add(a.timeout)

	a.logger.Info("tracking: session begin", "session", a.id, "space", a.space)

	if a.platform == nil {
		a.fail(fmt.Errorf("%w: no platform", ErrTrackingUnavailable))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	a.cancel = cancel
	platform, space := a.platform, a.space
	a.inflight.Add(1)
	a.run(func() {
		defer a.inflight.Done()
		src, err := platform.RequestHitTestSource(ctx, space)
		a.resolve(acquisition{gen: gen, source: src, err: err})
	})
}

// Settle blocks until every acquisition started so far has returned from the
// platform. Headless tools call it to make resolution deterministic; the render
// loop never does.
func (a *Adapter) Settle() {
	if a == nil {
		return
	}
	a.inflight.Wait()
}

// resolve runs on the acquisition goroutine.
func (a *Adapter) resolve(acq acquisition) {
	a.mu.Lock()
	stale := acq.gen != a.generation
	if !stale {
		a.pending = &acq
	}
	a.mu.Unlock()

	if stale {
		if acq.source != nil {
			acq.source.Cancel()
		}
		a.logger.Debug("tracking: discarding late acquisition", "generation", acq.gen, "err", ErrAcquisitionRace)
	}
}

// collect installs a completed acquisition, or gives up on one that missed its
// deadline.
func (a *Adapter) collect() {
	if a.state != StateInitializing {
		return
	}

	a.mu.Lock()
	acq := a.pending
	a.pending = nil
	if acq == nil && !a.now().Before(a.deadline) {
		// Orphan whatever turns up later.
		a.generation++
	}
	a.mu.Unlock()

	if acq == nil {
		if !a.now().Before(a.deadline) {
			a.fail(fmt.Errorf("%w: acquisition timed out after %s", ErrTrackingUnavailable, a.timeout))
		}
		return
	}

	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if acq.err != nil || acq.source == nil {
		if acq.source != nil {
			acq.source.Cancel()
		}
		cause := acq.err
		if cause == nil {
			cause = errors.New("platform returned no source")
		}
		a.fail(fmt.Errorf("%w: %w", ErrTrackingUnavailable, cause))
		return
	}

	a.source = acq.source
	a.state = StateReady
	a.logger.Info("tracking: session ready", "session", a.id)
}

func (a *Adapter) fail(err error) {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.state = StateEnded
	a.err = err
	a.logger.Warn("tracking: unavailable, using fallback placement", "session", a.id, "err", err)
}

// PollFrame returns the pose of the first surface hit this tick. It reports
// false when no session is ready, frame is nil, or nothing was hit.
func (a *Adapter) PollFrame(frame Frame) (common.Mat4, bool) {
	if a == nil {
		return common.Mat4{}, false
	}
	a.collect()
	if a.state != StateReady || a.source == nil || frame == nil {
		return common.Mat4{}, false
	}
	hits := frame.HitTestResults(a.source)
	if len(hits) == 0 {
		return common.Mat4{}, false
	}
	return hits[0].Pose, true
}

// EndSession releases the hit-test source, abandons any acquisition still in
// flight and leaves the adapter Ended.
func (a *Adapter) EndSession() {
	if a == nil {
		return
	}

	a.mu.Lock()
	a.generation++
	acq := a.pending
	a.pending = nil
	a.mu.Unlock()

	if acq != nil && acq.source != nil {
		acq.source.Cancel()
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.source != nil {
		a.source.Cancel()
		a.source = nil
	}

	if a.state != StateEnded && a.state != StateInactive {
		a.logger.Info("tracking: session end", "session", a.id, "from", a.state)
	}
	a.state = StateEnded
}

func (a *Adapter) State() SessionState {
	if a == nil {
		return StateInactive
	}
	return a.state
}

// Unavailable reports whether the current session failed to acquire tracking.
func (a *Adapter) Unavailable() bool {
	return a != nil && errors.Is(a.err, ErrTrackingUnavailable)
}

func (a *Adapter) Session() Session {
	if a == nil {
		return Session{}
	}
	return Session{ID: a.id, State: a.state, Err: a.err}
}
