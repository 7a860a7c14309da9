// Package sim is a stand-in surface tracking platform for desktops and tests.
// It hit-tests the viewer's forward ray against a horizontal floor.
package sim

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/milk9111/anchorview/common"
	"github.com/milk9111/anchorview/tracking"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrUnsupported is returned when the platform is configured to refuse hit-testing.
var ErrUnsupported = errors.New("sim: hit-test not supported")

const defaultMaxRange = 20.0

type Config struct {
	FloorY       float64
	MaxRange     float64
	AcquireDelay time.Duration
	// Manual holds every request until Resolve or Reject is called.
	Manual bool
	Fail   bool
}

type Platform struct {
	cfg Config

	mu       sync.Mutex
	waiting  []chan error
	sources  []*Source
	requests int

	lost atomic.Bool
}

func New(cfg Config) *Platform {
	if cfg.MaxRange <= 0 {
		cfg.MaxRange = defaultMaxRange
	}
	return &Platform{cfg: cfg}
}

func (p *Platform) RequestHitTestSource(ctx context.Context, space tracking.ReferenceSpace) (tracking.HitTestSource, error) {
	p.mu.Lock()
	p.requests++
	var wait chan error
	if p.cfg.Manual {
		wait = make(chan error, 1)
		p.waiting = append(p.waiting, wait)
	}
	p.mu.Unlock()

	if p.cfg.AcquireDelay > 0 {
		t := time.NewTimer(p.cfg.AcquireDelay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			p.drop(wait)
			return nil, ctx.Err()
		}
	}

	if wait != nil {
		select {
		case err := <-wait:
			if err != nil {
				return nil, err
			}
		case <-ctx.Done():
			p.drop(wait)
			return nil, ctx.Err()
		}
	}

	if p.cfg.Fail {
		return nil, ErrUnsupported
	}

	src := &Source{space: space}
	p.mu.Lock()
	p.sources = append(p.sources, src)
	p.mu.Unlock()
	return src, nil
}

// Resolve releases held requests successfully. It reports how many were waiting.
func (p *Platform) Resolve() int {
	return p.release(nil)
}

// Reject fails held requests with err.
func (p *Platform) Reject(err error) int {
	if err == nil {
		err = ErrUnsupported
	}
	return p.release(err)
}

func (p *Platform) drop(wait chan error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, w := range p.waiting {
		if w == wait {
			p.waiting = append(p.waiting[:i], p.waiting[i+1:]...)
			return
		}
	}
}

func (p *Platform) release(err error) int {
	p.mu.Lock()
	waiting := p.waiting
	p.waiting = nil
	p.mu.Unlock()
	for _, w := range waiting {
		w <- err
	}
	return len(waiting)
}

// SetLost makes every frame report zero hits, as when tracking drops.
func (p *Platform) SetLost(lost bool) {
	p.lost.Store(lost)
}

func (p *Platform) Requests() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests
}

// Waiting counts requests held for Resolve or Reject.
func (p *Platform) Waiting() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.waiting)
}

// OpenSources counts sources handed out and not yet cancelled.
func (p *Platform) OpenSources() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, s := range p.sources {
		if !s.Cancelled() {
			n++
		}
	}
	return n
}

// Frame snapshots the world as seen from viewer.
func (p *Platform) Frame(viewer common.Mat4) tracking.Frame {
	return &frame{p: p, viewer: viewer}
}

type Source struct {
	space     tracking.ReferenceSpace
	cancelled atomic.Bool
}

func (s *Source) Cancel() {
	s.cancelled.Store(true)
}

func (s *Source) Cancelled() bool {
	return s.cancelled.Load()
}

func (s *Source) Space() tracking.ReferenceSpace {
	return s.space
}

type frame struct {
	p      *Platform
	viewer common.Mat4
}

func (f *frame) HitTestResults(src tracking.HitTestSource) []tracking.HitResult {
	s, ok := src.(*Source)
	if !ok || s.Cancelled() || f.p.lost.Load() {
		return nil
	}
	origin := common.Position(f.viewer)
	dir := common.Forward(f.viewer)
	if dir.Y > -1e-6 {
		return nil
	}
	t := (f.p.cfg.FloorY - origin.Y) / dir.Y
	if t < 0 || t > f.p.cfg.MaxRange || math.IsNaN(t) {
		return nil
	}
	hit := r3.Add(origin, r3.Scale(t, dir))
	return []tracking.HitResult{{Pose: common.Translation(hit)}}
}
