package tracking

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/milk9111/anchorview/common"
	"github.com/milk9111/anchorview/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

type fakeSource struct {
	cancels atomic.Int32
}

func (s *fakeSource) Cancel() { s.cancels.Add(1) }

type result struct {
	src HitTestSource
	err error
}

// fakePlatform blocks each request until a result is queued.
type fakePlatform struct {
	calls   atomic.Int32
	results chan result
	mu      sync.Mutex
	spaces  []ReferenceSpace
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{results: make(chan result, 4)}
}

func (p *fakePlatform) RequestHitTestSource(ctx context.Context, space ReferenceSpace) (HitTestSource, error) {
	p.calls.Add(1)
	p.mu.Lock()
	p.spaces = append(p.spaces, space)
	p.mu.Unlock()
	r := <-p.results
	return r.src, r.err
}

type fakeFrame struct {
	hits []HitResult
}

func (f fakeFrame) HitTestResults(HitTestSource) []HitResult { return f.hits }

func syncRun(f func()) { f() }

func newAdapter(p Platform, cfg Config) *Adapter {
	if cfg.Logger == nil {
		cfg.Logger = log.Discard()
	}
	return NewAdapter(p, cfg)
}

func poseAt(x, y, z float64) common.Mat4 {
	return common.Translation(r3.Vec{X: x, Y: y, Z: z})
}

func TestBeginSessionIdempotent(t *testing.T) {
	p := newFakePlatform()
	src := &fakeSource{}
	p.results <- result{src: src}
	a := newAdapter(p, Config{Run: syncRun})

	for i := 0; i < 5; i++ {
		a.BeginSession()
		require.Equal(t, StateInitializing, a.State())
	}
	require.EqualValues(t, 1, p.calls.Load())

	_, ok := a.PollFrame(nil)
	assert.False(t, ok)
	assert.Equal(t, StateReady, a.State())

	for i := 0; i < 5; i++ {
		a.BeginSession()
	}
	assert.EqualValues(t, 1, p.calls.Load())
	assert.Equal(t, []ReferenceSpace{SpaceViewer}, p.spaces)
}

func TestPollFrame(t *testing.T) {
	p := newFakePlatform()
	p.results <- result{src: &fakeSource{}}
	a := newAdapter(p, Config{Run: syncRun, Space: SpaceLocalFloor})

	hit := fakeFrame{hits: []HitResult{{Pose: poseAt(1, 0, -2)}, {Pose: poseAt(9, 9, 9)}}}

	_, ok := a.PollFrame(hit)
	require.False(t, ok, "no session yet")

	a.BeginSession()

	cases := []struct {
		name  string
		frame Frame
		ok    bool
		want  common.Mat4
	}{
		{"nil_frame", nil, false, common.Mat4{}},
		{"no_hits", fakeFrame{}, false, common.Mat4{}},
		{"first_hit_wins", hit, true, poseAt(1, 0, -2)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := a.PollFrame(c.frame)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
	assert.Equal(t, []ReferenceSpace{SpaceLocalFloor}, p.spaces)
}

func TestAcquisitionFailure(t *testing.T) {
	cases := []struct {
		name string
		res  result
	}{
		{"platform_error", result{err: errors.New("hit-test feature not granted")}},
		{"nil_source", result{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newFakePlatform()
			p.results <- c.res
			a := newAdapter(p, Config{Run: syncRun})

			a.BeginSession()
			_, ok := a.PollFrame(fakeFrame{hits: []HitResult{{Pose: poseAt(0, 0, 0)}}})
			assert.False(t, ok)
			assert.Equal(t, StateEnded, a.State())
			assert.True(t, a.Unavailable())
			assert.ErrorIs(t, a.Session().Err, ErrTrackingUnavailable)
		})
	}
}

func TestLateAcquisitionDiscarded(t *testing.T) {
	p := newFakePlatform()
	a := newAdapter(p, Config{})

	a.BeginSession()
	require.Eventually(t, func() bool { return p.calls.Load() == 1 }, time.Second, time.Millisecond)
	a.EndSession()
	require.Equal(t, StateEnded, a.State())

	late := &fakeSource{}
	p.results <- result{src: late}
	a.Settle()

	_, ok := a.PollFrame(fakeFrame{hits: []HitResult{{Pose: poseAt(0, 0, 0)}}})
	assert.False(t, ok)
	assert.Equal(t, StateEnded, a.State())
	assert.False(t, a.Unavailable())
	assert.EqualValues(t, 1, late.cancels.Load(), "late source must be released")
}

func TestEndSessionReleasesPendingResult(t *testing.T) {
	p := newFakePlatform()
	src := &fakeSource{}
	p.results <- result{src: src}
	a := newAdapter(p, Config{Run: syncRun})

	// Resolved but not yet observed by a tick.
	a.BeginSession()
	a.EndSession()

	assert.EqualValues(t, 1, src.cancels.Load())
	_, ok := a.PollFrame(fakeFrame{hits: []HitResult{{}}})
	assert.False(t, ok)
}

func TestEndSessionCancelsSource(t *testing.T) {
	p := newFakePlatform()
	src := &fakeSource{}
	p.results <- result{src: src}
	a := newAdapter(p, Config{Run: syncRun})

	a.BeginSession()
	a.PollFrame(nil)
	require.Equal(t, StateReady, a.State())

	a.EndSession()
	a.EndSession()
	assert.Equal(t, StateEnded, a.State())
	assert.EqualValues(t, 1, src.cancels.Load())
}

func TestEndSessionWithoutSession(t *testing.T) {
	a := newAdapter(newFakePlatform(), Config{Run: syncRun})
	a.EndSession()
	assert.Equal(t, StateEnded, a.State())
}

func TestAcquisitionTimeout(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }

	p := newFakePlatform()
	a := newAdapter(p, Config{AcquireTimeout: 2 * time.Second, Now: clock})

	a.BeginSession()
	require.Eventually(t, func() bool { return p.calls.Load() == 1 }, time.Second, time.Millisecond)

	now = now.Add(time.Second)
	a.PollFrame(nil)
	require.Equal(t, StateInitializing, a.State())

	now = now.Add(2 * time.Second)
	a.PollFrame(nil)
	require.Equal(t, StateEnded, a.State())
	require.True(t, a.Unavailable())

	late := &fakeSource{}
	p.results <- result{src: late}
	a.Settle()
	a.PollFrame(nil)
	assert.Equal(t, StateEnded, a.State())
	assert.EqualValues(t, 1, late.cancels.Load())
}

func TestNewSessionAfterEnd(t *testing.T) {
	p := newFakePlatform()
	p.results <- result{src: &fakeSource{}}
	p.results <- result{src: &fakeSource{}}
	a := newAdapter(p, Config{Run: syncRun})

	a.BeginSession()
	a.PollFrame(nil)
	first := a.Session().ID
	a.EndSession()

	a.BeginSession()
	a.PollFrame(nil)
	assert.Equal(t, StateReady, a.State())
	assert.NotEqual(t, first, a.Session().ID)
	assert.EqualValues(t, 2, p.calls.Load())
}

func TestNilPlatform(t *testing.T) {
	a := newAdapter(nil, Config{Run: syncRun})
	a.BeginSession()
	assert.Equal(t, StateEnded, a.State())
	assert.True(t, a.Unavailable())
}

func TestParseReferenceSpace(t *testing.T) {
	cases := []struct {
		in      string
		want    ReferenceSpace
		wantErr bool
	}{
		{"", SpaceViewer, false},
		{"viewer", SpaceViewer, false},
		{" Local-Floor ", SpaceLocalFloor, false},
		{"local", SpaceLocal, false},
		{"unbounded", "", true},
	}
	for _, c := range cases {
		got, err := ParseReferenceSpace(c.in)
		if c.wantErr {
			assert.Error(t, err, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got)
	}
}
