package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/milk9111/anchorview/common"
	"github.com/milk9111/anchorview/placement"
	"github.com/milk9111/anchorview/prefabs"
	"github.com/milk9111/anchorview/tracking"
	"github.com/milk9111/anchorview/tracking/sim"
	"github.com/milk9111/anchorview/viewer"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

var errScenario = errors.New("replay: malformed scenario")

// Scenario scripts a headless session against the simulated platform.
type Scenario struct {
	Sim            prefabs.SimSpec `yaml:"sim"`
	Manual         bool            `yaml:"manual"`
	AcquireTimeout time.Duration   `yaml:"acquire_timeout"`
	FallbackOffset *prefabs.Vec3   `yaml:"fallback_offset"`
	Device         *DeviceSpec     `yaml:"device"`
	DT             float64         `yaml:"dt"`
	Ticks          []Step          `yaml:"ticks"`
}

// DeviceSpec poses the simulated viewer when the session starts.
type DeviceSpec struct {
	Position prefabs.Vec3 `yaml:"position"`
	Target   prefabs.Vec3 `yaml:"target"`
}

// Step is one or more identical ticks. Actions run in order before the tick.
type Step struct {
	Repeat int           `yaml:"repeat"`
	Do     []string      `yaml:"do"`
	Hit    *prefabs.Vec3 `yaml:"hit"`
	Miss   bool          `yaml:"miss"`
	Look   []float64     `yaml:"look"`
	// Wait sleeps before the tick, e.g. to let an acquisition time out.
	Wait time.Duration `yaml:"wait"`
}

const (
	actStart   = "start"
	actEnd     = "end"
	actCommit  = "commit"
	actResolve = "resolve"
	actReject  = "reject"
	actLost    = "lost"
	actFound   = "found"
)

var knownActions = map[string]bool{
	actStart: true, actEnd: true, actCommit: true, actResolve: true,
	actReject: true, actLost: true, actFound: true,
}

func ParseScenario(data []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("%w: %w", errScenario, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func (s Scenario) Validate() error {
	if len(s.Ticks) == 0 {
		return fmt.Errorf("%w: no ticks", errScenario)
	}
	if s.DT < 0 {
		return fmt.Errorf("%w: negative dt", errScenario)
	}
	for i, st := range s.Ticks {
		if st.Repeat < 0 {
			return fmt.Errorf("%w: step %d: negative repeat", errScenario, i)
		}
		if st.Wait < 0 {
			return fmt.Errorf("%w: step %d: negative wait", errScenario, i)
		}
		if st.Hit != nil && st.Miss {
			return fmt.Errorf("%w: step %d: hit and miss together", errScenario, i)
		}
		if st.Look != nil && len(st.Look) != 2 {
			return fmt.Errorf("%w: step %d: look wants [yaw, pitch]", errScenario, i)
		}
		for _, a := range st.Do {
			if !knownActions[strings.ToLower(a)] {
				return fmt.Errorf("%w: step %d: unknown action %q", errScenario, i, a)
			}
		}
	}
	return nil
}

// scriptedFrame reports a fixed set of hits to any live source.
type scriptedFrame struct {
	hits []tracking.HitResult
}

func (f scriptedFrame) HitTestResults(src tracking.HitTestSource) []tracking.HitResult {
	if src == nil {
		return nil
	}
	return f.hits
}

type runner struct {
	sc       Scenario
	rt       *viewer.Runtime
	platform *sim.Platform
	out      io.Writer
}

// Run plays the scenario and writes one line per tick to out.
func Run(sc Scenario, base viewer.Config, out io.Writer) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	simCfg := viewer.SimConfig(sc.Sim)
	simCfg.Manual = sc.Manual
	platform := sim.New(simCfg)

	cfg := base
	cfg.Platform = platform
	if sc.AcquireTimeout > 0 {
		cfg.Placement.AcquireTimeout = sc.AcquireTimeout
	}
	if sc.FallbackOffset != nil {
		cfg.Placement.FallbackOffset = sc.FallbackOffset
	}
	rt, err := viewer.New(cfg)
	if err != nil {
		return err
	}
	r := &runner{sc: sc, rt: rt, platform: platform, out: out}
	defer func() {
		rt.EndSession()
		rt.Settle()
	}()

	dt := sc.DT
	if dt == 0 {
		dt = 1.0 / 60
	}
	for _, st := range sc.Ticks {
		n := st.Repeat
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			if err := r.step(st, dt); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *runner) step(st Step, dt float64) error {
	for _, a := range st.Do {
		r.act(strings.ToLower(a))
	}
	if len(st.Look) == 2 {
		r.rt.Look(st.Look[0], st.Look[1])
	}
	if st.Wait > 0 {
		time.Sleep(st.Wait)
	}

	var frame tracking.Frame
	switch {
	case st.Hit != nil:
		frame = scriptedFrame{hits: []tracking.HitResult{{Pose: common.Translation(st.Hit.Vec())}}}
	case st.Miss:
		frame = scriptedFrame{}
	default:
		frame = r.platform.Frame(r.rt.ViewerPose())
	}
	t := r.rt.Tick(frame, dt)
	_, err := fmt.Fprintln(r.out, r.describe(t.Index))
	return err
}

func (r *runner) act(a string) {
	switch a {
	case actStart:
		r.rt.StartSession()
		if d := r.sc.Device; d != nil {
			r.rt.SetDevicePose(common.CameraPose(d.Position.Vec(), d.Target.Vec(), r3.Vec{Y: 1}))
		}
		if !r.sc.Manual {
			r.rt.Settle()
		}
	case actEnd:
		r.rt.EndSession()
		r.rt.Settle()
	case actCommit:
		r.rt.Commit()
	case actResolve:
		r.awaitRequest()
		r.platform.Resolve()
		r.rt.Settle()
	case actReject:
		r.awaitRequest()
		r.platform.Reject(nil)
		r.rt.Settle()
	case actLost:
		r.platform.SetLost(true)
	case actFound:
		r.platform.SetLost(false)
	}
}

func (r *runner) describe(index uint64) string {
	var b strings.Builder
	m := r.rt.Machine()
	fmt.Fprintf(&b, "tick=%d state=%s tracking=%s", index, m.State(), r.rt.Session().State)
	if ret := r.rt.Reticle(); ret.Visible {
		fmt.Fprintf(&b, " reticle=%s", fmtVec(common.Position(ret.Pose)))
	}
	if p := r.rt.Placement(); p.State == placement.StatePlaced {
		fmt.Fprintf(&b, " placed=%s fallback=%t", fmtVec(common.Position(p.CommittedPose)), p.UsedFallback)
	}
	if ins := r.rt.Inspected(); ins.Found {
		fmt.Fprintf(&b, " inspect=%s", ins.Hit.Part.Name)
	}
	fmt.Fprintf(&b, " status=%q", m.Status().String())
	return b.String()
}

// awaitRequest gives a just-started acquisition time to reach the platform.
func (r *runner) awaitRequest() {
	deadline := time.Now().Add(time.Second)
	for r.platform.Waiting() == 0 && r.rt.Session().State == tracking.StateInitializing && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
}

func fmtVec(v r3.Vec) string {
	return fmt.Sprintf("(%.3f,%.3f,%.3f)", v.X, v.Y, v.Z)
}
