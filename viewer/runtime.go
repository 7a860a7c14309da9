// Package viewer wires tracking, placement and the camera into one runtime
// that a host drives once per display frame.
package viewer

import (
	"log/slog"
	"time"

	"github.com/milk9111/anchorview/camera"
	"github.com/milk9111/anchorview/common"
	"github.com/milk9111/anchorview/internal/log"
	"github.com/milk9111/anchorview/placement"
	"github.com/milk9111/anchorview/prefabs"
	"github.com/milk9111/anchorview/scene"
	"github.com/milk9111/anchorview/tick"
	"github.com/milk9111/anchorview/tracking"
	"gonum.org/v1/gonum/spatial/r3"
)

type Config struct {
	Platform  tracking.Platform
	Camera    prefabs.CameraSpec
	Placement prefabs.PlacementSpec
	Model     prefabs.ModelSpec
	Logger    *slog.Logger

	// Now and Run are handed to the tracking adapter.
	Now func() time.Time
	Run func(func())
}

// Inspection is the result of a commit made after placement.
type Inspection struct {
	Hit   scene.Hit
	Found bool
}

// Runtime owns one desktop model, one placeable copy of it and the camera.
type Runtime struct {
	adapter *tracking.Adapter
	machine *placement.Machine
	camera  *camera.Controller
	graph   *scene.Graph
	sched   *tick.Scheduler
	logger  *slog.Logger

	desktop *scene.Node
	placed  *scene.Node

	presets camera.Presets
	factors Factors
	spin    float64
	initial camera.Pose

	// device is the tracked viewer while a session runs.
	device    common.Mat4
	inspected Inspection
}

func New(cfg Config) (*Runtime, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.L()
	}

	model, err := BuildModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	tcfg, err := trackingConfig(cfg.Placement)
	if err != nil {
		return nil, err
	}
	tcfg.Logger = logger
	tcfg.Now = cfg.Now
	tcfg.Run = cfg.Run

	r := &Runtime{
		adapter: tracking.NewAdapter(cfg.Platform, tcfg),
		logger:  logger,
		desktop: model,
		placed:  model.Clone(model.Name + "-placed"),
		presets: presetsFromSpec(cfg.Camera),
		factors: factorsFromSpec(cfg.Camera),
		spin:    cfg.Camera.SpinPerTick,
		initial: initialPose(cfg.Camera),
		device:  common.Identity(),
	}
	r.camera = camera.NewController(r.initial, cameraConfig(cfg.Camera))
	r.graph = scene.NewGraph(viewerFunc(r.ViewerPose))
	r.graph.Attach(r.desktop)
	r.machine = placement.NewMachine(r.adapter, r.graph, r.placed, placement.Config{
		FallbackOffset: fallbackOffset(cfg.Placement),
		OnInspect:      r.inspect,
		Logger:         logger,
	})
	r.camera.SetSuspended(func() bool {
		return r.machine.State() == placement.StateSearching
	})

	r.sched = tick.NewScheduler(
		tick.Func(r.updatePlacement),
		tick.Func(r.updateCamera),
		tick.Func(r.updateDesktop),
	)
	return r, nil
}

type viewerFunc func() common.Mat4

func (f viewerFunc) ViewerPose() common.Mat4 { return f() }

// AddSystem appends a stage that runs after placement and camera each tick.
func (r *Runtime) AddSystem(s tick.System) {
	if r == nil {
		return
	}
	r.sched.Add(s)
}

// Tick advances one display frame.
func (r *Runtime) Tick(frame tracking.Frame, dt float64) *tick.Tick {
	if r == nil {
		return nil
	}
	return r.sched.Run(frame, dt)
}

func (r *Runtime) updatePlacement(t *tick.Tick) {
	r.machine.Update(t.Frame)
}

func (r *Runtime) updateCamera(t *tick.Tick) {
	r.camera.Advance(t.Delta, 0)
}

func (r *Runtime) updateDesktop(*tick.Tick) {
	if r.spin != 0 && r.machine.State() == placement.StateIdle && r.graph.Attached(r.desktop) {
		r.desktop.Spin(r.spin)
	}
}

// StartSession hides the desktop model and begins searching for a surface.
func (r *Runtime) StartSession() {
	if r == nil || r.machine.State() != placement.StateIdle {
		return
	}
	r.device = r.camera.ViewerPose()
	r.inspected = Inspection{}
	r.graph.Detach(r.desktop)
	r.machine.OnSessionStarted()
}

// EndSession restores the desktop model and reframes it.
func (r *Runtime) EndSession() {
	if r == nil {
		return
	}
	wasActive := r.machine.State() != placement.StateIdle
	r.machine.OnSessionEnded()
	r.inspected = Inspection{}
	if !wasActive {
		return
	}
	r.desktop.SetTransform(common.Identity())
	r.graph.Attach(r.desktop)
	if b, ok := r.desktop.WorldBounds(); ok {
		r.camera.FrameObject(b, r.factors.Reset)
	}
}

// Commit forwards a user select to the placement machine.
func (r *Runtime) Commit() {
	if r == nil {
		return
	}
	r.machine.OnCommitRequested()
}

func (r *Runtime) inspect(viewer common.Mat4) {
	hit, ok := r.graph.PickForward(viewer)
	r.inspected = Inspection{Hit: hit, Found: ok}
	if ok {
		r.logger.Info("viewer: inspect", "part", hit.Part.Name, "distance", hit.Distance)
	} else {
		r.logger.Debug("viewer: inspect found nothing")
	}
}

// Settle waits for in-flight tracking acquisitions to return.
func (r *Runtime) Settle() {
	if r == nil {
		return
	}
	r.adapter.Settle()
}

// ViewerPose is the tracked device during a session and the orbit camera
// otherwise.
func (r *Runtime) ViewerPose() common.Mat4 {
	if r == nil {
		return common.Identity()
	}
	if r.machine != nil && r.machine.State() != placement.StateIdle {
		return r.device
	}
	return r.camera.ViewerPose()
}

// SetDevicePose moves the tracked viewer. Hosts without real tracking call it
// to simulate walking around.
func (r *Runtime) SetDevicePose(m common.Mat4) {
	if r == nil {
		return
	}
	r.device = m
}

// Look turns the tracked viewer about its own axes.
func (r *Runtime) Look(yaw, pitch float64) {
	if r == nil {
		return
	}
	r.device = common.Mul(common.Mul(r.device, common.RotationY(yaw)), common.RotationX(pitch))
}

// Bounds is the world box of everything currently shown.
func (r *Runtime) Bounds() (r3.Box, bool) {
	if r == nil {
		return r3.Box{}, false
	}
	return r.graph.Bounds()
}

// FrameObject fits the scene in view with the given margin factor.
func (r *Runtime) FrameObject(factor float64) bool {
	b, ok := r.Bounds()
	if !ok {
		return false
	}
	return r.camera.FrameObject(b, factor) > 0
}

func (r *Runtime) Fit() bool   { return r.FrameObject(r.factors.Fit) }
func (r *Runtime) Reset() bool { return r.FrameObject(r.factors.Reset) }

func (r *Runtime) Preset(name string) bool {
	b, ok := r.Bounds()
	if !ok {
		return false
	}
	return r.camera.GoToPreset(r.presets, name, b)
}

// FocusPart frames a single named part of the visible model.
func (r *Runtime) FocusPart(name string) bool {
	if r == nil {
		return false
	}
	for _, n := range r.graph.Nodes() {
		world := n.World()
		for _, p := range n.Parts {
			if p.Name == name {
				return r.camera.FrameObject(scene.TransformBox(world, p.Box), r.factors.Part) > 0
			}
		}
	}
	return false
}

// FocusInspected frames the part picked by the last inspect.
func (r *Runtime) FocusInspected() bool {
	if r == nil || !r.inspected.Found || r.inspected.Hit.Node == nil {
		return false
	}
	hit := r.inspected.Hit
	if !r.graph.Attached(hit.Node) {
		return false
	}
	box := scene.TransformBox(hit.Node.World(), hit.Part.Box)
	return r.camera.FrameObject(box, r.factors.Part) > 0
}

// Orbit and Zoom are the desktop mouse and keyboard controls.
func (r *Runtime) Orbit(yaw, pitch float64) {
	if r != nil {
		r.camera.Orbit(yaw, pitch)
	}
}

func (r *Runtime) Zoom(factor float64) {
	if r != nil {
		r.camera.Zoom(factor)
	}
}

// ApplyCamera retunes the camera from a reloaded spec. The current pose is kept.
func (r *Runtime) ApplyCamera(spec prefabs.CameraSpec) {
	if r == nil {
		return
	}
	cfg := cameraConfig(spec)
	r.camera.SetTuning(cfg.FOV, cfg.Rate)
	r.presets = presetsFromSpec(spec)
	r.factors = factorsFromSpec(spec)
	r.spin = spec.SpinPerTick
}

// ApplyPlacement retunes the fallback offset from a reloaded spec.
func (r *Runtime) ApplyPlacement(spec prefabs.PlacementSpec) {
	if r == nil {
		return
	}
	r.machine.SetFallbackOffset(fallbackOffset(spec))
}

func (r *Runtime) Camera() *camera.Controller     { return r.camera }
func (r *Runtime) Machine() *placement.Machine    { return r.machine }
func (r *Runtime) Adapter() *tracking.Adapter     { return r.adapter }
func (r *Runtime) Graph() *scene.Graph            { return r.graph }
func (r *Runtime) Desktop() *scene.Node           { return r.desktop }
func (r *Runtime) Placed() *scene.Node            { return r.placed }
func (r *Runtime) Inspected() Inspection          { return r.inspected }
func (r *Runtime) Session() tracking.Session      { return r.adapter.Session() }
func (r *Runtime) Status() placement.Status       { return r.machine.Status() }
func (r *Runtime) Reticle() placement.Reticle     { return r.machine.Reticle() }
func (r *Runtime) Placement() placement.Placement { return r.machine.Placement() }
