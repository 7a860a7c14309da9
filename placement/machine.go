package placement

import (
	"log/slog"

	"github.com/milk9111/anchorview/common"
	"github.com/milk9111/anchorview/internal/log"
	"github.com/milk9111/anchorview/tracking"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultFallbackOffset puts the model a metre ahead of the viewer and a little
// below eye level.
var DefaultFallbackOffset = r3.Vec{X: 0, Y: -0.3, Z: -1}

type Config struct {
	// FallbackOffset is in viewer space. The zero vector means DefaultFallbackOffset.
	FallbackOffset r3.Vec
	// OnInspect is called for commits that arrive after placement, with the
	// viewer pose at that moment.
	OnInspect func(viewer common.Mat4)
	Logger    *slog.Logger
}

type Machine struct {
	tracker Tracker
	scene   Scene
	model   Node

	fallbackOffset r3.Vec
	onInspect      func(common.Mat4)
	logger         *slog.Logger

	reticle   Reticle
	placement Placement
	attached  bool
}

func NewMachine(tracker Tracker, scene Scene, model Node, cfg Config) *Machine {
	m := &Machine{
		tracker:        tracker,
		scene:          scene,
		model:          model,
		fallbackOffset: cfg.FallbackOffset,
		onInspect:      cfg.OnInspect,
		logger:         cfg.Logger,
	}
	if m.fallbackOffset == (r3.Vec{}) {
		m.fallbackOffset = DefaultFallbackOffset
	}
	if m.logger == nil {
		m.logger = log.L()
	}
	return m
}

// SetFallbackOffset retunes the fallback without restarting a session.
func (m *Machine) SetFallbackOffset(v r3.Vec) {
	if m == nil || v == (r3.Vec{}) {
		return
	}
	m.fallbackOffset = v
}

// OnSessionStarted begins searching for a surface. It is ignored unless the
// machine is idle.
func (m *Machine) OnSessionStarted() {
	if m == nil {
		return
	}
	if m.placement.State != StateIdle {
		m.logger.Debug("placement: session start ignored", "state", m.placement.State)
		return
	}
	m.reticle = Reticle{}
	m.placement = Placement{State: StateSearching}
	if m.tracker != nil {
		m.tracker.BeginSession()
	}
	m.logger.Info("placement: searching")
}

// OnSessionEnded tears the session down from any state.
func (m *Machine) OnSessionEnded() {
	if m == nil {
		return
	}
	if m.tracker != nil {
		m.tracker.EndSession()
	}
	if m.attached && m.scene != nil {
		m.scene.Detach(m.model)
	}
	m.attached = false
	prev := m.placement.State
	m.reticle = Reticle{}
	m.placement = Placement{}
	if prev != StateIdle {
		m.logger.Info("placement: session ended", "from", prev)
	}
}

// OnCommitRequested handles one user select. The first one in a session places
// the model; later ones inspect it.
func (m *Machine) OnCommitRequested() {
	if m == nil {
		return
	}
	switch m.placement.State {
	case StateSearching:
		m.commit()
	case StatePlaced:
		if m.onInspect != nil {
			m.onInspect(m.viewerPose())
		}
	}
}

func (m *Machine) commit() {
	var pose common.Mat4
	fallback := !m.reticle.Visible
	if fallback {
		viewer := m.viewerPose()
		pose = common.Translation(common.TransformPoint(viewer, m.fallbackOffset))
	} else {
		pose = common.Translation(common.Position(m.reticle.Pose))
	}

	m.placement = Placement{
		State:         StatePlaced,
		CommittedPose: pose,
		UsedFallback:  fallback,
	}
	m.reticle.Visible = false

	if m.model != nil {
		m.model.SetTransform(pose)
		if m.scene != nil {
			m.scene.Attach(m.model)
			m.attached = true
		}
	}
	m.logger.Info("placement: committed", "position", common.Position(pose), "fallback", fallback)
}

func (m *Machine) viewerPose() common.Mat4 {
	if m.scene == nil {
		return common.Identity()
	}
	return m.scene.ViewerPose()
}

// Update runs once per tick. Only a searching machine touches the tracker.
func (m *Machine) Update(frame tracking.Frame) {
	if m == nil || m.placement.State != StateSearching || m.tracker == nil {
		return
	}
	pose, ok := m.tracker.PollFrame(frame)
	if !ok {
		m.reticle.Visible = false
		return
	}
	m.reticle = Reticle{Visible: true, Pose: pose}
}

func (m *Machine) State() State {
	if m == nil {
		return StateIdle
	}
	return m.placement.State
}

func (m *Machine) Reticle() Reticle {
	if m == nil {
		return Reticle{}
	}
	return m.reticle
}

func (m *Machine) Placement() Placement {
	if m == nil {
		return Placement{}
	}
	return m.placement
}

func (m *Machine) Status() Status {
	if m == nil {
		return StatusInactive
	}
	switch m.placement.State {
	case StateSearching:
		if m.reticle.Visible {
			return StatusSurfaceFound
		}
		if m.tracker != nil && m.tracker.Unavailable() {
			return StatusTrackingUnavailable
		}
		return StatusSearching
	case StatePlaced:
		if m.placement.UsedFallback {
			return StatusPlacedFallback
		}
		return StatusPlaced
	default:
		return StatusInactive
	}
}
