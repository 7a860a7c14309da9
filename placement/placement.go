// Package placement decides where the model goes during a tracked session.
//
// A session moves Idle -> Searching -> Placed. While searching, every tick
// polls the tracker once and moves the reticle to the surface it reports.
// The first commit fixes the model for the rest of the session, either at the
// reticle or, when no surface is in view, at a fixed offset in front of the
// viewer. Only the end of the session leaves Placed.
package placement

import (
	"github.com/milk9111/anchorview/common"
	"github.com/milk9111/anchorview/tracking"
)

type State int

const (
	StateIdle State = iota
	StateSearching
	StatePlaced
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StatePlaced:
		return "placed"
	default:
		return "unknown"
	}
}

// Status is the user facing summary of the machine.
type Status int

const (
	StatusInactive Status = iota
	StatusSearching
	StatusSurfaceFound
	StatusTrackingUnavailable
	StatusPlaced
	StatusPlacedFallback
)

func (s Status) String() string {
	switch s {
	case StatusInactive:
		return "Drag to orbit. Start AR to place the model."
	case StatusSearching:
		return "Looking for a surface (floor or table)..."
	case StatusSurfaceFound:
		return "Surface found. Tap to place the model."
	case StatusTrackingUnavailable:
		return "Surface tracking unavailable. Tap to place the model in front of you."
	case StatusPlaced:
		return "Model placed. Tap to inspect."
	case StatusPlacedFallback:
		return "Model placed in front of you. Tap to inspect."
	default:
		return ""
	}
}

// Reticle is the on-surface cursor. Pose is meaningful only when Visible.
type Reticle struct {
	Visible bool
	Pose    common.Mat4
}

// Placement is the one-shot commit record for the session's model.
type Placement struct {
	State         State
	CommittedPose common.Mat4
	UsedFallback  bool
}

// Node is the placeable sub-tree.
type Node interface {
	SetTransform(m common.Mat4)
}

// Scene is the slice of the scene graph the machine mutates.
type Scene interface {
	Attach(n Node)
	Detach(n Node)
	ViewerPose() common.Mat4
}

// Tracker is the surface tracking service, normally a *tracking.Adapter.
type Tracker interface {
	BeginSession()
	PollFrame(frame tracking.Frame) (common.Mat4, bool)
	EndSession()
	Unavailable() bool
}
