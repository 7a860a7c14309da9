// Package camera frames objects and eases the viewing camera between poses.
package camera

import (
	"math"

	"github.com/milk9111/anchorview/common"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultRate completes a transition in a little under half a second.
	DefaultRate = 2.2

	FitFactor   = 1.3
	ResetFactor = 1.4
	PartFactor  = 1.25
)

// DefaultDirection is used when the camera sits on its own target.
var DefaultDirection = r3.Vec{Z: 1}

// Pose is where the camera is and what it looks at.
type Pose struct {
	Position r3.Vec
	Target   r3.Vec
}

// Transition is an in-flight camera move.
type Transition struct {
	StartPosition r3.Vec
	StartTarget   r3.Vec
	EndPosition   r3.Vec
	EndTarget     r3.Vec
	Progress      float64
	Active        bool
}

// At returns the eased pose at progress t.
func (tr Transition) At(t float64) Pose {
	e := common.EaseInOutQuad(common.Clamp01(t))
	return Pose{
		Position: common.LerpVec(tr.StartPosition, tr.EndPosition, e),
		Target:   common.LerpVec(tr.StartTarget, tr.EndTarget, e),
	}
}

type Config struct {
	// FOV is the vertical field of view in radians.
	FOV  float64
	Rate float64
}

// Controller owns the viewing camera. Retargeting replaces any move in flight,
// starting from wherever the camera is at that instant.
type Controller struct {
	pose Pose
	tr   Transition

	fov  float64
	rate float64

	suspended func() bool
}

func NewController(initial Pose, cfg Config) *Controller {
	c := &Controller{
		pose: initial,
		fov:  cfg.FOV,
		rate: cfg.Rate,
	}
	if c.fov <= 0 {
		c.fov = 60 * math.Pi / 180
	}
	if c.rate <= 0 {
		c.rate = DefaultRate
	}
	return c
}

// SetSuspended installs a gate. While it reports true the controller neither
// retargets nor advances.
func (c *Controller) SetSuspended(gate func() bool) {
	if c == nil {
		return
	}
	c.suspended = gate
}

func (c *Controller) Suspended() bool {
	return c != nil && c.suspended != nil && c.suspended()
}

// SetTuning replaces field of view and rate; zero values keep the current ones.
func (c *Controller) SetTuning(fov, rate float64) {
	if c == nil {
		return
	}
	if fov > 0 {
		c.fov = fov
	}
	if rate > 0 {
		c.rate = rate
	}
}

func (c *Controller) FOV() float64 {
	if c == nil {
		return 0
	}
	return c.fov
}

func (c *Controller) Rate() float64 {
	if c == nil {
		return 0
	}
	return c.rate
}

func (c *Controller) Pose() Pose {
	if c == nil {
		return Pose{}
	}
	return c.pose
}

// SetPose moves the camera immediately and drops any transition.
func (c *Controller) SetPose(p Pose) {
	if c == nil {
		return
	}
	c.pose = p
	c.tr.Active = false
}

func (c *Controller) Transition() Transition {
	if c == nil {
		return Transition{}
	}
	return c.tr
}

func (c *Controller) Animating() bool {
	return c != nil && c.tr.Active
}

// FrameObject starts a move that fits bounds in view along the current
// viewing direction, using the controller's field of view. It returns the
// camera distance chosen, or 0 when suspended.
func (c *Controller) FrameObject(bounds r3.Box, factor float64) float64 {
	if c == nil {
		return 0
	}
	return c.FrameObjectFOV(bounds, c.fov, factor)
}

// FrameObjectFOV is FrameObject with an explicit field of view.
func (c *Controller) FrameObjectFOV(bounds r3.Box, fovRadians, factor float64) float64 {
	if c == nil || c.Suspended() {
		return 0
	}
	center := bounds.Center()
	distance := common.FitDistance(bounds, fovRadians, factor)
	dir := common.Direction(c.pose.Target, c.pose.Position, DefaultDirection)
	c.MoveTo(Pose{
		Position: r3.Add(center, r3.Scale(distance, dir)),
		Target:   center,
	})
	return distance
}

// MoveTo starts a transition from the current pose to end.
func (c *Controller) MoveTo(end Pose) {
	if c == nil || c.Suspended() {
		return
	}
	c.tr = Transition{
		StartPosition: c.pose.Position,
		StartTarget:   c.pose.Target,
		EndPosition:   end.Position,
		EndTarget:     end.Target,
		Active:        true,
	}
}

// Advance moves an active transition forward by dt seconds at the given rate.
// A rate of zero or less uses the configured rate.
func (c *Controller) Advance(dt, rate float64) {
	if c == nil || !c.tr.Active || c.Suspended() {
		return
	}
	if rate <= 0 {
		rate = c.rate
	}
	step := dt * rate
	if step <= 0 || math.IsNaN(step) {
		return
	}
	c.tr.Progress = math.Min(1, c.tr.Progress+step)
	if c.tr.Progress >= 1 {
		c.pose = Pose{Position: c.tr.EndPosition, Target: c.tr.EndTarget}
		c.tr.Active = false
		return
	}
	c.pose = c.tr.At(c.tr.Progress)
}
