package camera

import (
	"math"

	"github.com/milk9111/anchorview/common"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	MinDistance = 0.2
	MaxDistance = 200

	maxPitch = math.Pi/2 - 0.01
)

// Orbit turns the camera around its target by yaw (about world Y) and pitch
// radians. Manual orbiting takes over from any transition in flight.
func (c *Controller) Orbit(yaw, pitch float64) {
	if c == nil || c.Suspended() || (yaw == 0 && pitch == 0) {
		return
	}
	offset := r3.Sub(c.pose.Position, c.pose.Target)
	radius := r3.Norm(offset)
	if radius == 0 {
		offset = DefaultDirection
		radius = 1
	}

	curYaw := math.Atan2(offset.X, offset.Z)
	curPitch := math.Asin(math.Max(-1, math.Min(1, offset.Y/radius)))

	newYaw := curYaw + yaw
	newPitch := math.Max(-maxPitch, math.Min(maxPitch, curPitch+pitch))

	cp := math.Cos(newPitch)
	next := r3.Vec{
		X: radius * cp * math.Sin(newYaw),
		Y: radius * math.Sin(newPitch),
		Z: radius * cp * math.Cos(newYaw),
	}
	c.SetPose(Pose{Position: r3.Add(c.pose.Target, next), Target: c.pose.Target})
}

// Zoom scales the camera distance to its target by factor, clamped to
// [MinDistance, MaxDistance].
func (c *Controller) Zoom(factor float64) {
	if c == nil || c.Suspended() || factor <= 0 || factor == 1 {
		return
	}
	offset := r3.Sub(c.pose.Position, c.pose.Target)
	radius := r3.Norm(offset)
	if radius == 0 {
		return
	}
	next := math.Max(MinDistance, math.Min(MaxDistance, radius*factor))
	c.SetPose(Pose{
		Position: r3.Add(c.pose.Target, r3.Scale(next/radius, offset)),
		Target:   c.pose.Target,
	})
}

// ViewerPose is the camera's world transform.
func (c *Controller) ViewerPose() common.Mat4 {
	if c == nil {
		return common.Identity()
	}
	return common.CameraPose(c.pose.Position, c.pose.Target, r3.Vec{Y: 1})
}
