// Package scene is the small scene graph the viewer draws and places into.
package scene

import (
	"math"

	"github.com/milk9111/anchorview/common"
	"gonum.org/v1/gonum/spatial/r3"
)

// Part is one named box of a model, in model space.
type Part struct {
	Name string
	Box  r3.Box
	Info string
}

// Node is a model instance. Its world transform is the placed transform
// followed by a spin about its own Y axis.
type Node struct {
	Name  string
	Parts []Part

	transform common.Mat4
	yaw       float64
}

func NewNode(name string, parts ...Part) *Node {
	return &Node{
		Name:      name,
		Parts:     append([]Part(nil), parts...),
		transform: common.Identity(),
	}
}

// SetTransform replaces the node's world transform and clears its spin.
func (n *Node) SetTransform(m common.Mat4) {
	if n == nil {
		return
	}
	n.transform = m
	n.yaw = 0
}

// Spin turns the node about its local Y axis by rad.
func (n *Node) Spin(rad float64) {
	if n == nil {
		return
	}
	n.yaw = math.Mod(n.yaw+rad, 2*math.Pi)
}

func (n *Node) Yaw() float64 {
	if n == nil {
		return 0
	}
	return n.yaw
}

func (n *Node) World() common.Mat4 {
	if n == nil {
		return common.Identity()
	}
	if n.yaw == 0 {
		return n.transform
	}
	return common.Mul(n.transform, common.RotationY(n.yaw))
}

// Clone copies the node's parts under a new name, with an identity transform.
func (n *Node) Clone(name string) *Node {
	if n == nil {
		return nil
	}
	return NewNode(name, n.Parts...)
}

// LocalBounds is the union of the part boxes in model space.
func (n *Node) LocalBounds() (r3.Box, bool) {
	if n == nil {
		return r3.Box{}, false
	}
	boxes := make([]r3.Box, 0, len(n.Parts))
	for _, p := range n.Parts {
		boxes = append(boxes, p.Box)
	}
	return common.UnionBoxes(boxes...)
}

// WorldBounds is the axis aligned box around the node in world space.
func (n *Node) WorldBounds() (r3.Box, bool) {
	if n == nil || len(n.Parts) == 0 {
		return r3.Box{}, false
	}
	world := n.World()
	boxes := make([]r3.Box, 0, len(n.Parts))
	for _, p := range n.Parts {
		boxes = append(boxes, TransformBox(world, p.Box))
	}
	return common.UnionBoxes(boxes...)
}

// Normalize rescales the parts so the largest dimension is 1, centred on
// x and z and resting on y = 0.
func (n *Node) Normalize() {
	b, ok := n.LocalBounds()
	if !ok {
		return
	}
	scale := 1.0
	if d := common.MaxDimension(b); d > 0 {
		scale = 1 / d
	}
	c := b.Center()
	shift := r3.Vec{X: -c.X, Y: -b.Min.Y, Z: -c.Z}
	for i := range n.Parts {
		p := &n.Parts[i]
		p.Box = r3.Box{
			Min: r3.Scale(scale, r3.Add(p.Box.Min, shift)),
			Max: r3.Scale(scale, r3.Add(p.Box.Max, shift)),
		}
	}
}

// Corners lists the eight corners of b.
func Corners(b r3.Box) [8]r3.Vec {
	return [8]r3.Vec{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// TransformBox returns the axis aligned box around b transformed by m.
func TransformBox(m common.Mat4, b r3.Box) r3.Box {
	corners := Corners(b)
	first := common.TransformPoint(m, corners[0])
	out := r3.Box{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := common.TransformPoint(m, c)
		out.Min = r3.Vec{X: math.Min(out.Min.X, p.X), Y: math.Min(out.Min.Y, p.Y), Z: math.Min(out.Min.Z, p.Z)}
		out.Max = r3.Vec{X: math.Max(out.Max.X, p.X), Y: math.Max(out.Max.Y, p.Y), Z: math.Max(out.Max.Z, p.Z)}
	}
	return out
}
