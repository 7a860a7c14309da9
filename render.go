package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/anchorview/common"
	"github.com/milk9111/anchorview/scene"
	"gonum.org/v1/gonum/spatial/r3"
	"golang.org/x/image/colornames"
)

const (
	nearPlane    = 0.05
	farPlane     = 500
	reticleSize  = 0.12
	reticleSides = 32
)

// boxEdges indexes scene.Corners.
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// projector maps world points to screen pixels for one frame.
type projector struct {
	viewProj common.Mat4
	w, h     float64
}

func newProjector(viewer common.Mat4, fov, w, h float64) projector {
	proj := common.Perspective(fov, w/h, nearPlane, farPlane)
	return projector{viewProj: common.Mul(proj, common.InverseRigid(viewer)), w: w, h: h}
}

func (p projector) toScreen(v r3.Vec) (float32, float32, bool) {
	x, y, ok := common.Project(p.viewProj, v)
	if !ok {
		return 0, 0, false
	}
	return float32((x + 1) / 2 * p.w), float32((1 - y) / 2 * p.h), true
}

func (p projector) line(screen *ebiten.Image, a, b r3.Vec, width float32, clr color.Color) {
	x0, y0, ok0 := p.toScreen(a)
	x1, y1, ok1 := p.toScreen(b)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
}

// drawNode draws every part of n as a wireframe box. The part named
// highlight is drawn thicker.
func (p projector) drawNode(screen *ebiten.Image, n *scene.Node, highlight string) {
	world := n.World()
	for _, part := range n.Parts {
		corners := scene.Corners(part.Box)
		var pts [8]r3.Vec
		for i, c := range corners {
			pts[i] = common.TransformPoint(world, c)
		}
		clr, width := color.Color(colornames.Lightsteelblue), float32(1.5)
		if part.Name == highlight && highlight != "" {
			clr, width = colornames.Gold, 3
		}
		for _, e := range boxEdges {
			p.line(screen, pts[e[0]], pts[e[1]], width, clr)
		}
	}
}

// ringPoints lays n points on a horizontal circle.
func ringPoints(center r3.Vec, radius float64, n int) []r3.Vec {
	pts := make([]r3.Vec, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = r3.Vec{X: center.X + radius*math.Cos(a), Y: center.Y, Z: center.Z + radius*math.Sin(a)}
	}
	return pts
}

func (p projector) drawReticle(screen *ebiten.Image, pose common.Mat4) {
	pts := ringPoints(common.Position(pose), reticleSize, reticleSides)
	for i := range pts {
		p.line(screen, pts[i], pts[(i+1)%len(pts)], 2, colornames.White)
	}
}

// drawFloor draws a grid on the plane y = floorY around the viewer.
func (p projector) drawFloor(screen *ebiten.Image, floorY float64, around r3.Vec) {
	const half, step = 6, 1.0
	cx, cz := math.Round(around.X), math.Round(around.Z)
	clr := color.NRGBA{R: 0x40, G: 0x60, B: 0x40, A: 0xff}
	for i := -half; i <= half; i++ {
		o := float64(i) * step
		p.line(screen, r3.Vec{X: cx + o, Y: floorY, Z: cz - half}, r3.Vec{X: cx + o, Y: floorY, Z: cz + half}, 1, clr)
		p.line(screen, r3.Vec{X: cx - half, Y: floorY, Z: cz + o}, r3.Vec{X: cx + half, Y: floorY, Z: cz + o}, 1, clr)
	}
}
