package scene

import (
	"math"

	"github.com/milk9111/anchorview/common"
	"github.com/milk9111/anchorview/placement"
	"gonum.org/v1/gonum/spatial/r3"
)

// Viewer supplies the current viewer (camera or device) transform.
type Viewer interface {
	ViewerPose() common.Mat4
}

// Graph holds the nodes currently in the scene, in attach order.
type Graph struct {
	nodes  []*Node
	viewer Viewer
}

var _ placement.Scene = (*Graph)(nil)

func NewGraph(viewer Viewer) *Graph {
	return &Graph{viewer: viewer}
}

func (g *Graph) SetViewer(v Viewer) {
	if g == nil {
		return
	}
	g.viewer = v
}

// Attach adds a *Node to the scene. Other node types and repeats are ignored.
func (g *Graph) Attach(n placement.Node) {
	node, ok := n.(*Node)
	if g == nil || !ok || node == nil || g.Attached(node) {
		return
	}
	g.nodes = append(g.nodes, node)
}

func (g *Graph) Detach(n placement.Node) {
	node, ok := n.(*Node)
	if g == nil || !ok {
		return
	}
	for i, cur := range g.nodes {
		if cur == node {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			return
		}
	}
}

func (g *Graph) Attached(n *Node) bool {
	if g == nil || n == nil {
		return false
	}
	for _, cur := range g.nodes {
		if cur == n {
			return true
		}
	}
	return false
}

func (g *Graph) Nodes() []*Node {
	if g == nil {
		return nil
	}
	return append([]*Node(nil), g.nodes...)
}

func (g *Graph) ViewerPose() common.Mat4 {
	if g == nil || g.viewer == nil {
		return common.Identity()
	}
	return g.viewer.ViewerPose()
}

// Bounds is the world box around every attached node.
func (g *Graph) Bounds() (r3.Box, bool) {
	if g == nil {
		return r3.Box{}, false
	}
	var boxes []r3.Box
	for _, n := range g.nodes {
		if b, ok := n.WorldBounds(); ok {
			boxes = append(boxes, b)
		}
	}
	return common.UnionBoxes(boxes...)
}

// Hit is the nearest part a ray ran into.
type Hit struct {
	Node     *Node
	Part     Part
	Distance float64
}

// Pick casts a ray from origin along dir and returns the closest part hit.
func (g *Graph) Pick(origin, dir r3.Vec) (Hit, bool) {
	var best Hit
	found := false
	if g == nil || r3.Norm(dir) == 0 {
		return best, false
	}
	dir = r3.Unit(dir)
	for _, n := range g.nodes {
		world := n.World()
		for _, p := range n.Parts {
			d, ok := IntersectRay(TransformBox(world, p.Box), origin, dir)
			if !ok || (found && d >= best.Distance) {
				continue
			}
			best = Hit{Node: n, Part: p, Distance: d}
			found = true
		}
	}
	return best, found
}

// PickForward casts a ray down the forward axis of a viewer transform.
func (g *Graph) PickForward(viewer common.Mat4) (Hit, bool) {
	return g.Pick(common.Position(viewer), common.Forward(viewer))
}

// IntersectRay runs the slab test of a ray against b. A ray starting inside
// the box hits it at distance 0.
func IntersectRay(b r3.Box, origin, dir r3.Vec) (float64, bool) {
	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	tmin, tmax := 0.0, math.Inf(1)
	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
