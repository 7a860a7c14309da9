package camera

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// PresetSpec places the camera relative to the centre of a box. Offsets are
// added to the centre; SizeScale multiplies the box size per axis and is added
// on top. MinY raises the Y offset to at least that value.
type PresetSpec struct {
	Name      string
	Offset    r3.Vec
	SizeScale r3.Vec
	MinY      float64
}

// DefaultPresets are the two fixed views offered next to "fit".
var DefaultPresets = []PresetSpec{
	{Name: "top", SizeScale: r3.Vec{Y: 1}, MinY: 6},
	{Name: "front", Offset: r3.Vec{Y: 1.5}, SizeScale: r3.Vec{Z: 2}},
}

// Resolve computes the camera pose a preset gives for bounds.
func (p PresetSpec) Resolve(bounds r3.Box) Pose {
	center := bounds.Center()
	size := bounds.Size()
	off := r3.Vec{
		X: p.Offset.X + p.SizeScale.X*size.X,
		Y: p.Offset.Y + p.SizeScale.Y*size.Y,
		Z: p.Offset.Z + p.SizeScale.Z*size.Z,
	}
	if p.MinY != 0 {
		off.Y = math.Max(off.Y, p.MinY)
	}
	return Pose{Position: r3.Add(center, off), Target: center}
}

// Presets is a name lookup over preset specs.
type Presets []PresetSpec

func (ps Presets) Find(name string) (PresetSpec, error) {
	for _, p := range ps {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return PresetSpec{}, fmt.Errorf("camera: unknown preset %q", name)
}

// GoToPreset starts a move to the named preset view of bounds. It reports
// false for unknown presets and while suspended.
func (c *Controller) GoToPreset(presets Presets, name string, bounds r3.Box) bool {
	if c == nil || c.Suspended() {
		return false
	}
	p, err := presets.Find(name)
	if err != nil {
		return false
	}
	c.MoveTo(p.Resolve(bounds))
	return true
}
