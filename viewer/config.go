package viewer

import (
	"fmt"
	"math"

	"github.com/milk9111/anchorview/camera"
	"github.com/milk9111/anchorview/prefabs"
	"github.com/milk9111/anchorview/scene"
	"github.com/milk9111/anchorview/tracking"
	"github.com/milk9111/anchorview/tracking/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

// Factors are the framing margins used by the viewer's buttons.
type Factors struct {
	Fit   float64
	Reset float64
	Part  float64
}

func factorsFromSpec(spec prefabs.CameraSpec) Factors {
	f := Factors{Fit: spec.FitFactor, Reset: spec.ResetFactor, Part: spec.PartFactor}
	if f.Fit <= 0 {
		f.Fit = camera.FitFactor
	}
	if f.Reset <= 0 {
		f.Reset = camera.ResetFactor
	}
	if f.Part <= 0 {
		f.Part = camera.PartFactor
	}
	return f
}

func cameraConfig(spec prefabs.CameraSpec) camera.Config {
	return camera.Config{FOV: spec.FOVDegrees * math.Pi / 180, Rate: spec.Rate}
}

func initialPose(spec prefabs.CameraSpec) camera.Pose {
	p := camera.Pose{Position: spec.Position.Vec(), Target: spec.Target.Vec()}
	if p.Position == p.Target {
		p = camera.Pose{Position: r3.Vec{Y: 2, Z: 5}, Target: r3.Vec{Y: 0.5}}
	}
	return p
}

func presetsFromSpec(spec prefabs.CameraSpec) camera.Presets {
	if len(spec.Presets) == 0 {
		return camera.Presets(camera.DefaultPresets)
	}
	out := make(camera.Presets, 0, len(spec.Presets))
	for _, p := range spec.Presets {
		out = append(out, camera.PresetSpec{
			Name:      p.Name,
			Offset:    p.Offset.Vec(),
			SizeScale: p.SizeScale.Vec(),
			MinY:      p.MinY,
		})
	}
	return out
}

func fallbackOffset(spec prefabs.PlacementSpec) r3.Vec {
	if spec.FallbackOffset == nil {
		return r3.Vec{}
	}
	return spec.FallbackOffset.Vec()
}

// BuildModel turns a model spec into a scene node, normalized when the spec
// asks for it.
func BuildModel(spec prefabs.ModelSpec) (*scene.Node, error) {
	if len(spec.Parts) == 0 {
		return nil, fmt.Errorf("viewer: model %q has no parts", spec.Name)
	}
	parts := make([]scene.Part, 0, len(spec.Parts))
	for _, p := range spec.Parts {
		b := r3.Box{Min: p.Min.Vec(), Max: p.Max.Vec()}
		if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z {
			return nil, fmt.Errorf("viewer: part %q: min above max", p.Name)
		}
		parts = append(parts, scene.Part{Name: p.Name, Box: b, Info: p.Info})
	}
	name := spec.Name
	if name == "" {
		name = "model"
	}
	n := scene.NewNode(name, parts...)
	if spec.Normalize {
		n.Normalize()
	}
	return n, nil
}

// SimConfig maps the simulated platform spec onto sim.Config.
func SimConfig(spec prefabs.SimSpec) sim.Config {
	return sim.Config{
		FloorY:       spec.FloorY,
		MaxRange:     spec.MaxRange,
		AcquireDelay: spec.AcquireDelay,
		Fail:         spec.Fail,
	}
}

func trackingConfig(spec prefabs.PlacementSpec) (tracking.Config, error) {
	space, err := tracking.ParseReferenceSpace(spec.ReferenceSpace)
	if err != nil {
		return tracking.Config{}, err
	}
	return tracking.Config{Space: space, AcquireTimeout: spec.AcquireTimeout}, nil
}
