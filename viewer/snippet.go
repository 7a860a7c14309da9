package viewer

import (
	"fmt"

	"github.com/milk9111/anchorview/camera"
	"github.com/milk9111/anchorview/prefabs"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// PresetSnippet renders the camera pose as a camera.yaml preset entry,
// relative to the centre of bounds.
func PresetSnippet(name string, pose camera.Pose, bounds r3.Box) ([]byte, error) {
	center := bounds.Center()
	entry := []prefabs.PresetSpec{{
		Name:   name,
		Offset: prefabs.FromVec(r3.Sub(pose.Position, center)),
	}}
	out, err := yaml.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("viewer: marshal preset: %w", err)
	}
	return out, nil
}
