package viewer

import (
	"testing"

	"github.com/milk9111/anchorview/camera"
	"github.com/milk9111/anchorview/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPresetSnippetLoadsBack(t *testing.T) {
	bounds := r3.Box{Min: r3.Vec{X: -1, Z: -1}, Max: r3.Vec{X: 1, Y: 2, Z: 1}}
	pose := camera.Pose{Position: r3.Vec{X: 3, Y: 4, Z: 5}, Target: bounds.Center()}

	out, err := PresetSnippet("corner", pose, bounds)
	require.NoError(t, err)

	spec, err := prefabs.DecodeSpec[prefabs.CameraSpec]("snippet", append([]byte("presets:\n"), indent(out)...))
	require.NoError(t, err)
	require.Len(t, spec.Presets, 1)

	p := camera.PresetSpec{Name: spec.Presets[0].Name, Offset: spec.Presets[0].Offset.Vec()}
	assert.Equal(t, "corner", p.Name)
	assert.Equal(t, pose, p.Resolve(bounds))
}

func indent(b []byte) []byte {
	out := []byte("  ")
	for i, c := range b {
		out = append(out, c)
		if c == '\n' && i < len(b)-1 {
			out = append(out, ' ', ' ')
		}
	}
	return out
}
