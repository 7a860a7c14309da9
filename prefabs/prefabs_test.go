package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func useDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}

func TestEmbeddedSpecs(t *testing.T) {
	useDir(t, t.TempDir())

	cam, err := LoadCameraSpec()
	require.NoError(t, err)
	assert.Equal(t, 60.0, cam.FOVDegrees)
	assert.Equal(t, 2.2, cam.Rate)
	assert.Equal(t, r3.Vec{Y: 2, Z: 5}, cam.Position.Vec())
	require.Len(t, cam.Presets, 2)
	assert.Equal(t, "top", cam.Presets[0].Name)
	assert.Equal(t, 6.0, cam.Presets[0].MinY)

	pl, err := LoadPlacementSpec()
	require.NoError(t, err)
	require.NotNil(t, pl.FallbackOffset)
	assert.Equal(t, r3.Vec{Y: -0.3, Z: -1}, pl.FallbackOffset.Vec())
	assert.Equal(t, 10*time.Second, pl.AcquireTimeout)
	assert.Equal(t, "viewer", pl.ReferenceSpace)

	model, err := LoadModelSpec()
	require.NoError(t, err)
	assert.True(t, model.Normalize)
	assert.NotEmpty(t, model.Parts)

	sim, err := LoadSimSpec()
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, sim.AcquireDelay)
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, CameraFile), []byte("fov_degrees: 45\n"), 0o644))

	cam, err := LoadSpec[CameraSpec]("prefabs/camera.yaml")
	require.NoError(t, err)
	assert.Equal(t, 45.0, cam.FOVDegrees)
	assert.Zero(t, cam.Rate)

	_, ok := ModTime(CameraFile)
	assert.True(t, ok)
	_, ok = ModTime(SimFile)
	assert.False(t, ok)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)

	_, err := LoadSpec[CameraSpec]("missing.yaml")
	assert.ErrorContains(t, err, "prefabs: load missing.yaml")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ModelFile), []byte("name: empty\n"), 0o644))
	_, err = LoadModelSpec()
	assert.ErrorContains(t, err, "no parts")

	_, err = DecodeSpec[CameraSpec]("bad.yaml", []byte("position: [1, 2]\n"))
	assert.ErrorContains(t, err, "prefabs: unmarshal bad.yaml")
}

func TestVec3RoundTrip(t *testing.T) {
	v := r3.Vec{X: 1, Y: -2, Z: 3.5}
	assert.Equal(t, v, FromVec(v).Vec())
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, CameraFile), []byte("rate: 3\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, CameraFile, name)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for camera.yaml")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
