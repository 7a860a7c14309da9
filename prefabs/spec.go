package prefabs

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// Vec3 is an [x, y, z] triple as written in yaml.
type Vec3 [3]float64

func (v Vec3) Vec() r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

func FromVec(v r3.Vec) Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return DecodeSpec[T](filename, data)
}

// DecodeSpec parses data as a T. filename only labels errors.
func DecodeSpec[T any](filename string, data []byte) (T, error) {
	var zero T
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

const (
	CameraFile    = "camera.yaml"
	PlacementFile = "placement.yaml"
	ModelFile     = "model.yaml"
	SimFile       = "sim.yaml"
)

type PresetSpec struct {
	Name      string  `yaml:"name"`
	Offset    Vec3    `yaml:"offset"`
	SizeScale Vec3    `yaml:"size_scale"`
	MinY      float64 `yaml:"min_y"`
}

type CameraSpec struct {
	FOVDegrees  float64      `yaml:"fov_degrees"`
	Rate        float64      `yaml:"rate"`
	Position    Vec3         `yaml:"position"`
	Target      Vec3         `yaml:"target"`
	FitFactor   float64      `yaml:"fit_factor"`
	ResetFactor float64      `yaml:"reset_factor"`
	PartFactor  float64      `yaml:"part_factor"`
	SpinPerTick float64      `yaml:"spin_per_tick"`
	Presets     []PresetSpec `yaml:"presets"`
}

func LoadCameraSpec() (CameraSpec, error) {
	return LoadSpec[CameraSpec](CameraFile)
}

type PlacementSpec struct {
	FallbackOffset *Vec3         `yaml:"fallback_offset"`
	AcquireTimeout time.Duration `yaml:"acquire_timeout"`
	ReferenceSpace string        `yaml:"reference_space"`
}

func LoadPlacementSpec() (PlacementSpec, error) {
	return LoadSpec[PlacementSpec](PlacementFile)
}

type PartSpec struct {
	Name string `yaml:"name"`
	Min  Vec3   `yaml:"min"`
	Max  Vec3   `yaml:"max"`
	Info string `yaml:"info"`
}

type ModelSpec struct {
	Name      string     `yaml:"name"`
	Normalize bool       `yaml:"normalize"`
	Parts     []PartSpec `yaml:"parts"`
}

func LoadModelSpec() (ModelSpec, error) {
	spec, err := LoadSpec[ModelSpec](ModelFile)
	if err != nil {
		return spec, err
	}
	if len(spec.Parts) == 0 {
		return spec, fmt.Errorf("prefabs: %s: model has no parts", ModelFile)
	}
	return spec, nil
}

type SimSpec struct {
	FloorY       float64       `yaml:"floor_y"`
	MaxRange     float64       `yaml:"max_range"`
	AcquireDelay time.Duration `yaml:"acquire_delay"`
	Fail         bool          `yaml:"fail"`
}

func LoadSimSpec() (SimSpec, error) {
	return LoadSpec[SimSpec](SimFile)
}
