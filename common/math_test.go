package common

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestEaseInOutQuad(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.125},
		{0.5, 0.5},
		{0.75, 0.875},
		{1, 1},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, EaseInOutQuad(c.in), 1e-12, "t=%v", c.in)
	}
}

func TestEaseInOutQuadSymmetric(t *testing.T) {
	for i := 0; i <= 100; i++ {
		x := float64(i) / 100
		assert.InDelta(t, 1-EaseInOutQuad(1-x), EaseInOutQuad(x), 1e-12)
	}
}

func TestFitDistance(t *testing.T) {
	cases := []struct {
		name   string
		box    r3.Box
		fov    float64
		factor float64
		want   float64
	}{
		{
			name:   "unit_cube_90",
			box:    r3.Box{Min: r3.Vec{}, Max: r3.Vec{X: 1, Y: 1, Z: 1}},
			fov:    math.Pi / 2,
			factor: 1,
			want:   0.5,
		},
		{
			name:   "tall_box_uses_max_dim",
			box:    r3.Box{Min: r3.Vec{X: -1, Y: 0, Z: -1}, Max: r3.Vec{X: 1, Y: 4, Z: 1}},
			fov:    math.Pi / 2,
			factor: 1.3,
			want:   2 * 1.3,
		},
		{
			name:   "degenerate_clamps",
			box:    r3.Box{},
			fov:    60 * math.Pi / 180,
			factor: 1.3,
			want:   MinFitDistance,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := FitDistance(c.box, c.fov, c.factor)
			require.False(t, math.IsNaN(got))
			require.Greater(t, got, 0.0)
			assert.InDelta(t, c.want, got, 1e-9)
		})
	}
}

func TestDirectionFallback(t *testing.T) {
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	got := Direction(p, p, r3.Vec{Z: 1})
	if diff := cmp.Diff(r3.Vec{Z: 1}, got, approx); diff != "" {
		t.Fatalf("direction mismatch (-want +got):\n%s", diff)
	}

	got = Direction(r3.Vec{}, r3.Vec{X: 0, Y: 0, Z: 5}, r3.Vec{X: 1})
	if diff := cmp.Diff(r3.Vec{Z: 1}, got, approx); diff != "" {
		t.Fatalf("direction mismatch (-want +got):\n%s", diff)
	}
}

func TestUnionBoxes(t *testing.T) {
	_, ok := UnionBoxes()
	require.False(t, ok)

	got, ok := UnionBoxes(
		r3.Box{Min: r3.Vec{X: 0, Y: 0, Z: 0}, Max: r3.Vec{X: 1, Y: 1, Z: 1}},
		r3.Box{Min: r3.Vec{X: -2, Y: 0.5, Z: 0}, Max: r3.Vec{X: 0, Y: 3, Z: 0.5}},
	)
	require.True(t, ok)
	want := r3.Box{Min: r3.Vec{X: -2, Y: 0, Z: 0}, Max: r3.Vec{X: 1, Y: 3, Z: 1}}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Fatalf("union mismatch (-want +got):\n%s", diff)
	}
}

func TestLerpVec(t *testing.T) {
	a := r3.Vec{X: 0, Y: 2, Z: -4}
	b := r3.Vec{X: 10, Y: 2, Z: 4}
	if diff := cmp.Diff(r3.Vec{X: 5, Y: 2, Z: 0}, LerpVec(a, b, 0.5), approx); diff != "" {
		t.Fatalf("lerp mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, a, LerpVec(a, b, 0))
	assert.Equal(t, b, LerpVec(a, b, 1))
}
