package common

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// MinFitDistance keeps a framed camera off the target when bounds collapse to a point.
const MinFitDistance = 1e-3

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// LerpVec interpolates each component of a and b independently.
func LerpVec(a, b r3.Vec, t float64) r3.Vec {
	return r3.Vec{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

// EaseInOutQuad is the symmetric quadratic ease used for camera moves.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := 1 - t
	return 1 - 2*u*u
}

// MaxDimension returns the largest extent of b.
func MaxDimension(b r3.Box) float64 {
	size := b.Size()
	return math.Max(size.X, math.Max(size.Y, size.Z))
}

// FitDistance is how far a camera with the given vertical field of view must
// sit from the centre of b to see all of it, scaled by factor.
func FitDistance(b r3.Box, fovRadians, factor float64) float64 {
	d := math.Abs(MaxDimension(b)/2/math.Tan(fovRadians/2)) * factor
	if math.IsNaN(d) || math.IsInf(d, 0) || d < MinFitDistance {
		return MinFitDistance
	}
	return d
}

// Direction returns the unit vector from `from` to `to`, or fallback when the
// two points coincide.
func Direction(from, to, fallback r3.Vec) r3.Vec {
	d := r3.Sub(to, from)
	n := r3.Norm(d)
	if n == 0 || math.IsNaN(n) {
		return fallback
	}
	return r3.Scale(1/n, d)
}

// UnionBoxes returns the smallest box containing every box in bs. ok is false
// when bs is empty.
func UnionBoxes(bs ...r3.Box) (r3.Box, bool) {
	if len(bs) == 0 {
		return r3.Box{}, false
	}
	out := bs[0]
	for _, b := range bs[1:] {
		out.Min = r3.Vec{X: math.Min(out.Min.X, b.Min.X), Y: math.Min(out.Min.Y, b.Min.Y), Z: math.Min(out.Min.Z, b.Min.Z)}
		out.Max = r3.Vec{X: math.Max(out.Max.X, b.Max.X), Y: math.Max(out.Max.Y, b.Max.Y), Z: math.Max(out.Max.Z, b.Max.Z)}
	}
	return out, true
}
