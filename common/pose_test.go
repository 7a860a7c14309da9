package common

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMulIdentity(t *testing.T) {
	b := Translation(r3.Vec{X: 1, Y: 2, Z: 3})
	if got := Mul(Identity(), b); got != b {
		t.Fatalf("identity*b mismatch")
	}
	if got := Mul(b, Identity()); got != b {
		t.Fatalf("b*identity mismatch")
	}
}

func TestPositionFromMatrix(t *testing.T) {
	m := Mul(Translation(r3.Vec{X: 4, Y: -1, Z: 2}), RotationY(math.Pi/3))
	if diff := cmp.Diff(r3.Vec{X: 4, Y: -1, Z: 2}, Position(m), approx); diff != "" {
		t.Fatalf("position mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformPointFallbackOffset(t *testing.T) {
	// A viewer at (0,1.6,0) turned a quarter turn to the left looks down -X.
	viewer := Mul(Translation(r3.Vec{Y: 1.6}), RotationY(math.Pi/2))
	got := TransformPoint(viewer, r3.Vec{X: 0, Y: -0.3, Z: -1})
	want := r3.Vec{X: -1, Y: 1.3, Z: 0}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Fatalf("offset mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(r3.Vec{X: -1}, Forward(viewer), approx); diff != "" {
		t.Fatalf("forward mismatch (-want +got):\n%s", diff)
	}
}

func TestCameraPoseInvertsLookAt(t *testing.T) {
	eye := r3.Vec{X: 0, Y: 2, Z: 5}
	target := r3.Vec{X: 0, Y: 0.5, Z: 0}
	up := r3.Vec{Y: 1}
	round := Mul(LookAt(eye, target, up), CameraPose(eye, target, up))
	id := Identity()
	for i := range round {
		if math.Abs(round[i]-id[i]) > 1e-9 {
			t.Fatalf("view*pose not identity at %d: %v", i, round)
		}
	}
}

func TestProjectBehindEye(t *testing.T) {
	eye := r3.Vec{Z: 5}
	vp := Mul(Perspective(math.Pi/3, 16.0/9.0, 0.01, 100), LookAt(eye, r3.Vec{}, r3.Vec{Y: 1}))

	x, y, ok := Project(vp, r3.Vec{})
	if !ok || math.Abs(x) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Fatalf("origin should project to centre, got (%v,%v) ok=%v", x, y, ok)
	}
	if _, _, ok := Project(vp, r3.Vec{Z: 10}); ok {
		t.Fatalf("point behind eye should not project")
	}
}

func TestInverseRigid(t *testing.T) {
	eye, target, up := r3.Vec{X: 3, Y: 2, Z: 4}, r3.Vec{Y: 0.5}, r3.Vec{Y: 1}
	got := InverseRigid(CameraPose(eye, target, up))
	if diff := cmp.Diff(LookAt(eye, target, up), got, approx); diff != "" {
		t.Fatalf("inverse mismatch (-want +got):\n%s", diff)
	}

	m := Mul(Translation(r3.Vec{X: -1, Y: 5}), Mul(RotationY(0.4), RotationX(-0.2)))
	if diff := cmp.Diff(Identity(), Mul(m, InverseRigid(m)), approx); diff != "" {
		t.Fatalf("m*inverse mismatch (-want +got):\n%s", diff)
	}
}
