package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{359, 359},
		{360, 0},
		{-60, 300},
		{725, 5},
		{-720, 0},
	}
	for _, tt := range tests {
		if got := WrapDegrees(tt.in); math.Abs(float64(got-tt.want)) > 1e-4 {
			t.Errorf("WrapDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEulerDegrees_RoundTrip(t *testing.T) {
	tests := []struct {
		name             string
		pitch, yaw, roll float32
	}{
		{"identity", 0, 0, 0},
		{"rts pitch", 300, 0, 0},
		{"yaw only", 0, 135, 0},
		{"yaw and pitch", 330, 45, 0},
		{"all three", 20, 200, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := AxisAngle(tt.yaw, mgl32.Vec3{0, 1, 0}).
				Mul(AxisAngle(tt.pitch, mgl32.Vec3{1, 0, 0})).
				Mul(AxisAngle(tt.roll, mgl32.Vec3{0, 0, 1}))

			x, y, z := EulerDegrees(q)
			for _, c := range []struct{ got, want float32 }{{x, tt.pitch}, {y, tt.yaw}, {z, tt.roll}} {
				d := WrapDegrees(c.got - c.want)
				if d > 180 {
					d = 360 - d
				}
				if d > 1e-2 {
					t.Errorf("EulerDegrees = (%v, %v, %v), want (%v, %v, %v)", x, y, z, tt.pitch, tt.yaw, tt.roll)
					return
				}
			}
		})
	}
}

func TestLookAtAndInvert(t *testing.T) {
	var view [16]float32
	LookAt(view[:], 0, 10, 10, 0, 0, 0, 0, 1, 0)

	eye := mgl32.Mat4(view).Mul4x1(mgl32.Vec4{0, 10, 10, 1})
	if !approxSlice(eye[:3], []float32{0, 0, 0}) {
		t.Errorf("eye maps to %v, want origin", eye)
	}

	var inv, prod [16]float32
	if !Invert4(inv[:], view[:]) {
		t.Fatal("view matrix reported singular")
	}
	Mul4(prod[:], view[:], inv[:])
	var ident [16]float32
	Identity(ident[:])
	if !approxSlice(prod[:], ident[:]) {
		t.Errorf("view * inverse = %v, want identity", prod)
	}
}

func approxSlice(a, b []float32) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-4 {
			return false
		}
	}
	return true
}
