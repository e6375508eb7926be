package rig

import (
	"math"

	"gonum.org/v1/gonum/interp"
)

const (
	// proximityFloor is the multiplier at ground level (normalized height 0).
	proximityFloor = 0.32
	// proximityEndSlope is the incoming slope at normalized height 1: 82 degrees expressed in radians.
	proximityEndSlope = 82 * math.Pi / 180
)

// ProximityCurve maps a normalized camera height in [0, 1] to an input multiplier.
// Inputs outside [0, 1] evaluate to the nearest endpoint.
type ProximityCurve struct {
	spline interp.PiecewiseCubic
}

// NewProximityCurve builds the default easing curve: 0.32 with a flat tangent at ground
// level, rising to exactly 1 at the top with an 82-degree incoming tangent.
//
// Returns:
//   - *ProximityCurve: the curve
func NewProximityCurve() *ProximityCurve {
	return NewProximityCurveFromKeys(
		[]float64{0, 1},
		[]float64{proximityFloor, 1},
		[]float64{0, proximityEndSlope},
	)
}

// NewProximityCurveFromKeys builds a cubic Hermite curve through the given keys.
// Panics if fewer than two keys are given, if ts is not strictly increasing or if the
// slices differ in length.
//
// Parameters:
//   - ts: key times, strictly increasing
//   - values: curve value at each key
//   - slopes: tangent (dvalue/dt) at each key
//
// Returns:
//   - *ProximityCurve: the curve
func NewProximityCurveFromKeys(ts, values, slopes []float64) *ProximityCurve {
	pc := &ProximityCurve{}
	pc.spline.FitWithDerivatives(ts, values, slopes)
	return pc
}

// Evaluate returns the curve value at t, clamping t into [0, 1].
//
// Parameters:
//   - t: normalized height
//
// Returns:
//   - float32: the multiplier
func (pc *ProximityCurve) Evaluate(t float32) float32 {
	x := float64(t)
	if math.IsNaN(x) || x < 0 {
		x = 0
	}
	if x > 1 {
		x = 1
	}
	return float32(pc.spline.Predict(x))
}
