// Package trace records the rig's per-tick state as CSV and summarizes how it moved.
package trace

import (
	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/rig"
)

// Sample is one smoothing tick of rig state. Angles are in degrees.
type Sample struct {
	Tick        int     `csv:"tick"`
	Elapsed     float32 `csv:"elapsed"`
	RigX        float32 `csv:"rig_x"`
	RigY        float32 `csv:"rig_y"`
	RigZ        float32 `csv:"rig_z"`
	Yaw         float32 `csv:"yaw"`
	Height      float32 `csv:"height"`
	Pitch       float32 `csv:"pitch"`
	TargetX     float32 `csv:"target_x"`
	TargetZ     float32 `csv:"target_z"`
	TargetZoom  float32 `csv:"target_zoom"`
	TargetYaw   float32 `csv:"target_yaw"`
	TargetPitch float32 `csv:"target_pitch"`
}

// SampleOf captures the current transforms and targets of a rig.
//
// Parameters:
//   - tick: tick index
//   - elapsed: seconds since the run started
//   - rigNode: the node carrying position and yaw
//   - camNode: the node carrying height and pitch
//   - targets: the controller's target state
//
// Returns:
//   - Sample: the captured sample
func SampleOf(tick int, elapsed float32, rigNode, camNode rig.TransformHandle, targets rig.TargetState) Sample {
	pos := rigNode.LocalPosition()
	_, yaw, _ := common.EulerDegrees(rigNode.LocalRotation())
	pitch, _, _ := common.EulerDegrees(camNode.LocalRotation())

	return Sample{
		Tick:        tick,
		Elapsed:     elapsed,
		RigX:        pos.X(),
		RigY:        pos.Y(),
		RigZ:        pos.Z(),
		Yaw:         yaw,
		Height:      camNode.LocalPosition().Y(),
		Pitch:       pitch,
		TargetX:     targets.Position.X(),
		TargetZ:     targets.Position.Z(),
		TargetZoom:  targets.Zoom.Y(),
		TargetYaw:   targets.HorizontalAngle,
		TargetPitch: targets.VerticalAngle,
	}
}
