// Package rig implements an RTS-style camera rig controller. A rig node pans across the ground
// plane and yaws about the vertical axis; a child camera node carries the zoom height and the
// pitch. Input is sampled once per visual frame into an owned TargetState, clamped, and the
// transforms are smoothed toward that state on a separate (or the same) tick cadence.
package rig

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Local basis used to derive movement directions from the rig's rotation.
// Matches the right-handed, -Z forward convention of common.LookAt.
var (
	Forward = mgl32.Vec3{0, 0, -1}
	Right   = mgl32.Vec3{1, 0, 0}
	Up      = mgl32.Vec3{0, 1, 0}
)

// ErrInvalidAxis is returned by AddRotation when the axis is neither AxisVertical nor AxisHorizontal.
var ErrInvalidAxis = errors.New("invalid rotation axis")

// Axis selects which orbit angle a rotation delta applies to.
type Axis uint8

const (
	// AxisVertical pitches the camera node about its local X axis.
	AxisVertical Axis = iota
	// AxisHorizontal yaws the rig node about the world Y axis.
	AxisHorizontal
)

// Valid reports whether the axis is one of the two pivot axes.
//
// Returns:
//   - bool: true for AxisVertical and AxisHorizontal
func (a Axis) Valid() bool {
	return a == AxisVertical || a == AxisHorizontal
}

// Vector returns the rotation axis in local space.
//
// Returns:
//   - mgl32.Vec3: Right for AxisVertical, Up for AxisHorizontal, zero otherwise
func (a Axis) Vector() mgl32.Vec3 {
	switch a {
	case AxisVertical:
		return Right
	case AxisHorizontal:
		return Up
	}
	return mgl32.Vec3{}
}

func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	}
	return fmt.Sprintf("Axis(%d)", uint8(a))
}

// TransformHandle is the narrow view of a scene node that the controller drives.
// Positions and rotations are local to the node's parent.
type TransformHandle interface {
	// LocalPosition returns the node's position relative to its parent.
	//
	// Returns:
	//   - mgl32.Vec3: the local position
	LocalPosition() mgl32.Vec3

	// SetLocalPosition replaces the node's local position.
	//
	// Parameters:
	//   - p: the new local position
	SetLocalPosition(p mgl32.Vec3)

	// LocalRotation returns the node's rotation relative to its parent.
	//
	// Returns:
	//   - mgl32.Quat: the local rotation
	LocalRotation() mgl32.Quat

	// SetLocalRotation replaces the node's local rotation.
	//
	// Parameters:
	//   - q: the new local rotation
	SetLocalRotation(q mgl32.Quat)
}

// InputSource is the poll-based input the sampler reads once per visual frame.
// Pointer coordinates are in pixels with the origin at the top-left corner and Y growing downward.
type InputSource interface {
	// PointerPosition returns the current pointer position in pixels.
	//
	// Returns:
	//   - x, y: pointer coordinates
	PointerPosition() (x, y float32)

	// ScrollDelta returns the vertical scroll accumulated since the previous call.
	// Positive values scroll up (zoom in).
	//
	// Returns:
	//   - float32: the scroll delta
	ScrollDelta() float32

	// MiddleButtonHeld reports whether the middle mouse button is currently down.
	//
	// Returns:
	//   - bool: true while held
	MiddleButtonHeld() bool

	// KeyHeld reports whether the key with the given code is currently down.
	//
	// Parameters:
	//   - keyCode: a key code from the common package
	//
	// Returns:
	//   - bool: true while held
	KeyHeld(keyCode uint32) bool

	// ScreenSize returns the drawable area in pixels.
	//
	// Returns:
	//   - width, height: screen dimensions
	ScreenSize() (width, height int)
}
