package game_object

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rts/common"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID overrides the generated ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the display name of the GameObject.
//
// Parameters:
//   - name: the name used in logs
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject starts enabled.
//
// Parameters:
//   - enabled: false to start disabled
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets the initial local position of the GameObject.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial local rotation from Euler angles in degrees, applied in
// Y, X, Z order (yaw, then pitch, then roll).
//
// Parameters:
//   - rx: pitch about X
//   - ry: yaw about Y
//   - rz: roll about Z
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial rotation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = common.AxisAngle(ry, mgl32.Vec3{0, 1, 0}).
			Mul(common.AxisAngle(rx, mgl32.Vec3{1, 0, 0})).
			Mul(common.AxisAngle(rz, mgl32.Vec3{0, 0, 1}))
	}
}

// WithParent attaches the GameObject to a parent node. Construction never creates a cycle
// since the new object cannot yet be anyone's ancestor.
//
// Parameters:
//   - p: the parent node
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the parent
func WithParent(p GameObject) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.parent = p
	}
}
