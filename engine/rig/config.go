package rig

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Cadence selects where the smoothing driver runs.
type Cadence string

const (
	// CadenceFixed smooths on PhysicsUpdate, independently of the visual frame rate.
	CadenceFixed Cadence = "fixed"
	// CadenceFrame smooths at the end of FrameUpdate; PhysicsUpdate is inert.
	CadenceFrame Cadence = "frame"
)

// Config holds the controller's speeds, ranges and feature toggles.
// The controller reads it once per frame, so a replaced Config takes effect on the next call.
type Config struct {
	LerpSpeed           float32 `yaml:"lerp_speed"`
	MoveSpeed           float32 `yaml:"move_speed"`
	RotateSpeed         float32 `yaml:"rotate_speed"`
	ZoomSpeed           float32 `yaml:"zoom_speed"`
	// MouseZoomMultiplier multiplies the scaled zoom speed per scroll notch. It is not itself
	// multiplied by SpeedScale, so tuning values carried over from setups that scale it too
	// must be multiplied by SpeedScale first.
	MouseZoomMultiplier float32 `yaml:"mouse_zoom_multiplier"`
	DragRotateSpeed     float32 `yaml:"drag_rotate_speed"` // degrees per pixel per second of middle-drag
	SpeedScale          float32 `yaml:"speed_scale"`       // applied to move, rotate and zoom speeds

	BorderEffectRange float32 `yaml:"border_effect_range"` // fraction of screen height

	MinPosition mgl32.Vec3 `yaml:"min_position,flow"`
	MaxPosition mgl32.Vec3 `yaml:"max_position,flow"`

	MinVerticalAngle        float32 `yaml:"min_vertical_angle"`
	MaxVerticalAngle        float32 `yaml:"max_vertical_angle"`
	MinHorizontalAngle      float32 `yaml:"min_horizontal_angle"`
	MaxHorizontalAngle      float32 `yaml:"max_horizontal_angle"`
	LimitVerticalRotation   bool    `yaml:"limit_vertical_rotation"`
	LimitHorizontalRotation bool    `yaml:"limit_horizontal_rotation"`

	UseBorderMovement     bool `yaml:"use_border_movement"`
	CanMove               bool `yaml:"can_move"`
	CanZoom               bool `yaml:"can_zoom"`
	CanRotateHorizontally bool `yaml:"can_rotate_horizontally"`
	CanRotateVertically   bool `yaml:"can_rotate_vertically"`
	EvaluateProximity     bool `yaml:"evaluate_proximity"`

	Cadence Cadence `yaml:"cadence"`
}

// DefaultConfig returns the stock RTS rig tuning.
//
// Returns:
//   - Config: the default configuration
func DefaultConfig() Config {
	return Config{
		LerpSpeed:           5,
		MoveSpeed:           2,
		RotateSpeed:         2,
		ZoomSpeed:           4,
		MouseZoomMultiplier: 5,
		DragRotateSpeed:     20,
		SpeedScale:          100,

		BorderEffectRange: 0.01,

		MinPosition: mgl32.Vec3{-50, 10, -50},
		MaxPosition: mgl32.Vec3{50, 100, 50},

		MinVerticalAngle:        280,
		MaxVerticalAngle:        358,
		MinHorizontalAngle:      0,
		MaxHorizontalAngle:      0,
		LimitVerticalRotation:   true,
		LimitHorizontalRotation: false,

		UseBorderMovement:     true,
		CanMove:               true,
		CanZoom:               true,
		CanRotateHorizontally: true,
		CanRotateVertically:   true,
		EvaluateProximity:     true,

		Cadence: CadenceFixed,
	}
}

// Validate rejects configurations the controller cannot honor: inverted ranges, negative
// speeds, a border range outside [0, 1] or an unknown cadence. The controller itself never
// calls Validate; loaders do.
//
// Returns:
//   - error: every problem found, joined, or nil
func (c Config) Validate() error {
	var errs []error

	speeds := []struct {
		name  string
		value float32
	}{
		{"lerp_speed", c.LerpSpeed},
		{"move_speed", c.MoveSpeed},
		{"rotate_speed", c.RotateSpeed},
		{"zoom_speed", c.ZoomSpeed},
		{"mouse_zoom_multiplier", c.MouseZoomMultiplier},
		{"drag_rotate_speed", c.DragRotateSpeed},
		{"speed_scale", c.SpeedScale},
	}
	for _, s := range speeds {
		if s.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %g", s.name, s.value))
		}
	}

	if c.BorderEffectRange < 0 || c.BorderEffectRange > 1 {
		errs = append(errs, fmt.Errorf("border_effect_range must be within [0, 1], got %g", c.BorderEffectRange))
	}

	for i, name := range [3]string{"x", "y", "z"} {
		if c.MinPosition[i] > c.MaxPosition[i] {
			errs = append(errs, fmt.Errorf("min_position.%s (%g) exceeds max_position.%s (%g)",
				name, c.MinPosition[i], name, c.MaxPosition[i]))
		}
	}
	if c.MaxPosition.Y() <= 0 {
		errs = append(errs, fmt.Errorf("max_position.y must be positive, got %g", c.MaxPosition.Y()))
	}

	if c.MinVerticalAngle > c.MaxVerticalAngle {
		errs = append(errs, fmt.Errorf("min_vertical_angle (%g) exceeds max_vertical_angle (%g)",
			c.MinVerticalAngle, c.MaxVerticalAngle))
	}
	if c.MinHorizontalAngle > c.MaxHorizontalAngle {
		errs = append(errs, fmt.Errorf("min_horizontal_angle (%g) exceeds max_horizontal_angle (%g)",
			c.MinHorizontalAngle, c.MaxHorizontalAngle))
	}

	switch c.Cadence {
	case CadenceFixed, CadenceFrame:
	default:
		errs = append(errs, fmt.Errorf("unknown cadence %q", c.Cadence))
	}

	return errors.Join(errs...)
}

// scaled returns a speed multiplied by the configured speed scale.
func (c Config) scaled(speed float32) float32 {
	return speed * c.SpeedScale
}
