package rig

import (
	"log/slog"
)

// RigControllerOption is a functional option for configuring a RigController.
type RigControllerOption func(*rigControllerImpl)

// WithConfig sets the initial configuration.
//
// Parameters:
//   - cfg: speeds, ranges and toggles
//
// Returns:
//   - RigControllerOption: functional option to set the configuration
func WithConfig(cfg Config) RigControllerOption {
	return func(rc *rigControllerImpl) {
		rc.cfg = cfg
	}
}

// WithInput attaches the input source polled by FrameUpdate.
//
// Parameters:
//   - in: the input source
//
// Returns:
//   - RigControllerOption: functional option to set the input source
func WithInput(in InputSource) RigControllerOption {
	return func(rc *rigControllerImpl) {
		rc.input = in
	}
}

// WithBindings replaces the default key bindings.
//
// Parameters:
//   - b: the key bindings
//
// Returns:
//   - RigControllerOption: functional option to set the bindings
func WithBindings(b Bindings) RigControllerOption {
	return func(rc *rigControllerImpl) {
		rc.bindings = b
	}
}

// WithProximityCurve replaces the default proximity curve.
//
// Parameters:
//   - curve: the curve evaluated at the camera's normalized height
//
// Returns:
//   - RigControllerOption: functional option to set the curve
func WithProximityCurve(curve *ProximityCurve) RigControllerOption {
	return func(rc *rigControllerImpl) {
		rc.curve = curve
	}
}

// WithLogger sets the logger used for diagnostics such as invalid rotation axes.
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - RigControllerOption: functional option to set the logger
func WithLogger(logger *slog.Logger) RigControllerOption {
	return func(rc *rigControllerImpl) {
		rc.logger = logger
	}
}
