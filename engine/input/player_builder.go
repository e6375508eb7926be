package input

import "log/slog"

// PlayerBuilderOption is a functional option for configuring a Player during construction.
type PlayerBuilderOption func(*playerImpl)

// WithLogger sets the logger that receives step transitions at debug level.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - PlayerBuilderOption: functional option to set the logger
func WithLogger(logger *slog.Logger) PlayerBuilderOption {
	return func(p *playerImpl) {
		p.logger = logger
	}
}

// WithPointer overrides the starting pointer position.
//
// Parameters:
//   - x, y: pointer coordinates in pixels, origin top-left
//
// Returns:
//   - PlayerBuilderOption: functional option to set the pointer position
func WithPointer(x, y float32) PlayerBuilderOption {
	return func(p *playerImpl) {
		p.x, p.y = x, y
	}
}
