package trace

import "log/slog"

// RecorderBuilderOption is a functional option for configuring a Recorder during construction.
type RecorderBuilderOption func(*recorderImpl)

// WithBatchSize sets how many samples are buffered before a background write.
//
// Parameters:
//   - n: samples per batch; values below 1 are treated as 1
//
// Returns:
//   - RecorderBuilderOption: functional option to set the batch size
func WithBatchSize(n int) RecorderBuilderOption {
	return func(r *recorderImpl) {
		r.batchSize = n
	}
}

// WithLogger sets the logger that receives write errors.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - RecorderBuilderOption: functional option to set the logger
func WithLogger(logger *slog.Logger) RecorderBuilderOption {
	return func(r *recorderImpl) {
		r.logger = logger
	}
}
