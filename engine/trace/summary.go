package trace

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes how far the rig travelled per tick over a run.
type Summary struct {
	Ticks         int
	MeanStep      float64 // mean per-tick displacement of the rig (x, y, z plus height)
	MaxStep       float64
	StdDevStep    float64
	FinalDistance float64 // distance between the last rig position and its target on the ground plane
}

// Summarize computes displacement statistics over consecutive samples.
//
// Parameters:
//   - samples: samples in tick order
//
// Returns:
//   - Summary: the statistics; zero-valued for fewer than two samples except Ticks and FinalDistance
func Summarize(samples []Sample) Summary {
	s := Summary{Ticks: len(samples)}
	if len(samples) == 0 {
		return s
	}

	last := samples[len(samples)-1]
	s.FinalDistance = math.Hypot(float64(last.TargetX-last.RigX), float64(last.TargetZ-last.RigZ))

	if len(samples) < 2 {
		return s
	}
	steps := make([]float64, len(samples)-1)
	for i := 1; i < len(samples); i++ {
		a, b := samples[i-1], samples[i]
		d := []float64{
			float64(b.RigX - a.RigX),
			float64(b.RigY - a.RigY),
			float64(b.RigZ - a.RigZ),
			float64(b.Height - a.Height),
		}
		steps[i-1] = floats.Norm(d, 2)
	}
	s.MeanStep, s.StdDevStep = stat.MeanStdDev(steps, nil)
	s.MaxStep = floats.Max(steps)
	return s
}

// LogValue renders the summary as a slog group.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("ticks", s.Ticks),
		slog.Float64("mean_step", s.MeanStep),
		slog.Float64("max_step", s.MaxStep),
		slog.Float64("stddev_step", s.StdDevStep),
		slog.Float64("final_distance", s.FinalDistance),
	)
}
