package trace

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gocarina/gocsv"

	"github.com/Carmen-Shannon/oxy-rts/engine/game_object"
	"github.com/Carmen-Shannon/oxy-rts/engine/rig"
)

func samplesAlongX(xs ...float32) []Sample {
	out := make([]Sample, len(xs))
	for i, x := range xs {
		out[i] = Sample{Tick: i, Elapsed: float32(i) * 0.02, RigX: x, Height: 50}
	}
	return out
}

func TestRecorder_WritesBatchesInOrder(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf, WithBatchSize(2))

	for _, s := range samplesAlongX(0, 1, 2, 3, 4) {
		rec.Record(s)
	}
	if err := rec.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if n := strings.Count(buf.String(), "tick,elapsed"); n != 1 {
		t.Errorf("header written %d times, want 1", n)
	}

	var got []Sample
	if err := gocsv.UnmarshalBytes(buf.Bytes(), &got); err != nil {
		t.Fatalf("reading back CSV: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("rows = %d, want 5", len(got))
	}
	for i, s := range got {
		if s.Tick != i || s.RigX != float32(i) {
			t.Errorf("row %d = %+v out of order", i, s)
		}
	}
}

func TestRecorder_MemoryOnly(t *testing.T) {
	rec := NewRecorder(nil)
	for _, s := range samplesAlongX(0, 1) {
		rec.Record(s)
	}

	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := len(rec.Samples()); got != 2 {
		t.Errorf("samples = %d, want 2", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRecorder_ReportsWriteErrors(t *testing.T) {
	rec := NewRecorder(failingWriter{}, WithBatchSize(1))
	rec.Record(Sample{Tick: 1})

	err := rec.Flush()
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("err = %v, want the write failure", err)
	}
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	rec, err := Create(path, WithBatchSize(64))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, s := range samplesAlongX(0, 0.5, 1) {
		rec.Record(s)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(strings.TrimSpace(string(data)), "\n"); lines != 3 {
		t.Errorf("file has %d data lines, want 3:\n%s", lines, data)
	}
}

func TestSummarize(t *testing.T) {
	samples := samplesAlongX(0, 1, 2, 4)
	samples[3].TargetX, samples[3].TargetZ = 7, 4
	samples[3].RigZ = 0

	s := Summarize(samples)

	if s.Ticks != 4 {
		t.Errorf("ticks = %d, want 4", s.Ticks)
	}
	if math.Abs(s.MeanStep-4.0/3) > 1e-9 {
		t.Errorf("mean = %v, want 4/3", s.MeanStep)
	}
	if s.MaxStep != 2 {
		t.Errorf("max = %v, want 2", s.MaxStep)
	}
	if math.Abs(s.StdDevStep-math.Sqrt(1.0/3)) > 1e-9 {
		t.Errorf("stddev = %v, want sqrt(1/3)", s.StdDevStep)
	}
	if math.Abs(s.FinalDistance-5) > 1e-6 {
		t.Errorf("final distance = %v, want 5", s.FinalDistance)
	}
}

func TestSummarize_Short(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("empty summary = %+v", s)
	}
	if s := Summarize(samplesAlongX(3)); s.Ticks != 1 || s.MeanStep != 0 {
		t.Errorf("single-sample summary = %+v", s)
	}
}

func TestSampleOf(t *testing.T) {
	rigNode := game_object.NewGameObject(
		game_object.WithPosition(1, 20, -2),
		game_object.WithRotation(0, 90, 0),
	)
	camNode := game_object.NewGameObject(
		game_object.WithPosition(0, 60, 0),
		game_object.WithRotation(300, 0, 0),
	)
	targets := rig.TargetState{
		Position:        mgl32.Vec3{5, 20, 5},
		Zoom:            mgl32.Vec3{0, 40, 0},
		HorizontalAngle: 120,
		VerticalAngle:   290,
	}

	s := SampleOf(7, 0.14, rigNode, camNode, targets)

	if s.Tick != 7 || s.RigX != 1 || s.RigZ != -2 || s.Height != 60 {
		t.Errorf("unexpected sample %+v", s)
	}
	if !mgl32.FloatEqualThreshold(s.Yaw, 90, 1e-3) || !mgl32.FloatEqualThreshold(s.Pitch, 300, 1e-3) {
		t.Errorf("yaw/pitch = %v/%v, want 90/300", s.Yaw, s.Pitch)
	}
	if s.TargetZoom != 40 || s.TargetYaw != 120 || s.TargetPitch != 290 {
		t.Errorf("targets not captured: %+v", s)
	}
}
