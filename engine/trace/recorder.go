package trace

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/gocarina/gocsv"
)

type recorderImpl struct {
	mu      *sync.Mutex // guards pending, queue, samples, err, taskID
	writeMu *sync.Mutex // serializes CSV writes

	out       io.Writer
	closer    io.Closer
	batchSize int
	logger    *slog.Logger
	pool      worker.DynamicWorkerPool
	wg        sync.WaitGroup

	pending       []Sample
	queue         [][]Sample
	samples       []Sample
	headerWritten bool
	taskID        int
	err           error
}

// Recorder buffers samples from the tick goroutine and writes them as CSV in batches on a
// background worker, so the tick loop never blocks on I/O. Every recorded sample is also kept
// in memory for Summary.
type Recorder interface {
	// Record appends a sample. A full batch is handed to the background writer.
	//
	// Parameters:
	//   - s: the sample to record
	Record(s Sample)

	// Flush hands any partial batch to the writer and waits for all writes to finish.
	//
	// Returns:
	//   - error: the first write error seen so far, if any
	Flush() error

	// Close flushes and closes the underlying file when the recorder owns it.
	//
	// Returns:
	//   - error: the first write or close error
	Close() error

	// Samples returns a copy of every sample recorded so far.
	//
	// Returns:
	//   - []Sample: the samples in tick order
	Samples() []Sample

	// Summary summarizes the samples recorded so far.
	//
	// Returns:
	//   - Summary: displacement statistics
	Summary() Summary
}

var _ Recorder = &recorderImpl{}

// NewRecorder creates a Recorder writing CSV to out. A nil out keeps samples in memory only.
//
// Parameters:
//   - out: destination of the CSV, or nil
//   - options: functional options to configure the recorder
//
// Returns:
//   - Recorder: the newly created recorder
func NewRecorder(out io.Writer, options ...RecorderBuilderOption) Recorder {
	r := &recorderImpl{
		mu:        &sync.Mutex{},
		writeMu:   &sync.Mutex{},
		out:       out,
		batchSize: 256,
	}
	for _, option := range options {
		option(r)
	}
	if r.batchSize < 1 {
		r.batchSize = 1
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if out != nil {
		r.pool = worker.NewDynamicWorkerPool(1, 256, 1*time.Second)
	}
	return r
}

// Create opens (truncating) a CSV file at path and returns a Recorder that owns it.
//
// Parameters:
//   - path: the CSV file to write
//   - options: functional options to configure the recorder
//
// Returns:
//   - Recorder: the newly created recorder
//   - error: if the file cannot be created
func Create(path string, options ...RecorderBuilderOption) (Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace file: %w", err)
	}
	r := NewRecorder(f, options...).(*recorderImpl)
	r.closer = f
	return r, nil
}

func (r *recorderImpl) Record(s Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.samples = append(r.samples, s)
	if r.out == nil {
		return
	}
	r.pending = append(r.pending, s)
	if len(r.pending) >= r.batchSize {
		r.enqueue()
	}
}

// enqueue moves the pending batch to the write queue and schedules a drain.
// Caller must hold r.mu.
func (r *recorderImpl) enqueue() {
	if len(r.pending) == 0 {
		return
	}
	r.queue = append(r.queue, r.pending)
	r.pending = make([]Sample, 0, r.batchSize)

	r.wg.Add(1)
	id := r.taskID
	r.taskID++
	r.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer r.wg.Done()
			return nil, r.drain()
		},
	})
}

// drain writes every queued batch in order. Any drain writes all batches queued before it
// started, so batch order survives whichever worker runs it.
func (r *recorderImpl) drain() error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.Lock()
	batches := r.queue
	r.queue = nil
	r.mu.Unlock()

	for _, batch := range batches {
		var err error
		if !r.headerWritten {
			err = gocsv.Marshal(batch, r.out)
			r.headerWritten = err == nil
		} else {
			err = gocsv.MarshalWithoutHeaders(batch, r.out)
		}
		if err != nil {
			r.logger.Error("writing trace batch", "samples", len(batch), "error", err)
			r.mu.Lock()
			if r.err == nil {
				r.err = fmt.Errorf("writing trace batch: %w", err)
			}
			r.mu.Unlock()
			return err
		}
	}
	return nil
}

func (r *recorderImpl) Flush() error {
	r.mu.Lock()
	if r.out != nil {
		r.enqueue()
	}
	r.mu.Unlock()

	r.wg.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *recorderImpl) Close() error {
	err := r.Flush()
	if r.closer != nil {
		if cerr := r.closer.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing trace file: %w", cerr))
		}
		r.closer = nil
	}
	return err
}

func (r *recorderImpl) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sample(nil), r.samples...)
}

func (r *recorderImpl) Summary() Summary {
	return Summarize(r.Samples())
}
