package stress

import (
	"sync"
	"time"

	"github.com/a-peyrard/convec/fn"
	"github.com/a-peyrard/convec/heap"
)

// WorkerTiming is the time one worker spent in a scenario phase.
type WorkerTiming struct {
	Scenario string
	Phase    string
	Round    int
	Worker   int
	Elapsed  time.Duration
}

// Recorder keeps the slowest worker timings seen during a run.
type Recorder struct {
	mu      sync.Mutex
	round   int
	slowest *heap.PriorityQueue[WorkerTiming]
}

// NewRecorder creates a recorder keeping the limit slowest timings. A limit lower than 1
// records nothing.
func NewRecorder(limit int) *Recorder {
	rec := &Recorder{}
	if limit > 0 {
		rec.slowest = heap.NewBounded(
			fn.CompareBy(func(w WorkerTiming) time.Duration { return w.Elapsed }),
			limit,
		)
	}
	return rec
}

func (r *Recorder) startRound(round int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.round = round
}

// Record keeps the timing if it is among the slowest seen so far.
func (r *Recorder) Record(scenario, phase string, worker int, elapsed time.Duration) {
	if r.slowest == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slowest.Push(WorkerTiming{
		Scenario: scenario,
		Phase:    phase,
		Round:    r.round,
		Worker:   worker,
		Elapsed:  elapsed,
	})
}

// Slowest returns the recorded timings, slowest first, and resets the recorder.
func (r *Recorder) Slowest() []WorkerTiming {
	if r.slowest == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slowest.DrainDescending()
}
