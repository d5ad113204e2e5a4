package stress

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/a-peyrard/convec"
	"github.com/a-peyrard/convec/concurrent"
	"github.com/a-peyrard/convec/runner"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// ErrVerification is wrapped by every error reporting a broken container property.
var ErrVerification = errors.New("verification failed")

// checkEvery is how many operations an unthrottled worker does between context checks.
const checkEvery = 1024

// Scenario is one stress exercise of a container.
type Scenario interface {
	Name() string
	Run(ctx context.Context, rec *Recorder) error
}

type base struct {
	workers      int
	opsPerSecond int
	logger       *zerolog.Logger
}

// pacer throttles one worker, or only watches the context when unthrottled.
type pacer struct {
	limiter *rate.Limiter
	ops     int
}

func (b base) newPacer() *pacer {
	if b.opsPerSecond <= 0 {
		return &pacer{}
	}
	return &pacer{limiter: rate.NewLimiter(rate.Limit(b.opsPerSecond), b.opsPerSecond)}
}

func (p *pacer) wait(ctx context.Context) error {
	if p.limiter != nil {
		return p.limiter.Wait(ctx)
	}
	p.ops++
	if p.ops%checkEvery == 0 {
		return ctx.Err()
	}
	return nil
}

// partition calls do with every value of [0, n) assigned to worker w.
func (b base) partition(ctx context.Context, w, n int, do func(i int)) error {
	p := b.newPacer()
	for i := w; i < n; i += b.workers {
		if err := p.wait(ctx); err != nil {
			return err
		}
		do(i)
	}
	return nil
}

// phase runs fn on every worker concurrently, recording each worker's time.
func (b base) phase(ctx context.Context, rec *Recorder, scenario, name string, fn func(ctx context.Context, w int) error) error {
	workers := make([]runner.Runnable, b.workers)
	for w := range workers {
		workers[w] = runner.RunnableFunc(func(ctx context.Context) error {
			start := time.Now()
			if err := fn(ctx, w); err != nil {
				return err
			}
			rec.Record(scenario, name, w, time.Since(start))
			return nil
		})
	}
	if err := runner.RunAll(ctx, workers...); err != nil {
		return fmt.Errorf("%s %s phase: %w", scenario, name, err)
	}
	return nil
}

// AppendOnlyScenario has every worker push a disjoint share of [0, elements) to one
// AppendOnly, then checks that indices and values both cover [0, elements) exactly.
type AppendOnlyScenario struct {
	base
	elements int
}

func (s *AppendOnlyScenario) Name() string { return AppendOnlyName }

func (s *AppendOnlyScenario) Run(ctx context.Context, rec *Recorder) error {
	vec := convec.NewAppendOnly[int](concurrent.WithLogger(s.logger))

	var mu sync.Mutex
	indices := roaring.New()

	err := s.phase(ctx, rec, s.Name(), "push", func(ctx context.Context, w int) error {
		local := roaring.New()
		err := s.partition(ctx, w, s.elements, func(i int) {
			local.Add(uint32(vec.Push(i)))
		})
		mu.Lock()
		indices.Or(local)
		mu.Unlock()
		return err
	})
	if err != nil {
		return err
	}

	if err := expectRange(s.Name(), "assigned indices", indices, s.elements); err != nil {
		return err
	}
	if vec.Len() != s.elements {
		return fmt.Errorf("%w: %s: len is %d, expected %d", ErrVerification, s.Name(), vec.Len(), s.elements)
	}

	byIndex, byGet, byGetUnchecked := roaring.New(), roaring.New(), roaring.New()
	for i := 0; i < s.elements; i++ {
		byIndex.Add(uint32(vec.At(i)))
		elem, ok := vec.Get(i)
		if !ok {
			return fmt.Errorf("%w: %s: index %d not readable", ErrVerification, s.Name(), i)
		}
		byGet.Add(uint32(*elem))
		byGetUnchecked.Add(uint32(*vec.GetUnchecked(i)))
	}

	return errors.Join(
		expectRange(s.Name(), "values read with At", byIndex, s.elements),
		expectRange(s.Name(), "values read with Get", byGet, s.elements),
		expectRange(s.Name(), "values read with GetUnchecked", byGetUnchecked, s.elements),
	)
}

// StackScenario pushes a disjoint share of [0, elements) from every worker, then pops
// everything back from every worker, and checks that each value came out exactly once.
type StackScenario struct {
	base
	elements int
}

func (s *StackScenario) Name() string { return StackName }

func (s *StackScenario) Run(ctx context.Context, rec *Recorder) error {
	stack := convec.NewStack[int](concurrent.WithLogger(s.logger))

	err := s.phase(ctx, rec, s.Name(), "push", func(ctx context.Context, w int) error {
		return s.partition(ctx, w, s.elements, func(i int) {
			stack.Push(i)
		})
	})
	if err != nil {
		return err
	}
	if stack.Len() != s.elements {
		return fmt.Errorf("%w: %s: len is %d after pushes, expected %d", ErrVerification, s.Name(), stack.Len(), s.elements)
	}

	var mu sync.Mutex
	popped := roaring.New()
	var missed []int

	err = s.phase(ctx, rec, s.Name(), "pop", func(ctx context.Context, w int) error {
		local := roaring.New()
		misses := 0
		err := s.partition(ctx, w, s.elements, func(int) {
			if value, ok := stack.Pop(); ok {
				local.Add(uint32(value))
			} else {
				misses++
			}
		})
		mu.Lock()
		popped.Or(local)
		if misses > 0 {
			missed = append(missed, misses)
		}
		mu.Unlock()
		return err
	})
	if err != nil {
		return err
	}

	if len(missed) > 0 {
		return fmt.Errorf("%w: %s: %d workers popped from an empty stack", ErrVerification, s.Name(), len(missed))
	}
	return errors.Join(
		expectRange(s.Name(), "popped values", popped, s.elements),
		expectDrained(s.Name(), stack),
	)
}

// StackMixedScenario has every worker alternate push and pop on one stack, so pushes and
// pops of different workers interleave. The stack must end empty.
type StackMixedScenario struct {
	base
	elements int
}

func (s *StackMixedScenario) Name() string { return StackMixedName }

func (s *StackMixedScenario) Run(ctx context.Context, rec *Recorder) error {
	stack := convec.NewStack[int](concurrent.WithLogger(s.logger))

	var mu sync.Mutex
	failures := 0

	err := s.phase(ctx, rec, s.Name(), "push-pop", func(ctx context.Context, w int) error {
		misses := 0
		err := s.partition(ctx, w, s.elements, func(i int) {
			stack.Push(i)
			if _, ok := stack.Pop(); !ok {
				misses++
			}
		})
		mu.Lock()
		failures += misses
		mu.Unlock()
		return err
	})
	if err != nil {
		return err
	}

	if failures > 0 {
		return fmt.Errorf("%w: %s: %d pops found the stack empty right after a push", ErrVerification, s.Name(), failures)
	}
	return expectDrained(s.Name(), stack)
}

func expectRange(scenario, what string, bitmap *roaring.Bitmap, n int) error {
	expected := roaring.New()
	expected.AddRange(0, uint64(n))
	if !bitmap.Equals(expected) {
		return fmt.Errorf(
			"%w: %s: %s hold %d distinct values, expected exactly [0, %d)",
			ErrVerification, scenario, what, bitmap.GetCardinality(), n,
		)
	}
	return nil
}

func expectDrained(scenario string, stack *convec.Stack[int]) error {
	if stack.Len() != 0 {
		return fmt.Errorf("%w: %s: len is %d once drained", ErrVerification, scenario, stack.Len())
	}
	if value, ok := stack.Pop(); ok {
		return fmt.Errorf("%w: %s: popped %d from a drained stack", ErrVerification, scenario, value)
	}
	return nil
}
