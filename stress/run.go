// Package stress exercises the concurrent containers under load and verifies the
// properties they promise: unique indices, no lost or duplicated writes, LIFO draining.
package stress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/a-peyrard/convec/slices"
	"github.com/rs/zerolog"
)

type (
	// Result is the outcome of one scenario run.
	Result struct {
		Scenario string
		Round    int
		Elapsed  time.Duration
		Err      error
	}

	// Report gathers the results of a stress run.
	Report struct {
		Results []Result
		Slowest []WorkerTiming
	}
)

// Failed returns the results holding an error.
func (r *Report) Failed() []Result {
	return slices.Filter(r.Results, func(res Result) bool {
		return res.Err != nil
	})
}

// Log writes a summary of the report.
func (r *Report) Log(logger *zerolog.Logger) {
	failed := r.Failed()
	event := logger.Info()
	if len(failed) > 0 {
		event = logger.Error()
	}
	event.
		Int("scenarios", len(r.Results)).
		Int("failed", len(failed)).
		Strs("failures", slices.Map(failed, func(res Result) string {
			return fmt.Sprintf("%s#%d", res.Scenario, res.Round)
		})).
		Msg("stress run finished")

	for rank, timing := range r.Slowest {
		logger.Info().
			Int("rank", rank+1).
			Str("scenario", timing.Scenario).
			Str("phase", timing.Phase).
			Int("round", timing.Round).
			Int("worker", timing.Worker).
			Dur("elapsed", timing.Elapsed).
			Msg("slow worker")
	}
}

// Scenarios builds the scenarios selected by cfg, in configuration order.
func Scenarios(cfg *Config, logger *zerolog.Logger) []Scenario {
	b := base{
		workers:      cfg.Workers,
		opsPerSecond: cfg.OpsPerSecond,
		logger:       logger,
	}

	scenarios := make([]Scenario, 0, len(cfg.Scenarios))
	for _, name := range cfg.Scenarios {
		switch name {
		case AppendOnlyName:
			scenarios = append(scenarios, &AppendOnlyScenario{base: b, elements: cfg.Elements})
		case StackName:
			scenarios = append(scenarios, &StackScenario{base: b, elements: cfg.StackElements})
		case StackMixedName:
			scenarios = append(scenarios, &StackMixedScenario{base: b, elements: cfg.StackElements})
		}
	}
	return scenarios
}

// Run executes every selected scenario cfg.Rounds times, one scenario at a time.
// The returned error joins every scenario failure; the report is returned either way.
func Run(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stress config: %w", err)
	}

	scenarios := Scenarios(cfg, logger)
	rec := NewRecorder(cfg.ReportSlowest)
	report := &Report{}
	var errs []error

	for round := 1; round <= cfg.Rounds; round++ {
		rec.startRound(round)
		for _, scenario := range scenarios {
			if err := ctx.Err(); err != nil {
				report.Slowest = rec.Slowest()
				return report, errors.Join(append(errs, err)...)
			}

			scenarioLogger := logger.With().
				Str("scenario", scenario.Name()).
				Int("round", round).
				Logger()
			scenarioLogger.Debug().Msg("scenario started")

			start := time.Now()
			err := scenario.Run(ctx, rec)
			result := Result{
				Scenario: scenario.Name(),
				Round:    round,
				Elapsed:  time.Since(start),
				Err:      err,
			}
			report.Results = append(report.Results, result)

			if err != nil {
				scenarioLogger.Error().Err(err).Dur("elapsed", result.Elapsed).Msg("scenario failed")
				errs = append(errs, fmt.Errorf("round %d: %w", round, err))
				continue
			}
			scenarioLogger.Info().Dur("elapsed", result.Elapsed).Msg("scenario passed")
		}
	}

	report.Slowest = rec.Slowest()
	return report, errors.Join(errs...)
}
