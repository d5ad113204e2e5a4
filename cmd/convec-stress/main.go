// Command convec-stress hammers the concurrent containers with many goroutines and checks
// that no write is lost or duplicated.
//
// It is configured through the environment:
//
//	CONVEC_STRESS_ELEMENTS        values pushed by the append only scenario (1000000)
//	CONVEC_STRESS_WORKERS         goroutines per scenario (16)
//	CONVEC_STRESS_STACK_ELEMENTS  values pushed and popped by the stack scenarios (100000)
//	CONVEC_STRESS_ROUNDS          number of rounds (1)
//	CONVEC_STRESS_OPS_PER_SECOND  per worker throttle, 0 for none (0)
//	CONVEC_STRESS_REPORT_SLOWEST  slowest workers to report (3)
//	CONVEC_STRESS_SCENARIOS       comma separated subset of append-only,stack,stack-mixed
//	CONVEC_STRESS_FILE            optional config file read before the environment
//	LOG_LEVEL                     zerolog level (info)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/a-peyrard/convec/config"
	"github.com/a-peyrard/convec/option"
	"github.com/a-peyrard/convec/stress"
	"github.com/rs/zerolog"
)

const envPrefix = "CONVEC_STRESS"

func newLogger() (*zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if levelFromEnv := os.Getenv("LOG_LEVEL"); levelFromEnv != "" {
		var err error
		level, err = zerolog.ParseLevel(strings.ToLower(levelFromEnv))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %s: %w", levelFromEnv, err)
		}
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return &logger, nil
}

func loadConfig() (*stress.Config, error) {
	opts := []option.Option[config.Options]{config.WithEnvPrefix(envPrefix)}
	if file := os.Getenv(envPrefix + "_FILE"); file != "" {
		opts = append(opts, config.WithFile(file))
	}
	return config.Load[stress.Config](opts...)
}

func run(ctx context.Context) int {
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return 2
	}

	cfg, err := loadConfig()
	if err != nil {
		logger.Error().Err(err).Msg("unable to load configuration")
		return 2
	}

	logger.Info().
		Int("elements", cfg.Elements).
		Int("stackElements", cfg.StackElements).
		Int("workers", cfg.Workers).
		Int("rounds", cfg.Rounds).
		Int("opsPerSecond", cfg.OpsPerSecond).
		Strs("scenarios", cfg.Scenarios).
		Msg("starting stress run")

	report, err := stress.Run(ctx, cfg, logger)
	if report != nil {
		report.Log(logger)
	}
	if err != nil {
		logger.Error().Err(err).Msg("stress run failed")
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}
