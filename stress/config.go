package stress

import (
	"fmt"
	"math"
)

const (
	AppendOnlyName = "append-only"
	StackName      = "stack"
	StackMixedName = "stack-mixed"
)

// Config drives a stress run. Loaded from CONVEC_STRESS_* environment variables by the CLI.
type Config struct {
	// Elements pushed by the append only scenario.
	Elements int
	// Workers is the number of goroutines per scenario.
	Workers int
	// StackElements pushed then popped by the stack scenarios.
	StackElements int
	Rounds        int
	// OpsPerSecond throttles each worker, 0 means unlimited.
	OpsPerSecond int
	// ReportSlowest is the number of slowest workers kept in the report.
	ReportSlowest int
	// Scenarios to run, all of them when empty.
	Scenarios []string
}

func (c *Config) ApplyDefault() {
	if c.Elements == 0 {
		c.Elements = 1_000_000
	}
	if c.Workers == 0 {
		c.Workers = 16
	}
	if c.StackElements == 0 {
		c.StackElements = 100_000
	}
	if c.Rounds == 0 {
		c.Rounds = 1
	}
	if c.ReportSlowest == 0 {
		c.ReportSlowest = 3
	}
	if len(c.Scenarios) == 0 {
		c.Scenarios = []string{AppendOnlyName, StackName, StackMixedName}
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Elements < 0 || int64(c.Elements) > math.MaxUint32:
		return fmt.Errorf("elements must be between 0 and %d, got %d", uint32(math.MaxUint32), c.Elements)
	case c.StackElements < 0 || int64(c.StackElements) > math.MaxUint32:
		return fmt.Errorf("stack elements must be between 0 and %d, got %d", uint32(math.MaxUint32), c.StackElements)
	case c.Workers <= 0:
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	case c.Rounds <= 0:
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	case c.OpsPerSecond < 0:
		return fmt.Errorf("ops per second must not be negative, got %d", c.OpsPerSecond)
	}
	for _, name := range c.Scenarios {
		if name != AppendOnlyName && name != StackName && name != StackMixedName {
			return fmt.Errorf("unknown scenario %q", name)
		}
	}
	return nil
}
