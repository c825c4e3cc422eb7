package worldgen

import "fmt"

// ConfigError reports an invalid configuration field. Validation runs before
// any generation work, so a ConfigError means nothing was generated.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("worldgen: config %s=%v: %s", e.Field, e.Value, e.Reason)
}

// ConvergenceError reports that island shaping exhausted its attempts without
// landing in the configured area band. It carries the inputs needed to
// reproduce the failure; callers should treat it like a configuration error.
type ConvergenceError struct {
	Stage    string
	Seed     int64
	Attempts int
	Cutoff   float64
	Area     float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("worldgen: %s did not converge after %d attempts (seed %d, last cutoff %.4f, last area %.4f)",
		e.Stage, e.Attempts, e.Seed, e.Cutoff, e.Area)
}
