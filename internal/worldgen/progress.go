package worldgen

import (
	"log/slog"
	"time"
)

// Stage identifies one step of the generation pipeline, in execution order.
type Stage int

const (
	StageNoise Stage = iota
	StageIsland
	StageHeight
	StageRivers
	StageBiomes
	StageTopography

	stageCount
)

var stageNames = [...]string{
	StageNoise:      "noise",
	StageIsland:     "island",
	StageHeight:     "height",
	StageRivers:     "rivers",
	StageBiomes:     "biomes",
	StageTopography: "topography",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// Stages returns every pipeline stage in execution order.
func Stages() []Stage {
	out := make([]Stage, stageCount)
	for i := range out {
		out[i] = Stage(i)
	}
	return out
}

// Reporter receives stage lifecycle events while a world is generated.
type Reporter interface {
	StageStarted(s Stage)
	StageDone(s Stage, d time.Duration)
}

// NopReporter discards all events. Tests use it to keep output quiet.
type NopReporter struct{}

func (NopReporter) StageStarted(Stage)             {}
func (NopReporter) StageDone(Stage, time.Duration) {}

// SlogReporter logs stage events through a slog logger.
type SlogReporter struct {
	Log *slog.Logger
}

func (r SlogReporter) StageStarted(s Stage) {
	r.logger().Info("stage started", "stage", s.String())
}

func (r SlogReporter) StageDone(s Stage, d time.Duration) {
	r.logger().Info("stage done", "stage", s.String(), "elapsed", d.Round(time.Millisecond))
}

func (r SlogReporter) logger() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// Timings is a Reporter that records per-stage durations.
type Timings struct {
	elapsed [stageCount]time.Duration
}

func (t *Timings) StageStarted(Stage) {}

func (t *Timings) StageDone(s Stage, d time.Duration) {
	if int(s) < len(t.elapsed) {
		t.elapsed[s] = d
	}
}

// Elapsed returns the recorded duration for a stage.
func (t *Timings) Elapsed(s Stage) time.Duration {
	if int(s) >= len(t.elapsed) {
		return 0
	}
	return t.elapsed[s]
}

// Total sums all recorded stage durations.
func (t *Timings) Total() time.Duration {
	var sum time.Duration
	for _, d := range t.elapsed {
		sum += d
	}
	return sum
}

// MultiReporter fans events out to several reporters.
type MultiReporter []Reporter

func (m MultiReporter) StageStarted(s Stage) {
	for _, r := range m {
		r.StageStarted(s)
	}
}

func (m MultiReporter) StageDone(s Stage, d time.Duration) {
	for _, r := range m {
		r.StageDone(s, d)
	}
}

// timed runs one stage body, reporting its start and duration.
func timed(rep Reporter, s Stage, body func()) {
	rep.StageStarted(s)
	start := time.Now()
	body()
	rep.StageDone(s, time.Since(start))
}
