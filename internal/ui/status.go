// Package ui draws the viewer's HUD panel and the vector overlays layered on
// top of the base map.
package ui

import "time"

// Status is the world summary the HUD panel displays.
type Status struct {
	Seed          int64
	Width, Height int
	LandFraction  float64
	Islands       int
	Rivers        int
	ContourLevels int
	// Layer names the base map currently shown.
	Layer string
	// Stages lists per-stage generation timings in pipeline order.
	Stages []StageTime
	// Elapsed is the total generation time.
	Elapsed time.Duration
}

// StageTime is one pipeline stage's recorded duration.
type StageTime struct {
	Name    string
	Elapsed time.Duration
}
