//go:build !ebiten

package ui

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns an inert HUD in the headless build.
func NewHUD(int) *HUD { return &HUD{} }

// Width reports zero width in the headless build.
func (h *HUD) Width() int { return 0 }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(screen any, st Status, offsetX, height int) {}
