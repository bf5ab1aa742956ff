package ui

import (
	"fmt"

	"github.com/pthm-cable/particleflow/game"
	"github.com/pthm-cable/particleflow/telemetry"
)

// HUD renders the status line and the stage banner.
type HUD struct {
	renderer     *Renderer
	compactBelow int32
}

// NewHUD creates a new HUD renderer.
func NewHUD(r *Renderer, compactBelow int) *HUD {
	return &HUD{renderer: r, compactBelow: int32(compactBelow)}
}

// Draw renders the status line at the bottom left and, while it is
// fading, the stage banner near the top.
func (h *HUD) Draw(status game.Status, screenWidth, screenHeight int32) {
	fontSize := int32(24)
	if screenWidth < h.compactBelow {
		fontSize = 20
	}
	h.renderer.DrawBoxedText(status.Text, 10, screenHeight-5, fontSize)

	if status.BannerAlpha > 0 && status.Banner != "" {
		h.renderer.DrawCenteredText(status.Banner, screenWidth, screenHeight/6, 40, status.BannerAlpha)
	}
}

// PerfPanel renders the per-phase tick timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(r *Renderer, x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: r, x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	padding := r.Theme.Padding
	height := r.Theme.LineHeight*7 + padding*2

	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := r.DrawSectionHeader(x, p.y+padding, "Performance")
	y = r.DrawLabelValue(x, y, "tick", fmt.Sprintf("%dus (max %dus)", stats.AvgTickDuration.Microseconds(), stats.MaxTickDuration.Microseconds()))
	y = r.DrawLabelValue(x, y, "fps", fmt.Sprintf("%.0f", stats.FPS))

	inner := p.width - padding*2
	y = r.DrawBar(x, y, telemetry.PhaseParticles, stats.PhasePct[telemetry.PhaseParticles], inner)
	y = r.DrawBar(x, y, telemetry.PhaseTrails, stats.PhasePct[telemetry.PhaseTrails], inner)
	y = r.DrawBar(x, y, telemetry.PhaseRender, stats.PhasePct[telemetry.PhaseRender], inner)
	r.DrawBar(x, y, telemetry.PhaseCommands, stats.PhasePct[telemetry.PhaseCommands], inner)
}
