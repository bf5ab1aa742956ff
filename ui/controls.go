package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/particleflow/game"
)

const (
	buttonWidth  = 110
	buttonHeight = 26
)

// ControlsPanel renders clickable equivalents of the keyboard commands.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(r *Renderer, x, y int32) *ControlsPanel {
	return &ControlsPanel{renderer: r, x: x, y: y}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and posts a command for every pressed button.
func (c *ControlsPanel) Draw(sink game.CommandSink, depth3D bool) {
	if !c.visible {
		return
	}

	r := c.renderer
	padding := r.Theme.Padding
	buttons := []struct {
		label string
		cmd   game.Command
	}{
		{"Next Stage", game.NextStage()},
		{"Reset", game.Reset()},
		{toggleText(depth3D, "3D: ON", "3D: OFF"), game.Toggle3D()},
		{"Clear Trails", game.ClearTrails()},
		{"Reload Image", game.Reload("")},
	}

	height := int32(len(buttons))*(buttonHeight+6) + padding*2 + r.Theme.LineHeight
	r.DrawPanel(c.x, c.y, buttonWidth+padding*2, height)

	y := r.DrawSectionHeader(c.x+padding, c.y+padding, "Controls")
	for _, b := range buttons {
		rect := rl.Rectangle{X: float32(c.x + padding), Y: float32(y), Width: buttonWidth, Height: buttonHeight}
		if gui.Button(rect, b.label) {
			sink.Enqueue(b.cmd)
		}
		y += buttonHeight + 6
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
