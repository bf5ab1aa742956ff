package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the given theme.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{Theme: theme}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.Accent)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a labelled percentage bar for values in [0, 100].
func (r *Renderer) DrawBar(x, y int32, label string, pct float64, width int32) int32 {
	pct = max(0, min(100, pct))

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float64(barWidth)*pct/100), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf("%.1f%%", pct), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight
}

// DrawBoxedText draws text with a translucent background and accent border,
// anchored at its bottom-left corner.
func (r *Renderer) DrawBoxedText(text string, x, bottom, fontSize int32) {
	w := rl.MeasureText(text, fontSize)
	bg := rl.Rectangle{
		X:      float32(x - 10),
		Y:      float32(bottom - fontSize - 5),
		Width:  float32(w + 20),
		Height: float32(fontSize + 10),
	}
	rl.DrawRectangleRec(bg, r.Theme.PanelBg)
	rl.DrawRectangleLinesEx(bg, 2, r.Theme.Accent)
	rl.DrawText(text, x, bottom-fontSize, fontSize, r.Theme.Accent)
}

// DrawCenteredText draws text centred horizontally at y with the given opacity.
func (r *Renderer) DrawCenteredText(text string, screenWidth, y, fontSize int32, alpha float32) {
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, (screenWidth-w)/2, y, fontSize, rl.Fade(r.Theme.Accent, alpha))
}
