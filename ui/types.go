// Package ui presents the particle flow simulation in a raylib window.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particleflow/config"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	Accent         rl.Color // HUD text and borders
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the UI theme with the accent colour taken from cfg.
func DefaultTheme(cfg *config.Config) Theme {
	hud := cfg.Render.HUD
	return Theme{
		PanelBg:        rl.Color{R: 0, G: 0, B: 0, A: 180},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		Accent:         rl.Color{R: hud[0], G: hud[1], B: hud[2], A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: hud[0], G: hud[1], B: hud[2], A: 200},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
