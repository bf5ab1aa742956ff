// Package term presents the particle flow simulation in a terminal using
// half-block cells.
package term

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/particleflow/config"
	"github.com/pthm-cable/particleflow/game"
)

// Approximate pixel size of one terminal cell, used to give the viewport
// the terminal's physical aspect ratio.
const (
	cellWidth  = 8
	cellHeight = 16
)

// upperHalf draws the top pixel as foreground and the bottom as background.
const upperHalf = '▀'

// Presenter draws frames to a tcell screen. The bottom row holds the status
// line; every other cell shows two vertically stacked pixels.
type Presenter struct {
	screen tcell.Screen
	sink   game.CommandSink
	accent color.RGBA

	// FitViewport resizes the simulation viewport to the terminal aspect
	// whenever the terminal is resized.
	FitViewport bool
}

// New creates a presenter on an initialised screen.
func New(screen tcell.Screen, cfg *config.Config, sink game.CommandSink) *Presenter {
	hud := cfg.Render.HUD
	return &Presenter{
		screen:      screen,
		sink:        sink,
		accent:      color.RGBA{R: hud[0], G: hud[1], B: hud[2], A: 255},
		FitViewport: true,
	}
}

// ViewportFor returns the viewport size matching a cols x rows terminal.
func ViewportFor(cols, rows int) (int, int) {
	return cols * cellWidth, max(rows-1, 1) * cellHeight
}

// Start polls terminal events on a new goroutine until the screen is
// finalised.
func (p *Presenter) Start() {
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			p.HandleEvent(ev)
		}
	}()
}

// HandleEvent translates a terminal event into simulation commands.
func (p *Presenter) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if cmd, ok := commandForKey(ev.Key(), ev.Rune()); ok {
			p.sink.Enqueue(cmd)
		}
	case *tcell.EventResize:
		p.screen.Sync()
		if p.FitViewport {
			cols, rows := ev.Size()
			w, h := ViewportFor(cols, rows)
			slog.Debug("terminal resized", "cols", cols, "rows", rows)
			p.sink.Enqueue(game.Resize(w, h))
		}
	}
}

// commandForKey maps a key press to a command.
func commandForKey(key tcell.Key, r rune) (game.Command, bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.Exit(), true
	case tcell.KeyRune:
	default:
		return game.Command{}, false
	}

	switch r {
	case ' ':
		return game.NextStage(), true
	case 'r', 'R':
		return game.Reset(), true
	case 'l', 'L':
		return game.Reload(""), true
	case '3':
		return game.Toggle3D(), true
	case 'c', 'C':
		return game.ClearTrails(), true
	case 'q', 'Q':
		return game.Exit(), true
	}
	return game.Command{}, false
}

// Present draws frame scaled to the terminal with the status line below.
func (p *Presenter) Present(frame *image.RGBA, status game.Status) error {
	cols, rows := p.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}

	imageRows := rows - 1
	b := frame.Bounds()
	if imageRows > 0 && !b.Empty() {
		pixRows := imageRows * 2
		for cy := 0; cy < imageRows; cy++ {
			top := b.Min.Y + (cy*2)*b.Dy()/pixRows
			bottom := b.Min.Y + (cy*2+1)*b.Dy()/pixRows
			for cx := 0; cx < cols; cx++ {
				x := b.Min.X + cx*b.Dx()/cols
				style := tcell.StyleDefault.
					Foreground(toColor(frame.RGBAAt(x, top))).
					Background(toColor(frame.RGBAAt(x, bottom)))
				p.screen.SetContent(cx, cy, upperHalf, nil, style)
			}
		}
	}

	if status.BannerAlpha > 0 && status.Banner != "" && imageRows > 2 {
		fg := fade(p.accent, status.BannerAlpha)
		x := max(0, (cols-len(status.Banner))/2)
		p.drawText(x, imageRows/4, status.Banner, tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack).Bold(true))
	}

	statusStyle := tcell.StyleDefault.Foreground(toColor(p.accent)).Background(tcell.ColorBlack)
	for x := 0; x < cols; x++ {
		p.screen.SetContent(x, rows-1, ' ', nil, statusStyle)
	}
	p.drawText(0, rows-1, status.Text, statusStyle)

	p.screen.Show()
	return nil
}

func (p *Presenter) drawText(x, y int, text string, style tcell.Style) {
	cols, _ := p.screen.Size()
	for _, r := range text {
		if x >= cols {
			return
		}
		p.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// fade scales c towards black by alpha.
func fade(c color.RGBA, alpha float32) tcell.Color {
	a := max(0, min(1, alpha))
	return tcell.NewRGBColor(
		int32(float32(c.R)*a),
		int32(float32(c.G)*a),
		int32(float32(c.B)*a),
	)
}
