package ui

import (
	"image"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particleflow/camera"
	"github.com/pthm-cable/particleflow/config"
	"github.com/pthm-cable/particleflow/game"
	"github.com/pthm-cable/particleflow/telemetry"
)

// Controller is the simulation side the window talks to.
type Controller interface {
	game.CommandSink
	PerfStats() telemetry.PerfStats
}

// Window presents frames in a resizable raylib window and feeds keyboard,
// button, drop and resize events back as commands.
type Window struct {
	sink     Controller
	hud      *HUD
	controls *ControlsPanel
	perf     *PerfPanel
	showPerf bool
	camera   *camera.Camera

	// Last image fit the window was sized for
	fitGeneration int

	texture    rl.Texture2D
	texW, texH int
	pixels     []color.RGBA
}

// NewWindow opens a width x height window. Must be called from the
// goroutine that will call Present.
func NewWindow(cfg *config.Config, sink Controller, width, height int) *Window {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(width), int32(height), "Particle Flow")
	rl.SetWindowMinSize(cfg.Screen.MinWidth, cfg.Screen.MinHeight)
	rl.SetWindowMaxSize(cfg.Screen.MaxWidth, cfg.Screen.MaxHeight)
	rl.SetExitKey(rl.KeyNull)

	r := NewRenderer(DefaultTheme(cfg))
	return &Window{
		sink:     sink,
		hud:      NewHUD(r, cfg.HUD.CompactBelow),
		controls: NewControlsPanel(r, 10, 10),
		perf:     NewPerfPanel(r, 10, 10, 260),
		camera:   camera.New(float32(width), float32(height)),
	}
}

// Present uploads frame to the GPU, draws it with the HUD overlay and
// processes input.
func (w *Window) Present(frame *image.RGBA, status game.Status) error {
	fw, fh := frame.Bounds().Dx(), frame.Bounds().Dy()
	w.ensureTexture(fw, fh)
	if status.FitGeneration != w.fitGeneration {
		w.fitGeneration = status.FitGeneration
		rl.SetWindowSize(fw, fh)
		w.camera.Reset()
	}
	w.camera.Resize(float32(fw), float32(fh))

	for i := range w.pixels {
		o := i * 4
		w.pixels[i] = color.RGBA{R: frame.Pix[o], G: frame.Pix[o+1], B: frame.Pix[o+2], A: 255}
	}
	rl.UpdateTexture(w.texture, w.pixels)

	screenW, screenH := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	if w.camera.Zoomed() {
		x, y, cw, ch := w.camera.SourceRect()
		src := rl.Rectangle{X: x, Y: y, Width: cw, Height: ch}
		dst := rl.Rectangle{Width: float32(fw), Height: float32(fh)}
		rl.DrawTexturePro(w.texture, src, dst, rl.Vector2{}, 0, rl.White)
	} else {
		rl.DrawTexture(w.texture, 0, 0, rl.White)
	}

	w.hud.Draw(status, screenW, screenH)
	w.controls.Draw(w.sink, status.Depth3D)
	if w.showPerf {
		w.perf.SetPosition(screenW-270, 10)
		w.perf.Draw(w.sink.PerfStats())
	}
	rl.EndDrawing()

	w.handleInput()
	return nil
}

// ensureTexture recreates the frame texture when the viewport size changes.
func (w *Window) ensureTexture(width, height int) {
	if w.texW == width && w.texH == height && w.texture.ID != 0 {
		return
	}
	if w.texture.ID != 0 {
		rl.UnloadTexture(w.texture)
	}

	img := rl.GenImageColor(width, height, rl.Black)
	w.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureWrap(w.texture, rl.WrapRepeat)

	w.texW, w.texH = width, height
	w.pixels = make([]color.RGBA, width*height)
}

// Close releases the texture and closes the window.
func (w *Window) Close() {
	if w.texture.ID != 0 {
		rl.UnloadTexture(w.texture)
	}
	rl.CloseWindow()
}
