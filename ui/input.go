package ui

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particleflow/game"
)

// keyBindings maps keys to simulation commands.
var keyBindings = []struct {
	key int32
	cmd func() game.Command
}{
	{rl.KeySpace, game.NextStage},
	{rl.KeyR, game.Reset},
	{rl.KeyL, func() game.Command { return game.Reload("") }},
	{rl.KeyThree, game.Toggle3D},
	{rl.KeyC, game.ClearTrails},
	{rl.KeyEscape, game.Exit},
}

// handleInput translates window events into commands and local UI toggles.
func (w *Window) handleInput() {
	if rl.WindowShouldClose() {
		w.sink.Enqueue(game.Exit())
		return
	}

	for _, b := range keyBindings {
		if rl.IsKeyPressed(b.key) {
			w.sink.Enqueue(b.cmd())
		}
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		w.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		w.showPerf = !w.showPerf
	}

	if rl.IsFileDropped() {
		files := rl.LoadDroppedFiles()
		if len(files) > 0 {
			slog.Info("file dropped", "path", files[0], "count", len(files))
			w.sink.Enqueue(game.Reload(files[0]))
		}
		rl.UnloadDroppedFiles()
	}

	w.handleCameraInput()

	if rl.IsWindowResized() {
		w.sink.Enqueue(game.Resize(rl.GetScreenWidth(), rl.GetScreenHeight()))
	}
}

// handleCameraInput pans and zooms the on-screen view of the frame.
func (w *Window) handleCameraInput() {
	const panSpeed = 8.0

	if rl.IsKeyDown(rl.KeyRight) {
		w.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		w.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		w.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		w.camera.Pan(0, -panSpeed)
	}

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		w.camera.Pan(-d.X, -d.Y)
	}

	// Zoom toward the cursor
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		m := rl.GetMousePosition()
		w.camera.ZoomAt(1+wheel*0.1, m.X, m.Y)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		w.camera.ZoomAt(1.25, w.camera.FrameW/2, w.camera.FrameH/2)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		w.camera.ZoomAt(0.8, w.camera.FrameW/2, w.camera.FrameH/2)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		w.camera.Reset()
	}
}
