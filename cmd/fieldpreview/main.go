// Brightness field preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/fieldpreview [-image photo.png]
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/particleflow/config"
	"github.com/pthm-cable/particleflow/renderer"
	"github.com/pthm-cable/particleflow/source"
	"github.com/pthm-cable/particleflow/systems"
	"github.com/pthm-cable/particleflow/telemetry"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewW     = 600
	previewH     = 450
	panelWidth   = windowWidth - previewW - 30
)

// previewParams holds the values the sliders edit.
type previewParams struct {
	Detail  int
	Perlin  bool
	Scale   float32
	Octaves int
	Seed    int64
	Grid    bool
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	imagePath := flag.String("image", "", "Source image (empty = procedural pattern)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var loaded image.Image
	if *imagePath != "" {
		loaded, err = source.Load(*imagePath)
		if err != nil {
			slog.Warn("image load failed, using pattern", "path", *imagePath, "error", err)
		}
	}

	rl.InitWindow(windowWidth, windowHeight, "Brightness Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	defaults := previewParams{
		Detail:  cfg.Field.Detail,
		Perlin:  cfg.Pattern.Kind == config.PatternPerlin,
		Scale:   float32(cfg.Pattern.PerlinScale),
		Octaves: int(cfg.Pattern.PerlinOctaves),
		Seed:    1,
	}
	params := defaults

	frame := image.NewRGBA(image.Rect(0, 0, previewW, previewH))
	pixels := make([]color.RGBA, previewW*previewH)
	img := rl.GenImageColor(previewW, previewH, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var field *systems.BrightnessField
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			view := withParams(cfg, params)
			r := renderer.NewRenderer(view)
			src := buildSource(loaded, view, params.Seed)
			field = systems.BuildBrightnessField(src, view.Field.Detail)

			stage := renderer.StageBrightness
			if params.Grid {
				stage = renderer.StageGrid
			}
			r.Render(frame, stage, &renderer.Scene{Source: src, Field: field})
			copyPixels(pixels, frame)
			rl.UpdateTexture(texture, pixels)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexture(texture, 10, 10, rl.White)
		rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)

		mean, std := fieldStats(field)
		statsY := int32(previewH + 25)
		rl.DrawText(fmt.Sprintf("Grid: %dx%d cells", field.W, field.H), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Mean: %.3f  Std: %.3f", mean, std), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Brightness Field", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Detail (pixels per cell)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newDetail := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"2", "64",
			float32(params.Detail), 2, 64,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Detail), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newDetail) != params.Detail {
			params.Detail = int(newDetail)
			needsRegen = true
		}
		panelY += 35

		if loaded == nil {
			rl.DrawText("Perlin scale", int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			newScale := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"0.001", "0.05",
				params.Scale, 0.001, 0.05,
			)
			rl.DrawText(fmt.Sprintf("%.3f", params.Scale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if newScale != params.Scale {
				params.Scale = newScale
				needsRegen = needsRegen || params.Perlin
			}
			panelY += 35

			rl.DrawText("Perlin octaves", int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			newOctaves := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"1", "8",
				float32(params.Octaves), 1, 8,
			)
			rl.DrawText(fmt.Sprintf("%d", params.Octaves), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if int(newOctaves) != params.Octaves {
				params.Octaves = int(newOctaves)
				needsRegen = needsRegen || params.Perlin
			}
			panelY += 45

			if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.Perlin, "Spiral", "Perlin")) {
				params.Perlin = !params.Perlin
				needsRegen = true
			}
			if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
				params.Seed = int64(rl.GetRandomValue(0, 99999))
				needsRegen = needsRegen || params.Perlin
			}
			panelY += 45
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.Grid, "Brightness", "Grid")) {
			params.Grid = !params.Grid
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(params) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

// withParams returns a copy of base with the slider values applied.
func withParams(base *config.Config, p previewParams) *config.Config {
	cfg := base.Clone()
	cfg.Field.Detail = p.Detail
	cfg.Pattern.Kind = config.PatternSpiral
	if p.Perlin {
		cfg.Pattern.Kind = config.PatternPerlin
	}
	cfg.Pattern.PerlinScale = float64(p.Scale)
	cfg.Pattern.PerlinOctaves = int32(p.Octaves)
	return cfg
}

// buildSource returns the preview-sized source: the loaded image resampled,
// or the configured pattern.
func buildSource(loaded image.Image, cfg *config.Config, seed int64) image.Image {
	if loaded != nil {
		return source.Resample(loaded, previewW, previewH)
	}
	return source.Default(previewW, previewH, cfg.Pattern, seed)
}

func copyPixels(dst []color.RGBA, frame *image.RGBA) {
	for i := range dst {
		o := i * 4
		dst[i] = color.RGBA{R: frame.Pix[o], G: frame.Pix[o+1], B: frame.Pix[o+2], A: 255}
	}
}

func fieldStats(field *systems.BrightnessField) (mean, std float64) {
	if field == nil || field.Empty() {
		return 0, 0
	}
	values := make([]float64, 0, field.W*field.H)
	for gy := 0; gy < field.H; gy++ {
		for gx := 0; gx < field.W; gx++ {
			values = append(values, field.At(gx, gy))
		}
	}
	return telemetry.ComputeSpread(values)
}

func yamlLines(p previewParams) []string {
	kind := config.PatternSpiral
	if p.Perlin {
		kind = config.PatternPerlin
	}
	return []string{
		"field:",
		fmt.Sprintf("  detail: %d", p.Detail),
		"pattern:",
		fmt.Sprintf("  kind: %s", kind),
		fmt.Sprintf("  perlin_scale: %.3f", p.Scale),
		fmt.Sprintf("  perlin_octaves: %d", p.Octaves),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
