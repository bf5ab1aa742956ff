package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Field.Detail != 16 {
		t.Errorf("expected detail 16, got %d", cfg.Field.Detail)
	}
	if cfg.Particles.Count != 3000 {
		t.Errorf("expected 3000 particles, got %d", cfg.Particles.Count)
	}
	if cfg.Trail.HistoryLength != 20 {
		t.Errorf("expected history length 20, got %d", cfg.Trail.HistoryLength)
	}
	if cfg.Trail.Fade != 0.09 {
		t.Errorf("expected fade 0.09, got %g", cfg.Trail.Fade)
	}
	if cfg.Render.Red != (RGB{255, 0, 0}) {
		t.Errorf("expected red channel colour, got %v", cfg.Render.Red)
	}
	if cfg.Depth.ParticleOpacity != 180 || cfg.Depth.StampOpacity != 100 || cfg.Depth.HistoryOpacity != 120 {
		t.Errorf("unexpected depth opacities: %+v", cfg.Depth)
	}
}

func TestLoadOverridesOnlyNamedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := "field:\n  detail: 8\nparticles:\n  count: 10\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Field.Detail != 8 {
		t.Errorf("expected detail 8, got %d", cfg.Field.Detail)
	}
	if cfg.Particles.Count != 10 {
		t.Errorf("expected 10 particles, got %d", cfg.Particles.Count)
	}
	// Untouched sections keep defaults
	if cfg.Particles.MaxSpeed != 4 {
		t.Errorf("expected default max speed 4, got %g", cfg.Particles.MaxSpeed)
	}
	if cfg.Screen.TargetFPS != 60 {
		t.Errorf("expected default fps 60, got %d", cfg.Screen.TargetFPS)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "reading config file") {
		t.Errorf("expected wrapped read error, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero detail", func(c *Config) { c.Field.Detail = 0 }},
		{"zero fps", func(c *Config) { c.Screen.TargetFPS = 0 }},
		{"inverted extents", func(c *Config) { c.Screen.MinWidth = c.Screen.MaxWidth + 1 }},
		{"fade above one", func(c *Config) { c.Trail.Fade = 1.5 }},
		{"unknown pattern", func(c *Config) { c.Pattern.Kind = "checkers" }},
		{"zero history", func(c *Config) { c.Trail.HistoryLength = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := Default()
	dup := cfg.Clone()

	dup.Field.Detail = 4
	dup.Pattern.Kind = PatternPerlin
	dup.Render.Background[0] = 99

	if cfg.Field.Detail != 16 {
		t.Errorf("original detail changed to %d", cfg.Field.Detail)
	}
	if cfg.Pattern.Kind == PatternPerlin {
		t.Error("original pattern kind changed")
	}
	if cfg.Render.Background[0] == 99 {
		t.Error("original background changed")
	}
}

func TestClampViewport(t *testing.T) {
	cfg := Default()

	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{100, 100, 400, 300},
		{5000, 5000, 1920, 1080},
		{800, 600, 800, 600},
	}
	for _, tc := range tests {
		w, h := cfg.ClampViewport(tc.w, tc.h)
		if w != tc.wantW || h != tc.wantH {
			t.Errorf("ClampViewport(%d, %d) = (%d, %d), want (%d, %d)", tc.w, tc.h, w, h, tc.wantW, tc.wantH)
		}
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Field.Detail = 12

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot failed: %v", err)
	}
	if loaded.Field.Detail != 12 {
		t.Errorf("expected detail 12 after reload, got %d", loaded.Field.Detail)
	}
	if loaded.Render.HUD != cfg.Render.HUD {
		t.Errorf("expected hud colour %v, got %v", cfg.Render.HUD, loaded.Render.HUD)
	}
}
