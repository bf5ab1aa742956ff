package game

// Options configures a Game beyond the YAML config.
type Options struct {
	Seed      int64  // RNG seed for particle placement and procedural patterns
	ImagePath string // Initial source image (empty = procedural pattern)
	LogStats  bool   // Log window and perf stats via slog
	OutputDir string // Directory for CSV logs and config snapshot (empty = disabled)
	MaxTicks  int64  // Stop after N ticks (0 = unlimited)
}
