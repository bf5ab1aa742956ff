// Package renderer composites the particle flow visualization stages into
// an in-memory frame.
package renderer

import "fmt"

// Stage selects what the renderer draws. Stages cycle in declaration order.
type Stage int

const (
	StageGrid          Stage = iota // Source image with the grid overlay
	StageBrightness                 // Brightness grid as a greyscale heat-map
	StageFewParticles               // A small subset of particles
	StageAllParticles               // Every particle
	StageAlphaBlend                 // Every particle with alpha-based opacity
	StageTrails                     // Trail accumulator only
	StageCount
)

var stageNames = [StageCount]string{
	StageGrid:         "Original + Grid",
	StageBrightness:   "Brightness",
	StageFewParticles: "Few Particles",
	StageAllParticles: "All Particles",
	StageAlphaBlend:   "Alpha Blend",
	StageTrails:       "Trails",
}

// Next returns the following stage, wrapping after the last.
func (s Stage) Next() Stage {
	return (s.normalized() + 1) % StageCount
}

// Number returns the 1-based stage number shown to the user.
func (s Stage) Number() int {
	return int(s.normalized()) + 1
}

// NeedsTrails reports whether the trail accumulator must be advanced for this stage.
func (s Stage) NeedsTrails() bool {
	return s == StageTrails
}

// String returns the display label.
func (s Stage) String() string {
	if s < 0 || s >= StageCount {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// normalized maps out-of-range values back to the first stage.
func (s Stage) normalized() Stage {
	if s < 0 || s >= StageCount {
		return StageGrid
	}
	return s
}

// StatusText builds the one-line status shown under the frame. Viewports
// narrower than compactBelow get the short form without key help.
func StatusText(stage Stage, depth3D bool, width, compactBelow int) string {
	depth := ""
	if depth3D {
		depth = " | 3D: ON"
	}
	if width < compactBelow {
		return fmt.Sprintf("S%d/%d: %s%s", stage.Number(), int(StageCount), stage, depth)
	}
	return fmt.Sprintf("Step %d/%d: %s%s - SPACE/R/L/3/C/ESC", stage.Number(), int(StageCount), stage, depth)
}
