package game

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// banner fades the stage name out after a stage change.
type banner struct {
	tween *gween.Tween
	text  string
	alpha float32
}

func (b *banner) show(text string, seconds float64) {
	b.text = text
	b.alpha = 1
	if seconds <= 0 {
		b.tween = nil
		b.alpha = 0
		return
	}
	b.tween = gween.New(1, 0, float32(seconds), ease.OutQuad)
}

func (b *banner) update(dt float32) {
	if b.tween == nil {
		return
	}
	val, done := b.tween.Update(dt)
	b.alpha = val
	if done {
		b.tween = nil
		b.alpha = 0
	}
}
