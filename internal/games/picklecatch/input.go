package picklecatch

import (
	"math"

	"github.com/vovakirdan/picklecatch/internal/core"
)

// applyInput moves the catcher according to one tick of sampled input.
// Relative deltas only count while pointer capture is held; an absolute
// position (touch drag) always counts and wins over deltas. Non-finite
// values are dropped. The caller clamps the result.
func applyInput(c Catcher, in core.InputSample, captured bool) Catcher {
	if captured && finite(in.DeltaX) {
		c.CenterX += in.DeltaX
	}
	if in.HasAbsolute && finite(in.Absolute) {
		c.CenterX = in.Absolute
	}
	return c
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
