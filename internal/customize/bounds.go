package customize

import (
	"math"

	"github.com/jonathan/resume-wizard/internal/types"
)

// Declared bounds of the numeric style fields.
const (
	MinHeadingSize = 14
	MaxHeadingSize = 32

	MinBodySize = 10
	MaxBodySize = 18

	MinLineHeight = 1.0
	MaxLineHeight = 2.0

	// Line height moves in tenths.
	lineHeightScale = 10

	MinSectionSpacing  = 8
	MaxSectionSpacing  = 64
	SectionSpacingStep = 4
)

// Clamp returns cfg with every numeric field forced into its bound. Stepped fields are
// clamped first and then rounded to the nearest step. Padding and item spacing have no
// upper bound and only clamp at zero. Layout columns are left alone; they are checked
// against the template instead.
func Clamp(cfg types.StyleConfiguration) types.StyleConfiguration {
	t := &cfg.Typography
	t.HeadingSize = clampInt(t.HeadingSize, MinHeadingSize, MaxHeadingSize)
	t.BodySize = clampInt(t.BodySize, MinBodySize, MaxBodySize)
	t.LineHeight = clampLineHeight(t.LineHeight)

	s := &cfg.Spacing
	s.SectionSpacing = roundToStep(clampInt(s.SectionSpacing, MinSectionSpacing, MaxSectionSpacing), SectionSpacingStep)
	s.ItemSpacing = max(s.ItemSpacing, 0)
	s.Padding = max(s.Padding, 0)
	return cfg
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func clampLineHeight(v float64) float64 {
	if math.IsNaN(v) {
		return MinLineHeight
	}
	v = math.Min(math.Max(v, MinLineHeight), MaxLineHeight)
	return math.Round(v*lineHeightScale) / lineHeightScale
}

// roundToStep rounds half up. Both section spacing bounds are multiples of the step,
// so the result never leaves the bound.
func roundToStep(v, step int) int {
	return (v + step/2) / step * step
}
