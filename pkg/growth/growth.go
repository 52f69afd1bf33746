package growth

import (
	"math"

	"agrosim/entities"
)

// Advance returns the progress fraction and stage label for a crop on a given day.
// Progress is not capped; harvest triggers once it reaches 1.
func Advance(crop entities.CropProfile, day int) (float64, string) {
	progress := Progress(crop, day)
	return progress, Stage(crop, progress)
}

func Progress(crop entities.CropProfile, day int) float64 {
	if crop.GrowthDays <= 0 {
		return 0
	}
	return float64(day) / float64(crop.GrowthDays)
}

// Stage is a label only; it never drives the growth rate.
func Stage(crop entities.CropProfile, progress float64) string {
	n := len(crop.Stages)
	if n == 0 {
		return ""
	}
	idx := int(math.Floor(progress * float64(n)))
	if idx > n-1 {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return crop.Stages[idx]
}

// Percent is the display form of progress, clamped to [0,100].
func Percent(progress float64) float64 {
	return math.Max(0, math.Min(100, progress*100))
}

// Scale is the plant size factor handed to renderers.
func Scale(progress float64) float64 {
	return 0.5 + math.Max(0, math.Min(1, progress))*2
}

// Biomass estimates accumulated biomass (0..100) from progress and the day's stress factor.
func Biomass(progress, stressFactor float64) float64 {
	return math.Max(0, math.Min(100, progress*120*stressFactor))
}
