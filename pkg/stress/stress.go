// Package stress derives daily crop stress and evolves pest pressure.
package stress

import (
	"math"

	"agrosim/entities"
)

// Source is the shared random stream; see weather.Source.
type Source interface {
	Float64() float64
}

const (
	outbreakPressure = 0.3
	outbreakChance   = 0.1
	pestDecayPerDay  = 2.0
	pestClearLevel   = 5.0
)

// Factors are the dimensionless stress terms for one day. Zero means ideal.
type Factors struct {
	Temp     float64 `json:"temp"`
	Water    float64 `json:"water"`
	Nutrient float64 `json:"nutrient"`
}

// StressFactor is 1 minus the mean stress. It can go negative under extreme
// combined stress; callers clamp whatever they derive from it.
func (f Factors) StressFactor() float64 {
	return 1 - (f.Temp+f.Water+f.Nutrient)/3
}

func Compute(w entities.WeatherSample, s entities.SoilState, crop entities.CropProfile) Factors {
	minNutrient := math.Min(s.Nitrogen, math.Min(s.Phosphorus, s.Potassium))
	return Factors{
		Temp:     math.Abs(w.Temperature-crop.OptimalMid()) / 10,
		Water:    math.Max(0, (60-s.Moisture)/60),
		Nutrient: math.Max(0, (70-minNutrient)/70),
	}
}

// Pressure is the outbreak driver: (temp+water)*0.1 plus U(0,0.05) noise.
func Pressure(tempStress, waterStress float64, rng Source) float64 {
	return (tempStress+waterStress)*0.1 + rng.Float64()*0.05
}

// AdvancePest draws the pressure noise, then (only above the threshold) the
// outbreak trial and the pest type, in that order.
func AdvancePest(tempStress, waterStress float64, prev entities.PestState, rng Source) entities.PestState {
	pressure := Pressure(tempStress, waterStress, rng)
	if pressure > outbreakPressure && rng.Float64() < outbreakChance {
		idx := int(rng.Float64() * float64(len(entities.PestCatalog)))
		if idx >= len(entities.PestCatalog) {
			idx = len(entities.PestCatalog) - 1
		}
		return entities.PestState{
			Level: math.Min(100, pressure*100),
			Type:  entities.PestCatalog[idx],
		}
	}

	next := entities.PestState{Level: math.Max(0, prev.Level-pestDecayPerDay), Type: prev.Type}
	if next.Level < pestClearLevel || next.Type == "" {
		next.Type = entities.PestNone
	}
	return next
}
