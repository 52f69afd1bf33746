package soil

import (
	"math"

	"agrosim/entities"
)

// Floors and ceilings the soil state never leaves.
const (
	MinMoisture   = 10.0
	MaxMoisture   = 100.0
	MinNitrogen   = 10.0
	MinPhosphorus = 5.0
	MinPotassium  = 15.0
)

// Initial is the soil state at day 0.
func Initial() entities.SoilState {
	return entities.SoilState{Moisture: 75, Nitrogen: 80, Phosphorus: 60, Potassium: 90}
}

// IrrigationInput is the flat daily water contribution of an irrigation mode,
// independent of field size.
func IrrigationInput(m entities.IrrigationMode) float64 {
	switch m {
	case entities.IrrigationDrip:
		return 5
	case entities.IrrigationSprinkler:
		return 8
	default:
		return 2
	}
}

func Evaporation(w entities.WeatherSample) float64 {
	return (w.Temperature-10)*0.5 + (w.Solar/1000)*10
}

// Advance applies one day of weather, irrigation and fertilizer to the soil.
// Depletion and replenishment both happen every day, so a higher fertilizer
// rate slows the net loss rather than guaranteeing a gain.
func Advance(w entities.WeatherSample, profile entities.SoilProfile, irrigation entities.IrrigationMode, fertilizerRate float64, prev entities.SoilState) entities.SoilState {
	drainage := profile.Drainage * 2
	moisture := prev.Moisture + w.Rainfall*5 + IrrigationInput(irrigation) - Evaporation(w) - drainage

	return entities.SoilState{
		Moisture:   math.Max(MinMoisture, math.Min(MaxMoisture, moisture)),
		Nitrogen:   math.Max(MinNitrogen, prev.Nitrogen-0.5+fertilizerRate/300),
		Phosphorus: math.Max(MinPhosphorus, prev.Phosphorus-0.2+fertilizerRate/600),
		Potassium:  math.Max(MinPotassium, prev.Potassium-0.3+fertilizerRate/400),
	}
}
