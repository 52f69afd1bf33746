package entities

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration marks a farm configuration the engine refuses to run.
var ErrInvalidConfiguration = errors.New("invalid configuration")

type IrrigationMode string

const (
	IrrigationRain      IrrigationMode = "rain"
	IrrigationSprinkler IrrigationMode = "sprinkler"
	IrrigationDrip      IrrigationMode = "drip"
)

func (m IrrigationMode) Valid() bool {
	switch m {
	case IrrigationRain, IrrigationSprinkler, IrrigationDrip:
		return true
	}
	return false
}

// Accepted ranges for the caller-controlled sliders.
const (
	MinFieldSizeHa    = 10.0
	MaxFieldSizeHa    = 500.0
	MinFertilizerRate = 50.0
	MaxFertilizerRate = 300.0
)

type FarmConfig struct {
	CropKey        string         `json:"crop" yaml:"crop"`
	FieldSizeHa    float64        `json:"field_size_ha" yaml:"field_size_ha"`
	SoilKey        string         `json:"soil" yaml:"soil"`
	Irrigation     IrrigationMode `json:"irrigation" yaml:"irrigation"`
	FertilizerRate float64        `json:"fertilizer_rate" yaml:"fertilizer_rate"` // kg/ha
}

func DefaultFarmConfig() FarmConfig {
	return FarmConfig{
		CropKey:        "corn",
		FieldSizeHa:    100,
		SoilKey:        "loam",
		Irrigation:     IrrigationDrip,
		FertilizerRate: 150,
	}
}

// Validate rejects out-of-range values instead of clamping them.
func (f FarmConfig) Validate(cat Catalog) error {
	if _, ok := cat.Crop(f.CropKey); !ok {
		return fmt.Errorf("%w: unknown crop %q", ErrInvalidConfiguration, f.CropKey)
	}
	if _, ok := cat.Soil(f.SoilKey); !ok {
		return fmt.Errorf("%w: unknown soil %q", ErrInvalidConfiguration, f.SoilKey)
	}
	if !f.Irrigation.Valid() {
		return fmt.Errorf("%w: unknown irrigation mode %q", ErrInvalidConfiguration, f.Irrigation)
	}
	if f.FieldSizeHa < MinFieldSizeHa || f.FieldSizeHa > MaxFieldSizeHa {
		return fmt.Errorf("%w: field size %.1f ha outside [%.0f,%.0f]", ErrInvalidConfiguration, f.FieldSizeHa, MinFieldSizeHa, MaxFieldSizeHa)
	}
	if f.FertilizerRate < MinFertilizerRate || f.FertilizerRate > MaxFertilizerRate {
		return fmt.Errorf("%w: fertilizer rate %.1f kg/ha outside [%.0f,%.0f]", ErrInvalidConfiguration, f.FertilizerRate, MinFertilizerRate, MaxFertilizerRate)
	}
	return nil
}
