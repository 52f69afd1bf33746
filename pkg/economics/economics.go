package economics

import (
	"math"

	"agrosim/entities"
	"agrosim/pkg/stress"
)

// Per-hectare cost rates.
const (
	seedCostPerHa        = 50.0
	fertilizerCostPerKg  = 0.8
	pestControlCostPerHa = 80.0
	laborCostPerHa       = 300.0
	pestControlThreshold = 20.0
)

// Inputs is everything the harvest calculation reads.
type Inputs struct {
	Crop      entities.CropProfile
	Soil      entities.SoilProfile
	Farm      entities.FarmConfig
	Stress    stress.Factors
	PestLevel float64
	Day       int
}

func IrrigationBonus(m entities.IrrigationMode) float64 {
	switch m {
	case entities.IrrigationDrip:
		return 0.15
	case entities.IrrigationSprinkler:
		return 0.10
	default:
		return 0
	}
}

func IrrigationCostPerHa(m entities.IrrigationMode) float64 {
	switch m {
	case entities.IrrigationDrip:
		return 200
	case entities.IrrigationSprinkler:
		return 150
	default:
		return 50
	}
}

func ManagementBonus(fertilizerRate float64, m entities.IrrigationMode) float64 {
	return (fertilizerRate/150)*0.1 + IrrigationBonus(m)
}

func SoilBonus(s entities.SoilProfile) float64 {
	return s.Fertility * 0.2
}

// FinalYield is in t/ha and never negative.
func FinalYield(in Inputs) float64 {
	y := in.Crop.ExpectedYield *
		in.Stress.StressFactor() *
		(1 + ManagementBonus(in.Farm.FertilizerRate, in.Farm.Irrigation) + SoilBonus(in.Soil)) *
		(1 - in.PestLevel/200)
	return math.Max(0, y)
}

func Costs(farm entities.FarmConfig, pestLevel float64) entities.CostBreakdown {
	ha := farm.FieldSizeHa
	c := entities.CostBreakdown{
		Seed:       ha * seedCostPerHa,
		Fertilizer: ha * farm.FertilizerRate * fertilizerCostPerKg,
		Irrigation: ha * IrrigationCostPerHa(farm.Irrigation),
		Labor:      ha * laborCostPerHa,
	}
	if pestLevel > pestControlThreshold {
		c.PestControl = ha * pestControlCostPerHa
	}
	return c
}

// Harvest computes yield, revenue and the itemized cost of the season.
func Harvest(in Inputs) entities.HarvestResult {
	y := FinalYield(in)
	revenue := y * in.Farm.FieldSizeHa * in.Crop.PricePerTonne
	costs := Costs(in.Farm, in.PestLevel)
	total := costs.Total()
	return entities.HarvestResult{
		Day:         in.Day,
		FieldSizeHa: in.Farm.FieldSizeHa,
		FinalYield:  y,
		Revenue:     revenue,
		Costs:       costs,
		TotalCost:   total,
		Profit:      revenue - total,
	}
}
