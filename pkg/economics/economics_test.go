package economics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agrosim/entities"
	"agrosim/pkg/economics"
	"agrosim/pkg/stress"
)

func baseline() economics.Inputs {
	cat := entities.DefaultCatalog()
	crop, _ := cat.Crop("corn")
	soil, _ := cat.Soil("loam")
	return economics.Inputs{
		Crop: crop,
		Soil: soil,
		Farm: entities.FarmConfig{
			CropKey: "corn", FieldSizeHa: 100, SoilKey: "loam",
			Irrigation: entities.IrrigationDrip, FertilizerRate: 150,
		},
		Day: 120,
	}
}

func TestHarvestStressFree(t *testing.T) {
	in := baseline()

	require.InDelta(t, 0.25, economics.ManagementBonus(150, entities.IrrigationDrip), 1e-12)
	require.InDelta(t, 0.16, economics.SoilBonus(in.Soil), 1e-12)

	h := economics.Harvest(in)
	require.Equal(t, 120, h.Day)
	require.InDelta(t, 16.215, h.FinalYield, 1e-9)
	require.InDelta(t, 389160, h.Revenue, 1e-6)
	require.Equal(t, entities.CostBreakdown{
		Seed: 5000, Fertilizer: 12000, Irrigation: 20000, PestControl: 0, Labor: 30000,
	}, h.Costs)
	require.Equal(t, 67000.0, h.TotalCost)
	require.InDelta(t, 322160, h.Profit, 1e-6)
}

func TestDripBeatsRainFed(t *testing.T) {
	rain := baseline()
	rain.Farm.Irrigation = entities.IrrigationRain
	drip := baseline()

	require.Equal(t, 0.1, economics.ManagementBonus(150, entities.IrrigationRain))
	require.Greater(t,
		economics.ManagementBonus(150, entities.IrrigationDrip),
		economics.ManagementBonus(150, entities.IrrigationRain))
	require.Greater(t, economics.FinalYield(drip), economics.FinalYield(rain))
}

func TestPestControlThreshold(t *testing.T) {
	in := baseline()

	in.PestLevel = 20
	require.Equal(t, 0.0, economics.Harvest(in).Costs.PestControl)

	in.PestLevel = 20.5
	h := economics.Harvest(in)
	require.Equal(t, 8000.0, h.Costs.PestControl)
	require.Equal(t, 75000.0, h.TotalCost)
	// pest damage: (1 - 20.5/200)
	require.InDelta(t, 16.215*(1-20.5/200), h.FinalYield, 1e-9)
}

func TestNegativeStressClampsYield(t *testing.T) {
	in := baseline()
	in.Stress = stress.Factors{Temp: 3, Water: 1, Nutrient: 0.8}

	h := economics.Harvest(in)
	require.Equal(t, 0.0, h.FinalYield)
	require.Equal(t, 0.0, h.Revenue)
	require.Equal(t, -h.TotalCost, h.Profit)
}

func TestIrrigationCosts(t *testing.T) {
	in := baseline()
	for mode, want := range map[entities.IrrigationMode]float64{
		entities.IrrigationDrip:      20000,
		entities.IrrigationSprinkler: 15000,
		entities.IrrigationRain:      5000,
	} {
		in.Farm.Irrigation = mode
		require.Equal(t, want, economics.Costs(in.Farm, 0).Irrigation, string(mode))
	}
}
