package entities

import "sort"

type CropProfile struct {
	Key              string     `json:"key"`
	Name             string     `json:"name"`
	PricePerTonne    float64    `json:"price_per_tonne"`
	ExpectedYield    float64    `json:"expected_yield"` // t/ha
	GrowthDays       int        `json:"growth_days"`
	WaterRequirement float64    `json:"water_requirement"` // mm per season
	OptimalTemp      [2]float64 `json:"optimal_temp"`      // [low, high] °C
	Stages           []string   `json:"stages"`
}

// OptimalMid is the midpoint of the optimal temperature range.
func (c CropProfile) OptimalMid() float64 { return (c.OptimalTemp[0] + c.OptimalTemp[1]) / 2 }

type SoilProfile struct {
	Key          string  `json:"key"`
	Drainage     float64 `json:"drainage"`
	Fertility    float64 `json:"fertility"`
	WaterHolding float64 `json:"water_holding"`
}

// Catalog is the static reference data a simulation run looks profiles up in.
type Catalog struct {
	Crops map[string]CropProfile `json:"crops"`
	Soils map[string]SoilProfile `json:"soils"`
}

func DefaultCatalog() Catalog {
	return Catalog{
		Crops: map[string]CropProfile{
			"corn": {
				Key: "corn", Name: "Corn (Maize)", PricePerTonne: 240, ExpectedYield: 11.5, GrowthDays: 120,
				WaterRequirement: 500, OptimalTemp: [2]float64{20, 30},
				Stages: []string{"germination", "vegetative", "flowering", "grain_filling", "maturity"},
			},
			"wheat": {
				Key: "wheat", Name: "Winter Wheat", PricePerTonne: 280, ExpectedYield: 7.2, GrowthDays: 240,
				WaterRequirement: 450, OptimalTemp: [2]float64{15, 25},
				Stages: []string{"germination", "tillering", "stem_elongation", "flowering", "grain_filling", "maturity"},
			},
			"soybean": {
				Key: "soybean", Name: "Soybean", PricePerTonne: 520, ExpectedYield: 3.2, GrowthDays: 100,
				WaterRequirement: 400, OptimalTemp: [2]float64{20, 28},
				Stages: []string{"germination", "vegetative", "flowering", "pod_development", "maturity"},
			},
			"tomato": {
				Key: "tomato", Name: "Tomato", PricePerTonne: 1200, ExpectedYield: 65, GrowthDays: 90,
				WaterRequirement: 600, OptimalTemp: [2]float64{18, 26},
				Stages: []string{"germination", "vegetative", "flowering", "fruit_development", "maturity"},
			},
		},
		Soils: map[string]SoilProfile{
			"clay": {Key: "clay", Drainage: 0.3, Fertility: 0.9, WaterHolding: 0.9},
			"loam": {Key: "loam", Drainage: 0.7, Fertility: 0.8, WaterHolding: 0.7},
			"sand": {Key: "sand", Drainage: 0.9, Fertility: 0.4, WaterHolding: 0.3},
			"silt": {Key: "silt", Drainage: 0.5, Fertility: 0.7, WaterHolding: 0.8},
		},
	}
}

func (c Catalog) Crop(key string) (CropProfile, bool) {
	p, ok := c.Crops[key]
	return p, ok
}

func (c Catalog) Soil(key string) (SoilProfile, bool) {
	p, ok := c.Soils[key]
	return p, ok
}

// CropKeys returns the crop keys in sorted order.
func (c Catalog) CropKeys() []string {
	keys := make([]string, 0, len(c.Crops))
	for k := range c.Crops {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c Catalog) SoilKeys() []string {
	keys := make([]string, 0, len(c.Soils))
	for k := range c.Soils {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
