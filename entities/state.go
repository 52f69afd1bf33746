package entities

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

type WeatherSample struct {
	Temperature float64 `json:"temperature"` // °C
	Humidity    float64 `json:"humidity"`    // %
	Rainfall    float64 `json:"rainfall"`    // mm
	Solar       float64 `json:"solar"`       // W/m²
}

type SoilState struct {
	Moisture   float64 `json:"moisture"` // %
	Nitrogen   float64 `json:"n"`
	Phosphorus float64 `json:"p"`
	Potassium  float64 `json:"k"`
}

type PestType string

const (
	PestNone        PestType = "none"
	PestAphids      PestType = "aphids"
	PestSpiderMites PestType = "spider_mites"
	PestCornBorer   PestType = "corn_borer"
	PestRust        PestType = "rust"
	PestBlight      PestType = "blight"
)

// PestCatalog is the fixed, ordered set an outbreak draws from.
var PestCatalog = []PestType{PestAphids, PestSpiderMites, PestCornBorer, PestRust, PestBlight}

type PestState struct {
	Level float64  `json:"level"` // %
	Type  PestType `json:"type"`
}

type CostBreakdown struct {
	Seed        float64 `json:"seed"`
	Fertilizer  float64 `json:"fertilizer"`
	Irrigation  float64 `json:"irrigation"`
	PestControl float64 `json:"pest_control"`
	Labor       float64 `json:"labor"`
}

func (c CostBreakdown) Total() float64 {
	return c.Seed + c.Fertilizer + c.Irrigation + c.PestControl + c.Labor
}

type HarvestResult struct {
	Day         int           `json:"day"`
	FieldSizeHa float64       `json:"field_size_ha"`
	FinalYield  float64       `json:"final_yield"` // t/ha
	Revenue     float64       `json:"revenue"`
	Costs       CostBreakdown `json:"costs"`
	TotalCost   float64       `json:"total_cost"`
	Profit      float64       `json:"profit"`
}

// ProfitPerHa is the profit spread over the harvested field.
func (h HarvestResult) ProfitPerHa() float64 {
	if h.FieldSizeHa <= 0 {
		return 0
	}
	return h.Profit / h.FieldSizeHa
}

// HistoryRecord is one retained day of the run, as charted and exported.
type HistoryRecord struct {
	Day          int     `json:"day"`
	Growth       float64 `json:"growth"` // %
	SoilMoisture float64 `json:"soil_moisture"`
	Temperature  float64 `json:"temperature"`
	Rainfall     float64 `json:"rainfall"`
	Biomass      float64 `json:"biomass"`
	Pests        float64 `json:"pests"`
	Yield        float64 `json:"yield"`  // t/ha, harvest day only
	Profit       float64 `json:"profit"` // $/ha, harvest day only
}
