package entities

import "time"

// HarvestLog is the ledger row written when a run reaches maturity.
type HarvestLog struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	RunID          string         `gorm:"index" json:"run_id"`
	CropKey        string         `json:"crop"`
	SoilKey        string         `json:"soil"`
	Irrigation     IrrigationMode `json:"irrigation"`
	FieldSizeHa    float64        `json:"field_size_ha"`
	FertilizerRate float64        `json:"fertilizer_rate"`
	Day            int            `json:"day"`
	FinalYield     float64        `json:"final_yield"`
	Revenue        float64        `json:"revenue"`
	SeedCost       float64        `json:"seed_cost"`
	FertilizerCost float64        `json:"fertilizer_cost"`
	IrrigationCost float64        `json:"irrigation_cost"`
	PestCost       float64        `json:"pest_cost"`
	LaborCost      float64        `json:"labor_cost"`
	TotalCost      float64        `json:"total_cost"`
	Profit         float64        `json:"profit"`
	PestLevel      float64        `json:"pest_level"`
	CreatedAt      time.Time
}

func NewHarvestLog(runID string, cfg FarmConfig, pestLevel float64, h HarvestResult) *HarvestLog {
	return &HarvestLog{
		RunID: runID, CropKey: cfg.CropKey, SoilKey: cfg.SoilKey, Irrigation: cfg.Irrigation,
		FieldSizeHa: cfg.FieldSizeHa, FertilizerRate: cfg.FertilizerRate,
		Day: h.Day, FinalYield: h.FinalYield, Revenue: h.Revenue,
		SeedCost: h.Costs.Seed, FertilizerCost: h.Costs.Fertilizer, IrrigationCost: h.Costs.Irrigation,
		PestCost: h.Costs.PestControl, LaborCost: h.Costs.Labor,
		TotalCost: h.TotalCost, Profit: h.Profit, PestLevel: pestLevel,
	}
}
