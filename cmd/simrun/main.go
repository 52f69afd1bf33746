// Command simrun runs one season headless, without wall-clock pacing, and
// writes the history export.
package main

import (
	"flag"
	"log"
	"os"

	"agrosim/config"
	"agrosim/database"
	"agrosim/entities"
	"agrosim/pkg/catalog"
	"agrosim/pkg/export"
	harvestRepoImp "agrosim/pkg/harvest/repositoryImp"
	"agrosim/pkg/simulation/engine"
	"agrosim/pkg/simulation/service"
	simSvcImp "agrosim/pkg/simulation/serviceImp"
)

func main() {
	def := entities.DefaultFarmConfig()
	var (
		crop       = flag.String("crop", def.CropKey, "crop key")
		soil       = flag.String("soil", def.SoilKey, "soil key")
		irrigation = flag.String("irrigation", string(def.Irrigation), "rain|sprinkler|drip")
		field      = flag.Float64("field", def.FieldSizeHa, "field size in hectares (10-500)")
		fert       = flag.Float64("fert", def.FertilizerRate, "fertilizer rate in kg/ha (50-300)")
		seed       = flag.Int64("seed", config.DefaultTuning().Seed, "random seed")
		days       = flag.Int("days", 0, "days to simulate; 0 runs to harvest")
		out        = flag.String("out", "", "output file; extension picks the format (default stdout csv)")
		cropCSV    = flag.String("crops", "", "crop catalog CSV override")
		soilXLSX   = flag.String("soils", "", "soil catalog XLSX override")
		dbPath     = flag.String("db", "file::memory:?cache=shared", "harvest ledger path")
	)
	flag.Parse()

	cat, err := catalog.LoadFromFiles(*cropCSV, *soilXLSX)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	farm := entities.FarmConfig{
		CropKey:        *crop,
		SoilKey:        *soil,
		Irrigation:     entities.IrrigationMode(*irrigation),
		FieldSizeHa:    *field,
		FertilizerRate: *fert,
	}
	eng, err := engine.New(cat, farm, *seed)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	db, err := database.Open(*dbPath)
	if err != nil {
		log.Fatalf("ledger: %v", err)
	}
	svc := simSvcImp.New(eng, harvestRepoImp.New(db), nil, 0)

	n := *days
	if n <= 0 {
		crop, _ := cat.Crop(farm.CropKey)
		n = crop.GrowthDays
	}
	for i := 0; i < n; i++ {
		svc.Step()
	}

	snap := svc.Snapshot()
	if snap.Harvest != nil {
		log.Printf("[simrun] %s harvested day %d: %.3f t/ha, profit $%.2f ($%.2f/ha)",
			snap.CropName, snap.Harvest.Day, snap.Yield, snap.Profit, snap.ProfitPerHa)
	} else {
		log.Printf("[simrun] %s stopped at day %d, %s, %.1f%% grown",
			snap.CropName, snap.Day, snap.GrowthStage, snap.ProgressPercent)
	}

	if *out == "" {
		if err := svc.Export(os.Stdout, export.FormatCSV); err != nil {
			log.Fatalf("export: %v", err)
		}
		return
	}
	if err := writeExport(svc, *out); err != nil {
		log.Fatalf("export: %v", err)
	}
	log.Printf("[simrun] wrote %s", *out)
}

// writeExport picks the format from the file extension and reports close errors.
func writeExport(svc service.SimulationService, path string) error {
	format, err := export.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := svc.Export(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
