package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"agrosim/entities"
)

type AppConfig struct {
	Port       string
	DBPath     string
	TuningPath string
	CropCSV    string
	SoilXLSX   string
	SeedSet    bool
	Seed       int64
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:       get("PORT", "8080"),
		DBPath:     get("DB_PATH", "file::memory:?cache=shared"),
		TuningPath: get("SIM_TUNING", "sim.yaml"),
		CropCSV:    get("CROP_CATALOG_CSV", ""),
		SoilXLSX:   get("SOIL_CATALOG_XLSX", ""),
	}
	if v := get("SIM_SEED", ""); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Printf("[cfg] ignoring SIM_SEED=%q: %v", v, err)
		} else {
			cfg.Seed, cfg.SeedSet = seed, true
		}
	}
	log.Printf("[cfg] %+v", cfg)
	return cfg
}

// Tuning holds the simulation knobs read from sim.yaml.
type Tuning struct {
	TickPeriodMs       int                 `yaml:"tick_period_ms"`
	Seed               int64               `yaml:"seed"`
	AutoPauseAtHarvest bool                `yaml:"auto_pause_at_harvest"`
	Farm               entities.FarmConfig `yaml:"farm"`
}

func DefaultTuning() Tuning {
	return Tuning{
		TickPeriodMs: 500,
		Seed:         42,
		Farm:         entities.DefaultFarmConfig(),
	}
}

func (t Tuning) TickPeriod() time.Duration {
	return time.Duration(t.TickPeriodMs) * time.Millisecond
}

// LoadTuning overlays the YAML file on the defaults. A missing file is not an error.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("[cfg] %s not found, using default tuning", path)
			return t, nil
		}
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	if t.TickPeriodMs <= 0 {
		return t, fmt.Errorf("%s: tick_period_ms must be positive", path)
	}
	return t, nil
}
