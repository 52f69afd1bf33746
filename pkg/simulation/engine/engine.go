// Package engine owns one simulation run: its state machine, the per-day
// pipeline and the clock that drives it.
package engine

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"agrosim/entities"
	"agrosim/pkg/growth"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// DefaultTickPeriod is one simulated day per 500ms of wall time.
const DefaultTickPeriod = 500 * time.Millisecond

type Engine struct {
	stepMu sync.Mutex // serializes steps
	mu     sync.Mutex // guards everything below

	catalog entities.Catalog
	cfg     entities.FarmConfig
	seed    int64
	rng     *rand.Rand
	gen     uint64
	runID   string
	status  Status
	state   State

	// AutoPauseAtHarvest pauses the clock on the harvest day.
	AutoPauseAtHarvest bool

	// Callbacks run after a step is committed, outside the engine lock.
	// Populate them before the clock starts.
	OnTick    func(Snapshot)
	OnHarvest func(runID string, cfg entities.FarmConfig, h entities.HarvestResult, pest entities.PestState)
	OnReset   func(runID string)
}

// New validates cfg against the catalog and returns an idle engine.
func New(cat entities.Catalog, cfg entities.FarmConfig, seed int64) (*Engine, error) {
	if err := cfg.Validate(cat); err != nil {
		return nil, err
	}
	e := &Engine{catalog: cat, cfg: cfg, seed: seed}
	e.resetLocked()
	return e, nil
}

func (e *Engine) resetLocked() {
	e.gen++
	e.rng = rand.New(rand.NewSource(e.seed))
	e.runID = uuid.NewString()
	e.status = StatusIdle
	e.state = NewState()
}

func (e *Engine) Catalog() entities.Catalog { return e.catalog }

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Engine) Config() entities.FarmConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

func (e *Engine) RunID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runID
}

// Start moves Idle or Paused to Running.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.cfg.Validate(e.catalog); err != nil {
		return err
	}
	if e.status != StatusRunning {
		log.Printf("[sim] start run=%s day=%d", e.runID, e.state.Day)
	}
	e.status = StatusRunning
	return nil
}

// Pause moves Running to Paused; any other state is left alone.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == StatusRunning {
		e.status = StatusPaused
		log.Printf("[sim] pause run=%s day=%d", e.runID, e.state.Day)
	}
}

// Reset restores the defaults from any state. A step in flight is discarded.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.resetLocked()
	runID := e.runID
	e.mu.Unlock()

	log.Printf("[sim] reset run=%s", runID)
	if e.OnReset != nil {
		e.OnReset(runID)
	}
}

// Configure replaces the farm config; the next step reads it. Switching crops
// resets the run, since profiles are not comparable mid-season.
func (e *Engine) Configure(cfg entities.FarmConfig) (bool, error) {
	if err := cfg.Validate(e.catalog); err != nil {
		return false, err
	}
	e.mu.Lock()
	cropChanged := cfg.CropKey != e.cfg.CropKey
	e.cfg = cfg
	if cropChanged {
		e.resetLocked()
	}
	runID := e.runID
	e.mu.Unlock()

	if cropChanged {
		log.Printf("[sim] crop changed to %s, reset run=%s", cfg.CropKey, runID)
		if e.OnReset != nil {
			e.OnReset(runID)
		}
	}
	return cropChanged, nil
}

// Tick advances one day if the engine is running. It is what the clock calls.
func (e *Engine) Tick() bool { return e.advance(false) }

// Step advances one day regardless of status, leaving the status unchanged.
func (e *Engine) Step() bool { return e.advance(true) }

func (e *Engine) advance(force bool) bool {
	e.stepMu.Lock()
	defer e.stepMu.Unlock()

	e.mu.Lock()
	if !force && e.status != StatusRunning {
		e.mu.Unlock()
		return false
	}
	gen, prev, cfg, rng := e.gen, e.state, e.cfg, e.rng
	env, err := e.envLocked(cfg)
	e.mu.Unlock()
	if err != nil {
		log.Printf("[sim] step skipped: %v", err)
		return false
	}

	next, harvested := Step(prev, env, rng)

	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return false
	}
	e.state = next
	if harvested && e.AutoPauseAtHarvest && e.status == StatusRunning {
		e.status = StatusPaused
	}
	runID := e.runID
	snap := e.snapshotLocked()
	e.mu.Unlock()

	if harvested {
		h := *next.Harvest
		log.Printf("[sim] harvest run=%s day=%d yield=%.3f t/ha profit=%.2f", runID, h.Day, h.FinalYield, h.Profit)
		if e.OnHarvest != nil {
			e.OnHarvest(runID, cfg, h, next.Pest)
		}
	}
	if e.OnTick != nil {
		e.OnTick(snap)
	}
	return true
}

func (e *Engine) envLocked(cfg entities.FarmConfig) (Env, error) {
	crop, ok := e.catalog.Crop(cfg.CropKey)
	if !ok {
		return Env{}, fmt.Errorf("%w: unknown crop %q", entities.ErrInvalidConfiguration, cfg.CropKey)
	}
	soil, ok := e.catalog.Soil(cfg.SoilKey)
	if !ok {
		return Env{}, fmt.Errorf("%w: unknown soil %q", entities.ErrInvalidConfiguration, cfg.SoilKey)
	}
	return Env{Crop: crop, Soil: soil, Farm: cfg}, nil
}

// Run drives Tick from a ticker until ctx is done.
func (e *Engine) Run(ctx context.Context, period time.Duration) {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	t := time.NewTicker(period)
	defer t.Stop()
	log.Printf("[sim] clock started period=%s", period)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[sim] clock stopped")
			return
		case <-t.C:
			e.Tick()
		}
	}
}

// Snapshot is a read-only copy of the run for renderers, charts and exporters.
type Snapshot struct {
	RunID           string                   `json:"run_id"`
	Status          Status                   `json:"status"`
	Config          entities.FarmConfig      `json:"config"`
	CropName        string                   `json:"crop_name"`
	Day             int                      `json:"day"`
	Season          entities.Season          `json:"season"`
	GrowthStage     string                   `json:"growth_stage"`
	ProgressPercent float64                  `json:"progress_percent"`
	GrowthScale     float64                  `json:"growth_scale"`
	Weather         entities.WeatherSample   `json:"weather"`
	SoilMoisture    float64                  `json:"soil_moisture"`
	SoilNutrients   entities.SoilState       `json:"soil_nutrients"`
	Pest            entities.PestState       `json:"pest"`
	StressFactor    float64                  `json:"stress_factor"`
	Yield           float64                  `json:"yield"`
	Revenue         float64                  `json:"revenue"`
	Cost            float64                  `json:"cost"`
	Costs           entities.CostBreakdown   `json:"costs"`
	Profit          float64                  `json:"profit"`
	ProfitPerHa     float64                  `json:"profit_per_ha"`
	Harvest         *entities.HarvestResult  `json:"harvest,omitempty"`
	History         []entities.HistoryRecord `json:"history"`
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// History returns the retained records in chronological order.
func (e *Engine) History() []entities.HistoryRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.History.Records()
}

func (e *Engine) snapshotLocked() Snapshot {
	crop, _ := e.catalog.Crop(e.cfg.CropKey)
	progress := e.state.Progress(crop)
	s := Snapshot{
		RunID:           e.runID,
		Status:          e.status,
		Config:          e.cfg,
		CropName:        crop.Name,
		Day:             e.state.Day,
		Season:          e.state.Season,
		GrowthStage:     e.state.Stage(crop),
		ProgressPercent: growth.Percent(progress),
		GrowthScale:     growth.Scale(progress),
		Weather:         e.state.Weather,
		SoilMoisture:    e.state.Soil.Moisture,
		SoilNutrients:   e.state.Soil,
		Pest:            e.state.Pest,
		StressFactor:    e.state.Stress.StressFactor(),
		History:         e.state.History.Records(),
	}
	if h := e.state.Harvest; h != nil {
		hc := *h
		s.Harvest = &hc
		s.Yield = hc.FinalYield
		s.Revenue = hc.Revenue
		s.Cost = hc.TotalCost
		s.Costs = hc.Costs
		s.Profit = hc.Profit
		s.ProfitPerHa = hc.ProfitPerHa()
	}
	return s
}
