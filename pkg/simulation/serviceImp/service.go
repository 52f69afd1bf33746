package serviceImp

import (
	"context"
	"io"
	"log"
	"time"

	"agrosim/entities"
	"agrosim/pkg/export"
	harvestRepo "agrosim/pkg/harvest/repository"
	"agrosim/pkg/simulation/engine"
	"agrosim/pkg/simulation/service"
	"agrosim/pkg/stream"
)

type simSvc struct {
	eng    *engine.Engine
	ledger harvestRepo.Repo
	hub    *stream.Hub
	period time.Duration
}

// New wires the engine callbacks to the ledger and the stream hub. Either of
// those may be nil. Call it before the clock starts.
func New(eng *engine.Engine, ledger harvestRepo.Repo, hub *stream.Hub, period time.Duration) service.SimulationService {
	s := &simSvc{eng: eng, ledger: ledger, hub: hub, period: period}

	eng.OnHarvest = s.recordHarvest
	if hub != nil {
		eng.OnTick = func(snap engine.Snapshot) { hub.Broadcast(snap) }
		hub.Initial = func() any { return eng.Snapshot() }
	}
	return s
}

func (s *simSvc) recordHarvest(runID string, cfg entities.FarmConfig, h entities.HarvestResult, pest entities.PestState) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.Create(entities.NewHarvestLog(runID, cfg, pest.Level, h)); err != nil {
		log.Printf("[harvest] ledger write failed run=%s: %v", runID, err)
	}
}

// publish pushes state changes that do not go through a tick.
func (s *simSvc) publish() engine.Snapshot {
	snap := s.eng.Snapshot()
	if s.hub != nil {
		s.hub.Broadcast(snap)
	}
	return snap
}

func (s *simSvc) Snapshot() engine.Snapshot { return s.eng.Snapshot() }

func (s *simSvc) Catalog() entities.Catalog { return s.eng.Catalog() }

func (s *simSvc) Configure(cfg entities.FarmConfig) (engine.Snapshot, error) {
	if _, err := s.eng.Configure(cfg); err != nil {
		return s.eng.Snapshot(), err
	}
	return s.publish(), nil
}

func (s *simSvc) Start() (engine.Snapshot, error) {
	if err := s.eng.Start(); err != nil {
		return s.eng.Snapshot(), err
	}
	return s.publish(), nil
}

func (s *simSvc) Pause() engine.Snapshot {
	s.eng.Pause()
	return s.publish()
}

func (s *simSvc) Reset() engine.Snapshot {
	s.eng.Reset()
	return s.publish()
}

// Step runs one day by hand; the tick callback broadcasts it.
func (s *simSvc) Step() engine.Snapshot {
	s.eng.Step()
	return s.eng.Snapshot()
}

func (s *simSvc) Export(w io.Writer, f export.Format) error {
	return export.Write(w, f, s.eng.History())
}

func (s *simSvc) Harvests(limit int) ([]entities.HarvestLog, error) {
	if s.ledger == nil {
		return nil, nil
	}
	return s.ledger.List(limit)
}

func (s *simSvc) HarvestsByRun(runID string) ([]entities.HarvestLog, error) {
	if s.ledger == nil {
		return nil, nil
	}
	return s.ledger.FindByRunID(runID)
}

func (s *simSvc) Run(ctx context.Context) { s.eng.Run(ctx, s.period) }
