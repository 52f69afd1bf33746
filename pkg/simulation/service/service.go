package service

import (
	"context"
	"io"

	"agrosim/entities"
	"agrosim/pkg/export"
	"agrosim/pkg/simulation/engine"
)

type SimulationService interface {
	Snapshot() engine.Snapshot
	Catalog() entities.Catalog
	Configure(cfg entities.FarmConfig) (engine.Snapshot, error)
	Start() (engine.Snapshot, error)
	Pause() engine.Snapshot
	Reset() engine.Snapshot
	Step() engine.Snapshot
	Export(w io.Writer, f export.Format) error
	Harvests(limit int) ([]entities.HarvestLog, error)
	HarvestsByRun(runID string) ([]entities.HarvestLog, error)
	// Run drives the wall clock until ctx is done.
	Run(ctx context.Context)
}
