package repository

import "agrosim/entities"

type Repo interface {
	Create(h *entities.HarvestLog) error
	// List returns the newest rows first; limit <= 0 means no limit.
	List(limit int) ([]entities.HarvestLog, error)
	FindByRunID(runID string) ([]entities.HarvestLog, error)
}
