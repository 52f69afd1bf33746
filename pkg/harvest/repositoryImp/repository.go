package repositoryImp

import (
	"gorm.io/gorm"

	"agrosim/entities"
	"agrosim/pkg/harvest/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repo { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Create(h *entities.HarvestLog) error { return r.db.Create(h).Error }

func (r *sqliteRepo) List(limit int) ([]entities.HarvestLog, error) {
	q := r.db.Model(&entities.HarvestLog{}).Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var list []entities.HarvestLog
	return list, q.Find(&list).Error
}

func (r *sqliteRepo) FindByRunID(runID string) ([]entities.HarvestLog, error) {
	var list []entities.HarvestLog
	return list, r.db.Where("run_id = ?", runID).Order("id asc").Find(&list).Error
}
