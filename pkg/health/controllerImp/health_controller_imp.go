package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agrosim/pkg/simulation/engine"
)

var appStart = time.Now()

type HealthCtrl struct {
	db  *gorm.DB
	sim func() engine.Snapshot
}

// NewHealthCtrl reports on the ledger database and, when sim is set, the run.
func NewHealthCtrl(db *gorm.DB, sim func() engine.Snapshot) *HealthCtrl {
	return &HealthCtrl{db: db, sim: sim}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) pingDB(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.pingDB(ctx)
	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     map[string]any{"database": db},
		"time":       time.Now().Format(time.RFC3339),
	}
	if h.sim != nil {
		snap := h.sim()
		resp["simulation"] = map[string]any{
			"run_id": snap.RunID,
			"status": snap.Status,
			"day":    snap.Day,
		}
	}
	return c.JSON(status, resp)
}
