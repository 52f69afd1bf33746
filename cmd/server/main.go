package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"agrosim/config"
	"agrosim/database"
	"agrosim/router"

	"agrosim/pkg/catalog"
	harvestRepoImp "agrosim/pkg/harvest/repositoryImp"
	healthCtrlImp "agrosim/pkg/health/controllerImp"
	"agrosim/pkg/simulation/engine"
	simCtrlImp "agrosim/pkg/simulation/controllerImp"
	simSvcImp "agrosim/pkg/simulation/serviceImp"
	"agrosim/pkg/stream"
)

func main() {
	// 1) Config
	cfg := config.Load()
	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		log.Fatalf("tuning: %v", err)
	}
	if cfg.SeedSet {
		tuning.Seed = cfg.Seed
	}

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Crop and soil catalog
	cat, err := catalog.LoadFromFiles(cfg.CropCSV, cfg.SoilXLSX)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	// 4) Engine
	eng, err := engine.New(cat, tuning.Farm, tuning.Seed)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
	eng.AutoPauseAtHarvest = tuning.AutoPauseAtHarvest

	// 5) Service wiring: ledger + live stream
	hub := stream.NewHub()
	svc := simSvcImp.New(eng, harvestRepoImp.New(db), hub, tuning.TickPeriod())

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Logger())

	r := router.New(e, simCtrlImp.New(svc), hub, healthCtrlImp.NewHealthCtrl(db, svc.Snapshot))

	// 7) Clock
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go svc.Run(ctx)

	// 8) Start
	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
