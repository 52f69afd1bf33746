package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agrosim/pkg/simulation/controller"
)

func New(
	e *echo.Echo,
	simCtrl controller.SimulationController,
	streamHandler http.Handler,
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	e.GET("/catalog", simCtrl.Catalog)

	g := e.Group("/sim")
	g.GET("", simCtrl.Get)
	g.PUT("/config", simCtrl.Configure)
	g.POST("/start", simCtrl.Start)
	g.POST("/pause", simCtrl.Pause)
	g.POST("/reset", simCtrl.Reset)
	g.POST("/step", simCtrl.Step)
	g.GET("/export", simCtrl.Export)
	g.GET("/harvests", simCtrl.Harvests)
	g.GET("/harvests/:run_id", simCtrl.HarvestsByRun)
	if streamHandler != nil {
		g.GET("/stream", echo.WrapHandler(streamHandler))
	}
	return e
}
