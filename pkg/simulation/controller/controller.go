package controller

import "github.com/labstack/echo/v4"

type SimulationController interface {
	Get(c echo.Context) error
	Configure(c echo.Context) error
	Start(c echo.Context) error
	Pause(c echo.Context) error
	Reset(c echo.Context) error
	Step(c echo.Context) error
	Export(c echo.Context) error
	Harvests(c echo.Context) error
	HarvestsByRun(c echo.Context) error
	Catalog(c echo.Context) error
}
