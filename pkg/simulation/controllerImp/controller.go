package controllerImp

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"agrosim/entities"
	"agrosim/pkg/export"
	"agrosim/pkg/simulation/service"
)

// configSchema bounds the sliders; catalog membership is checked by the engine.
const configSchema = `{
  "type": "object",
  "additionalProperties": false,
  "minProperties": 1,
  "properties": {
    "crop":            {"type": "string", "minLength": 1},
    "soil":            {"type": "string", "minLength": 1},
    "irrigation":      {"enum": ["rain", "sprinkler", "drip"]},
    "field_size_ha":   {"type": "number", "minimum": 10, "maximum": 500},
    "fertilizer_rate": {"type": "number", "minimum": 50, "maximum": 300}
  }
}`

var farmSchema = jsonschema.MustCompileString("farm_config.schema.json", configSchema)

type SimCtrl struct{ s service.SimulationService }

func New(s service.SimulationService) *SimCtrl { return &SimCtrl{s: s} }

func (h *SimCtrl) Get(c echo.Context) error { return c.JSON(http.StatusOK, h.s.Snapshot()) }

// Configure merges the posted fields into the current farm config.
func (h *SimCtrl) Configure(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable body"})
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := farmSchema.Validate(doc); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	cfg := h.s.Snapshot().Config
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&cfg); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	snap, err := h.s.Configure(cfg)
	if err != nil {
		return configError(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

func configError(c echo.Context, err error) error {
	if errors.Is(err, entities.ErrInvalidConfiguration) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func (h *SimCtrl) Start(c echo.Context) error {
	snap, err := h.s.Start()
	if err != nil {
		return configError(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *SimCtrl) Pause(c echo.Context) error { return c.JSON(http.StatusOK, h.s.Pause()) }

func (h *SimCtrl) Reset(c echo.Context) error { return c.JSON(http.StatusOK, h.s.Reset()) }

func (h *SimCtrl) Step(c echo.Context) error { return c.JSON(http.StatusOK, h.s.Step()) }

func (h *SimCtrl) Export(c echo.Context) error {
	f, err := export.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	var buf bytes.Buffer
	if err := h.s.Export(&buf, f); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+f.Filename()+`"`)
	return c.Blob(http.StatusOK, f.ContentType(), buf.Bytes())
}

func (h *SimCtrl) Harvests(c echo.Context) error {
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = n
	}
	list, err := h.s.Harvests(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if list == nil {
		list = []entities.HarvestLog{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *SimCtrl) HarvestsByRun(c echo.Context) error {
	list, err := h.s.HarvestsByRun(c.Param("run_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if len(list) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, list)
}

type catalogResp struct {
	Crops       []entities.CropProfile    `json:"crops"`
	Soils       []entities.SoilProfile    `json:"soils"`
	Irrigation  []entities.IrrigationMode `json:"irrigation"`
	FieldSizeHa [2]float64                `json:"field_size_ha"`
	Fertilizer  [2]float64                `json:"fertilizer_rate"`
}

func (h *SimCtrl) Catalog(c echo.Context) error {
	cat := h.s.Catalog()
	resp := catalogResp{
		Irrigation:  []entities.IrrigationMode{entities.IrrigationRain, entities.IrrigationSprinkler, entities.IrrigationDrip},
		FieldSizeHa: [2]float64{entities.MinFieldSizeHa, entities.MaxFieldSizeHa},
		Fertilizer:  [2]float64{entities.MinFertilizerRate, entities.MaxFertilizerRate},
	}
	for _, k := range cat.CropKeys() {
		resp.Crops = append(resp.Crops, cat.Crops[k])
	}
	for _, k := range cat.SoilKeys() {
		resp.Soils = append(resp.Soils, cat.Soils[k])
	}
	return c.JSON(http.StatusOK, resp)
}
