package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"agrosim/entities"
)

// LoadFromFiles starts from the built-in catalog and layers crop rows from a
// CSV file and soil rows from an XLSX workbook on top. Empty paths are skipped.
func LoadFromFiles(cropCSV, soilXLSX string) (entities.Catalog, error) {
	cat := entities.DefaultCatalog()

	if cropCSV != "" {
		f, err := os.Open(cropCSV)
		if err != nil {
			return cat, err
		}
		defer f.Close()
		crops, err := ReadCropsCSV(f)
		if err != nil {
			return cat, fmt.Errorf("%s: %w", cropCSV, err)
		}
		for _, c := range crops {
			cat.Crops[c.Key] = c
		}
		log.Printf("[catalog] %d crop rows from %s", len(crops), cropCSV)
	}

	if soilXLSX != "" {
		soils, err := ReadSoilsXLSX(soilXLSX)
		if err != nil {
			return cat, fmt.Errorf("%s: %w", soilXLSX, err)
		}
		for _, s := range soils {
			cat.Soils[s.Key] = s
		}
		log.Printf("[catalog] %d soil rows from %s", len(soils), soilXLSX)
	}
	return cat, nil
}

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

type header map[string]int

func newHeader(row []string) header {
	h := header{}
	for i, c := range row {
		h[norm(c)] = i
	}
	return h
}

// find accepts multiple aliases for one column.
func (h header) find(keys ...string) int {
	for _, k := range keys {
		if idx, ok := h[norm(k)]; ok {
			return idx
		}
	}
	return -1
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func num(rec []string, idx int) (float64, error) {
	return strconv.ParseFloat(cell(rec, idx), 64)
}

// ReadCropsCSV parses crop profiles. Required columns: key, price, expected
// yield, growth days, optimal low/high and stages ("a|b|c").
func ReadCropsCSV(r io.Reader) ([]entities.CropProfile, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return nil, err
	}
	h := newHeader(head)

	cKey := h.find("key", "crop", "crop_key")
	cName := h.find("name", "display_name")
	cPrice := h.find("price", "price_per_tonne", "price_per_ton")
	cYield := h.find("expected_yield", "yield", "yield_t_ha")
	cDays := h.find("growth_days", "days", "duration")
	cWater := h.find("water_requirement", "water_mm", "water")
	cLow := h.find("temp_low", "optimal_low", "tmin")
	cHigh := h.find("temp_high", "optimal_high", "tmax")
	cStages := h.find("stages", "growth_stages")

	for name, idx := range map[string]int{"key": cKey, "price": cPrice, "expected_yield": cYield, "growth_days": cDays, "temp_low": cLow, "temp_high": cHigh, "stages": cStages} {
		if idx == -1 {
			return nil, fmt.Errorf("crop csv missing column %q, found headers: %v", name, head)
		}
	}

	var out []entities.CropProfile
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		key := strings.ToLower(cell(rec, cKey))
		if key == "" {
			continue
		}
		c := entities.CropProfile{Key: key, Name: cell(rec, cName)}
		if c.Name == "" {
			c.Name = key
		}
		if c.PricePerTonne, err = num(rec, cPrice); err != nil {
			return nil, fmt.Errorf("line %d price: %w", line, err)
		}
		if c.ExpectedYield, err = num(rec, cYield); err != nil {
			return nil, fmt.Errorf("line %d expected_yield: %w", line, err)
		}
		days, err := strconv.Atoi(cell(rec, cDays))
		if err != nil || days <= 0 {
			return nil, fmt.Errorf("line %d: growth_days must be a positive integer", line)
		}
		c.GrowthDays = days
		if cWater != -1 && cell(rec, cWater) != "" {
			if c.WaterRequirement, err = num(rec, cWater); err != nil {
				return nil, fmt.Errorf("line %d water_requirement: %w", line, err)
			}
		}
		if c.OptimalTemp[0], err = num(rec, cLow); err != nil {
			return nil, fmt.Errorf("line %d temp_low: %w", line, err)
		}
		if c.OptimalTemp[1], err = num(rec, cHigh); err != nil {
			return nil, fmt.Errorf("line %d temp_high: %w", line, err)
		}
		if c.OptimalTemp[0] > c.OptimalTemp[1] {
			return nil, fmt.Errorf("line %d: temp_low above temp_high", line)
		}
		for _, s := range strings.Split(cell(rec, cStages), "|") {
			if s = strings.TrimSpace(s); s != "" {
				c.Stages = append(c.Stages, s)
			}
		}
		if len(c.Stages) == 0 {
			return nil, fmt.Errorf("line %d: no stages", line)
		}
		out = append(out, c)
	}
	return out, nil
}

// ReadSoilsXLSX reads soil coefficients from the first sheet of a workbook.
func ReadSoilsXLSX(path string) ([]entities.SoilProfile, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("soil sheet is empty")
	}

	h := newHeader(rows[0])
	cKey := h.find("key", "soil", "soil_type", "texture")
	cDrain := h.find("drainage")
	cFert := h.find("fertility")
	cHold := h.find("water_holding", "waterholding", "holding")
	if cKey == -1 || cDrain == -1 || cFert == -1 || cHold == -1 {
		return nil, fmt.Errorf("soil sheet needs key, drainage, fertility, water_holding; found %v", rows[0])
	}

	var out []entities.SoilProfile
	for i, rec := range rows[1:] {
		key := strings.ToLower(cell(rec, cKey))
		if key == "" {
			continue
		}
		s := entities.SoilProfile{Key: key}
		vals := []*float64{&s.Drainage, &s.Fertility, &s.WaterHolding}
		for j, idx := range []int{cDrain, cFert, cHold} {
			v, err := num(rec, idx)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+2, err)
			}
			if v < 0 || v > 1 {
				return nil, fmt.Errorf("row %d: coefficient %.2f outside [0,1]", i+2, v)
			}
			*vals[j] = v
		}
		out = append(out, s)
	}
	return out, nil
}
