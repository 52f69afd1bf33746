// Package export renders retained history records as downloadable tables.
package export

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/xuri/excelize/v2"

	"agrosim/entities"
)

type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatHTML    Format = "html"
	FormatCSVZstd Format = "csv.zst"
)

// BaseName is the download name without extension.
const BaseName = "agriculture_simulation_data"

var Header = []string{
	"Day", "Growth(%)", "Soil_Moisture(%)", "Temperature(C)", "Rainfall(mm)",
	"Biomass", "Pests(%)", "Yield(t/ha)", "Profit($/ha)",
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX, FormatHTML, FormatCSVZstd:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// FormatFromPath picks the format from a file name's extension.
func FormatFromPath(path string) (Format, error) {
	if strings.HasSuffix(path, "."+string(FormatCSVZstd)) {
		return FormatCSVZstd, nil
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("no extension in %q", path)
	}
	return ParseFormat(ext)
}

func (f Format) Filename() string { return BaseName + "." + string(f) }

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatCSVZstd:
		return "application/zstd"
	}
	return "text/csv; charset=utf-8"
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Row renders one record as decimal text in header order.
func Row(r entities.HistoryRecord) []string {
	return []string{
		strconv.Itoa(r.Day), num(r.Growth), num(r.SoilMoisture), num(r.Temperature), num(r.Rainfall),
		num(r.Biomass), num(r.Pests), num(r.Yield), num(r.Profit),
	}
}

// Write renders recs, oldest first, in the given format.
func Write(w io.Writer, f Format, recs []entities.HistoryRecord) error {
	switch f {
	case FormatCSV:
		return CSV(w, recs)
	case FormatXLSX:
		return XLSX(w, recs)
	case FormatHTML:
		return HTML(w, recs)
	case FormatCSVZstd:
		return CSVZstd(w, recs)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

func CSV(w io.Writer, recs []entities.HistoryRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write(Row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func CSVZstd(w io.Writer, recs []entities.HistoryRecord) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := CSV(enc, recs); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

const sheet = "History"

func XLSX(w io.Writer, recs []entities.HistoryRecord) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	head := make([]interface{}, len(Header))
	for i, h := range Header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return err
	}
	for i, r := range recs {
		row := []interface{}{r.Day, r.Growth, r.SoilMoisture, r.Temperature, r.Rainfall, r.Biomass, r.Pests, r.Yield, r.Profit}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}

var page = template.Must(template.New("history").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Agriculture simulation history</title></head>
<body>
<table id="history">
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

func HTML(w io.Writer, recs []entities.HistoryRecord) error {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, Row(r))
	}
	return page.Execute(w, struct {
		Header []string
		Rows   [][]string
	}{Header, rows})
}
