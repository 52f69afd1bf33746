package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agrosim/pkg/catalog"
)

const cropsCSV = "\uFEFFCrop Key,Display Name,Price_per_tonne,Yield,Days,Water,Temp Low,Temp High,Growth Stages\n" +
	"Rice,Paddy Rice,400,6.5,150,1200,22,32,germination|tillering|heading|ripening\n" +
	"corn,Corn (Maize),250,11.5,120,500,20,30,germination|vegetative|flowering|grain_filling|maturity\n" +
	",,,,,,,,\n"

func TestReadCropsCSV(t *testing.T) {
	crops, err := catalog.ReadCropsCSV(strings.NewReader(cropsCSV))
	require.NoError(t, err)
	require.Len(t, crops, 2)

	rice := crops[0]
	require.Equal(t, "rice", rice.Key)
	require.Equal(t, "Paddy Rice", rice.Name)
	require.Equal(t, 400.0, rice.PricePerTonne)
	require.Equal(t, 6.5, rice.ExpectedYield)
	require.Equal(t, 150, rice.GrowthDays)
	require.Equal(t, 1200.0, rice.WaterRequirement)
	require.Equal(t, [2]float64{22, 32}, rice.OptimalTemp)
	require.Equal(t, []string{"germination", "tillering", "heading", "ripening"}, rice.Stages)
}

func TestReadCropsCSVRejectsBadRows(t *testing.T) {
	_, err := catalog.ReadCropsCSV(strings.NewReader("key,price\ncorn,1\n"))
	require.Error(t, err)

	bad := "key,price,expected_yield,growth_days,temp_low,temp_high,stages\nx,1,1,0,10,20,a|b\n"
	_, err = catalog.ReadCropsCSV(strings.NewReader(bad))
	require.ErrorContains(t, err, "growth_days")

	bad = "key,price,expected_yield,growth_days,temp_low,temp_high,stages\nx,1,1,10,30,20,a|b\n"
	_, err = catalog.ReadCropsCSV(strings.NewReader(bad))
	require.ErrorContains(t, err, "temp_low")
}

func writeSoils(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &r))
	}
	path := filepath.Join(t.TempDir(), "soils.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadFromFilesMergesOverrides(t *testing.T) {
	dir := t.TempDir()
	cropPath := filepath.Join(dir, "crops.csv")
	require.NoError(t, os.WriteFile(cropPath, []byte(cropsCSV), 0o644))

	soilPath := writeSoils(t, [][]interface{}{
		{"Soil Type", "Drainage", "Fertility", "Water Holding"},
		{"peat", 0.2, 0.95, 0.95},
		{"Sand", 0.85, 0.35, 0.3},
	})

	cat, err := catalog.LoadFromFiles(cropPath, soilPath)
	require.NoError(t, err)

	require.Contains(t, cat.Crops, "rice")
	require.Equal(t, 250.0, cat.Crops["corn"].PricePerTonne)
	require.Contains(t, cat.Crops, "tomato")

	require.Equal(t, 0.95, cat.Soils["peat"].Fertility)
	require.Equal(t, 0.85, cat.Soils["sand"].Drainage)
	require.Equal(t, 0.7, cat.Soils["loam"].Drainage)
}

func TestReadSoilsXLSXRange(t *testing.T) {
	path := writeSoils(t, [][]interface{}{
		{"key", "drainage", "fertility", "water_holding"},
		{"rock", 1.5, 0.1, 0.1},
	})
	_, err := catalog.ReadSoilsXLSX(path)
	require.ErrorContains(t, err, "outside [0,1]")
}

func TestLoadFromFilesDefaults(t *testing.T) {
	cat, err := catalog.LoadFromFiles("", "")
	require.NoError(t, err)
	require.Equal(t, []string{"corn", "soybean", "tomato", "wheat"}, cat.CropKeys())
	require.Equal(t, []string{"clay", "loam", "sand", "silt"}, cat.SoilKeys())
}
