package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"agrosim/entities"
	"agrosim/pkg/simulation/engine"
	simSvcImp "agrosim/pkg/simulation/serviceImp"
)

func TestWriteExport(t *testing.T) {
	eng, err := engine.New(entities.DefaultCatalog(), entities.DefaultFarmConfig(), 42)
	require.NoError(t, err)
	svc := simSvcImp.New(eng, nil, nil, 0)
	for i := 0; i < 3; i++ {
		svc.Step()
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "run.csv")
	require.NoError(t, writeExport(svc, path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[0], "Day,Growth(%)"))

	require.Error(t, writeExport(svc, filepath.Join(dir, "run.pdf")))
	require.Error(t, writeExport(svc, filepath.Join(dir, "missing", "run.csv")))
}
