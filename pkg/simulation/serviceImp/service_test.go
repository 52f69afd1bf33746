package serviceImp_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"agrosim/entities"
	"agrosim/pkg/export"
	"agrosim/pkg/simulation/engine"
	"agrosim/pkg/simulation/serviceImp"
	"agrosim/pkg/stream"
)

type memLedger struct {
	rows []entities.HarvestLog
	fail bool
}

func (m *memLedger) Create(h *entities.HarvestLog) error {
	if m.fail {
		return errors.New("disk full")
	}
	m.rows = append(m.rows, *h)
	return nil
}

func (m *memLedger) List(limit int) ([]entities.HarvestLog, error) { return m.rows, nil }

func (m *memLedger) FindByRunID(runID string) ([]entities.HarvestLog, error) {
	var out []entities.HarvestLog
	for _, r := range m.rows {
		if r.RunID == runID {
			out = append(out, r)
		}
	}
	return out, nil
}

func newEngine(t *testing.T, crop string) *engine.Engine {
	t.Helper()
	cfg := entities.DefaultFarmConfig()
	cfg.CropKey = crop
	eng, err := engine.New(entities.DefaultCatalog(), cfg, 7)
	require.NoError(t, err)
	return eng
}

func TestHarvestIsRecordedOnce(t *testing.T) {
	ledger := &memLedger{}
	svc := serviceImp.New(newEngine(t, "tomato"), ledger, nil, 0)

	for i := 0; i < 100; i++ {
		svc.Step()
	}
	require.Len(t, ledger.rows, 1)
	row := ledger.rows[0]
	snap := svc.Snapshot()
	require.Equal(t, snap.RunID, row.RunID)
	require.Equal(t, 90, row.Day)
	require.Equal(t, "tomato", row.CropKey)
	require.InDelta(t, snap.Harvest.TotalCost, row.SeedCost+row.FertilizerCost+row.IrrigationCost+row.PestCost+row.LaborCost, 1e-6)

	rows, err := svc.HarvestsByRun(snap.RunID)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// a new run gets a new id and its own row
	svc.Reset()
	for i := 0; i < 90; i++ {
		svc.Step()
	}
	require.Len(t, ledger.rows, 2)
	require.NotEqual(t, ledger.rows[0].RunID, ledger.rows[1].RunID)
}

func TestLedgerFailureDoesNotStopTheRun(t *testing.T) {
	svc := serviceImp.New(newEngine(t, "tomato"), &memLedger{fail: true}, nil, 0)
	for i := 0; i < 95; i++ {
		svc.Step()
	}
	require.Equal(t, 95, svc.Snapshot().Day)
}

func TestExportUsesRetainedHistory(t *testing.T) {
	svc := serviceImp.New(newEngine(t, "corn"), nil, nil, 0)
	var buf bytes.Buffer
	require.NoError(t, svc.Export(&buf, export.FormatCSV))
	require.Equal(t, 1, strings.Count(buf.String(), "\n"))

	for i := 0; i < 3; i++ {
		svc.Step()
	}
	buf.Reset()
	require.NoError(t, svc.Export(&buf, export.FormatCSV))
	require.Equal(t, 4, strings.Count(buf.String(), "\n"))

	rows, err := svc.Harvests(10)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestTicksAreStreamed(t *testing.T) {
	hub := stream.NewHub()
	svc := serviceImp.New(newEngine(t, "corn"), nil, hub, 0)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	next := func() engine.Snapshot {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, b, err := conn.ReadMessage()
		require.NoError(t, err)
		var s engine.Snapshot
		require.NoError(t, json.Unmarshal(b, &s))
		return s
	}

	require.Equal(t, 0, next().Day)
	svc.Step()
	s := next()
	require.Equal(t, 1, s.Day)
	require.Len(t, s.History, 1)

	_, err = svc.Start()
	require.NoError(t, err)
	require.Equal(t, engine.StatusRunning, next().Status)
}
