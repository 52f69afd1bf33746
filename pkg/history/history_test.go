package history_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"agrosim/entities"
	"agrosim/pkg/history"
)

func TestRingKeepsMostRecent(t *testing.T) {
	r := history.New(history.Capacity)
	for day := 1; day <= 150; day++ {
		r.Append(entities.HistoryRecord{Day: day})
		require.LessOrEqual(t, r.Len(), history.Capacity)
	}

	recs := r.Records()
	require.Len(t, recs, 100)
	for i, rec := range recs {
		require.Equal(t, 51+i, rec.Day)
	}
	last, ok := r.Last()
	require.True(t, ok)
	require.Equal(t, 150, last.Day)
}

func TestRingPartial(t *testing.T) {
	r := history.New(5)
	_, ok := r.Last()
	require.False(t, ok)
	require.Empty(t, r.Records())

	r.Append(entities.HistoryRecord{Day: 1})
	r.Append(entities.HistoryRecord{Day: 2})
	require.Equal(t, []entities.HistoryRecord{{Day: 1}, {Day: 2}}, r.Records())
}

func TestRingClearAndClone(t *testing.T) {
	r := history.New(3)
	for day := 1; day <= 4; day++ {
		r.Append(entities.HistoryRecord{Day: day})
	}
	c := r.Clone()
	r.Clear()
	require.Equal(t, 0, r.Len())
	require.Equal(t, 3, r.Cap())

	recs := c.Records()
	require.Len(t, recs, 3)
	require.Equal(t, 2, recs[0].Day)
	require.Equal(t, 4, recs[2].Day)

	r.Append(entities.HistoryRecord{Day: 9})
	require.Equal(t, 9, r.Records()[0].Day)
	require.Len(t, c.Records(), 3)
}

func TestRecordsIsACopy(t *testing.T) {
	r := history.New(2)
	r.Append(entities.HistoryRecord{Day: 1})
	recs := r.Records()
	recs[0].Day = 99
	require.Equal(t, 1, r.Records()[0].Day)
}

func TestZeroRingIsUsable(t *testing.T) {
	var r history.Ring
	require.Empty(t, r.Records())
	_, ok := r.Last()
	require.False(t, ok)

	for day := 1; day <= history.Capacity+5; day++ {
		r.Append(entities.HistoryRecord{Day: day})
	}
	require.Equal(t, history.Capacity, r.Len())
	require.Equal(t, history.Capacity, r.Cap())
	require.Equal(t, 6, r.Records()[0].Day)
}
