package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tollgate/geo"
	"github.com/rustyeddy/tollgate/pricing"
)

func sampleTx(id, vehicleID string) Transaction {
	return Transaction{
		ID:        id,
		VehicleID: vehicleID,
		Time:      time.Date(2024, 6, 1, 8, 6, 0, 0, time.UTC),
		Start:     geo.Point{Lon: 77.5540, Lat: 13.2130},
		End:       geo.Point{Lon: 77.5540, Lat: 13.2580},

		DistanceKm:  5,
		AvgSpeedKmh: 50,

		Price: pricing.Breakdown{
			DistancePrice:    0.5,
			VehicleTypePrice: 20,
			PeakTimePrice:    10,
			TaxPrice:         5,
			RoadTypePrice:    10,
			Total:            45.5,
		},
	}
}

func TestCSVJournalWritesPerVehicleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	j, err := NewCSV(dir)
	require.NoError(t, err)

	require.NoError(t, j.RecordTransaction(sampleTx("T1", "KA01AB1234")))
	require.NoError(t, j.RecordTransaction(sampleTx("T2", "KA01AB1234")))
	require.NoError(t, j.RecordTransaction(sampleTx("T3", "KA02CD5678")))
	require.NoError(t, j.Close())

	data, err := os.ReadFile(filepath.Join(dir, "KA01AB1234.csv"))
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(string(data)))
	rows, err := r.ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3) // header + two records
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "T1", rows[1][0])
	assert.Equal(t, "T2", rows[2][0])
	assert.Equal(t, "45.500000", rows[1][len(rows[1])-1])

	other, err := os.ReadFile(filepath.Join(dir, "KA02CD5678.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(other), "T3")
}

func TestCSVJournalAppendsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	j, err := NewCSV(dir)
	require.NoError(t, err)
	require.NoError(t, j.RecordTransaction(sampleTx("T1", "V1")))
	require.NoError(t, j.Close())

	j, err = NewCSV(dir)
	require.NoError(t, err)
	require.NoError(t, j.RecordTransaction(sampleTx("T2", "V1")))
	require.NoError(t, j.Close())

	data, err := os.ReadFile(filepath.Join(dir, "V1.csv"))
	require.NoError(t, err)

	// Single header, both records.
	assert.Equal(t, 1, strings.Count(string(data), "transaction_id"))
	assert.Contains(t, string(data), "T1")
	assert.Contains(t, string(data), "T2")
}
