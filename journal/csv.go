package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

var csvHeader = []string{
	"transaction_id", "time", "start_lon", "start_lat", "end_lon", "end_lat",
	"distance_km", "avg_speed_kmh",
	"distance_price", "overspeed_price", "vehicle_type_price",
	"peak_time_price", "tax_price", "road_type_price", "total",
}

// CSVJournal appends each vehicle's transactions to its own
// <vehicle_id>.csv under dir, creating the file with a header row on
// first use.
type CSVJournal struct {
	mu    sync.Mutex
	dir   string
	files map[string]*os.File
}

func NewCSV(dir string) (*CSVJournal, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	return &CSVJournal{dir: dir, files: make(map[string]*os.File)}, nil
}

func (j *CSVJournal) RecordTransaction(tx Transaction) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := j.fileFor(tx.VehicleID)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	err = w.Write([]string{
		tx.ID,
		tx.Time.Format(time.RFC3339),
		f6(tx.Start.Lon), f6(tx.Start.Lat),
		f6(tx.End.Lon), f6(tx.End.Lat),
		f6(tx.DistanceKm), f6(tx.AvgSpeedKmh),
		f6(tx.Price.DistancePrice), f6(tx.Price.OverspeedPrice),
		f6(tx.Price.VehicleTypePrice), f6(tx.Price.PeakTimePrice),
		f6(tx.Price.TaxPrice), f6(tx.Price.RoadTypePrice),
		f6(tx.Price.Total),
	})
	if err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func (j *CSVJournal) fileFor(vehicleID string) (*os.File, error) {
	if f, ok := j.files[vehicleID]; ok {
		return f, nil
	}

	path := filepath.Join(j.dir, vehicleID+".csv")
	info, statErr := os.Stat(path)
	fresh := statErr != nil || info.Size() == 0

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open transaction log for %s: %w", vehicleID, err)
	}

	if fresh {
		w := csv.NewWriter(f)
		if err := w.Write(csvHeader); err != nil {
			f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	}

	j.files[vehicleID] = f
	return f, nil
}

func (j *CSVJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var firstErr error
	for _, f := range j.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	j.files = make(map[string]*os.File)
	return firstErr
}

func f6(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
