package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// CSVStore keeps wallets in a users file with one row per vehicle:
//
//	vehicle_id,vehicle_type,balance
//
// Save rewrites the row for the debited vehicle and writes the whole
// file back, preserving row order.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

func (s *CSVStore) LoadAll() ([]Wallet, error) {
	rows, err := s.readAll()
	if err != nil {
		return nil, err
	}

	wallets := make([]Wallet, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("users file %s: row %d has %d fields, want 3", s.path, i+1, len(row))
		}
		balance, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("users file %s: row %d: bad balance %q: %w", s.path, i+1, row[2], err)
		}
		wallets = append(wallets, Wallet{
			VehicleID:   row[0],
			VehicleType: row[1],
			Balance:     balance,
		})
	}
	return wallets, nil
}

func (s *CSVStore) Save(vehicleID string, balance float64) error {
	rows, err := s.readAll()
	if err != nil {
		return err
	}

	found := false
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}
		if row[0] == vehicleID {
			row[2] = strconv.FormatFloat(balance, 'f', 2, 64)
			found = true
		}
	}
	if !found {
		return fmt.Errorf("users file %s: vehicle %s not found", s.path, vehicleID)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("rewrite users file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("rewrite users file: %w", err)
	}
	return f.Close()
}

func (s *CSVStore) Close() error { return nil }

func (s *CSVStore) readAll() ([][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open users file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read users file %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("users file %s is empty", s.path)
	}
	return rows, nil
}
