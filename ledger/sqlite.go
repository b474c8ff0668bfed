package ledger

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) LoadAll() ([]Wallet, error) {
	rows, err := s.db.Query(`SELECT vehicle_id, vehicle_type, balance FROM wallets`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []Wallet
	for rows.Next() {
		var w Wallet
		if err := rows.Scan(&w.VehicleID, &w.VehicleType, &w.Balance); err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

func (s *SQLiteStore) Save(vehicleID string, balance float64) error {
	res, err := s.db.Exec(`UPDATE wallets SET balance = ? WHERE vehicle_id = ?`, balance, vehicleID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("vehicle %s not found", vehicleID)
	}
	return nil
}

// Register inserts or replaces a wallet row. Used by provisioning, not by
// the debit path.
func (s *SQLiteStore) Register(w Wallet) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO wallets (vehicle_id, vehicle_type, balance)
		VALUES (?, ?, ?)`,
		w.VehicleID, w.VehicleType, w.Balance,
	)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
