package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTransaction(tx Transaction) error {
	_, err := j.db.Exec(`
		INSERT INTO transactions
		(transaction_id, vehicle_id, time, start_lon, start_lat, end_lon, end_lat,
		 distance_km, avg_speed_kmh,
		 distance_price, overspeed_price, vehicle_type_price,
		 peak_time_price, tax_price, road_type_price, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.VehicleID, tx.Time,
		tx.Start.Lon, tx.Start.Lat, tx.End.Lon, tx.End.Lat,
		tx.DistanceKm, tx.AvgSpeedKmh,
		tx.Price.DistancePrice, tx.Price.OverspeedPrice, tx.Price.VehicleTypePrice,
		tx.Price.PeakTimePrice, tx.Price.TaxPrice, tx.Price.RoadTypePrice,
		tx.Price.Total,
	)
	return err
}

// ListByVehicle returns a vehicle's committed transactions in time order.
func (j *SQLiteJournal) ListByVehicle(vehicleID string) ([]Transaction, error) {
	rows, err := j.db.Query(`
		SELECT transaction_id, vehicle_id, time, start_lon, start_lat, end_lon, end_lat,
		       distance_km, avg_speed_kmh,
		       distance_price, overspeed_price, vehicle_type_price,
		       peak_time_price, tax_price, road_type_price, total
		FROM transactions WHERE vehicle_id = ? ORDER BY time`, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		var tx Transaction
		err := rows.Scan(
			&tx.ID, &tx.VehicleID, &tx.Time,
			&tx.Start.Lon, &tx.Start.Lat, &tx.End.Lon, &tx.End.Lat,
			&tx.DistanceKm, &tx.AvgSpeedKmh,
			&tx.Price.DistancePrice, &tx.Price.OverspeedPrice, &tx.Price.VehicleTypePrice,
			&tx.Price.PeakTimePrice, &tx.Price.TaxPrice, &tx.Price.RoadTypePrice,
			&tx.Price.Total,
		)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
