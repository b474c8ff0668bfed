package journal

const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
	transaction_id TEXT PRIMARY KEY,
	vehicle_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	start_lon REAL NOT NULL,
	start_lat REAL NOT NULL,
	end_lon REAL NOT NULL,
	end_lat REAL NOT NULL,
	distance_km REAL NOT NULL,
	avg_speed_kmh REAL NOT NULL,
	distance_price REAL NOT NULL,
	overspeed_price REAL NOT NULL,
	vehicle_type_price REAL NOT NULL,
	peak_time_price REAL NOT NULL,
	tax_price REAL NOT NULL,
	road_type_price REAL NOT NULL,
	total REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_vehicle ON transactions(vehicle_id, time);
`
