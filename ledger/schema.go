package ledger

const Schema = `
CREATE TABLE IF NOT EXISTS wallets (
	vehicle_id TEXT PRIMARY KEY,
	vehicle_type TEXT NOT NULL,
	balance REAL NOT NULL
);
`
