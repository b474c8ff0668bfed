package ledger

// Store is the persistence collaborator behind the Ledger: a full load at
// startup and one save per successful debit.
type Store interface {
	LoadAll() ([]Wallet, error)
	Save(vehicleID string, balance float64) error
	Close() error
}
