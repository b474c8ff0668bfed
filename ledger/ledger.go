package ledger

import (
	"fmt"
	"log/slog"
	"sync"
)

// DebitResult reports the outcome of a TryDebit call. Expected failures
// (insufficient funds, unknown vehicle) are results, not errors.
type DebitResult int

const (
	DebitOK DebitResult = iota
	DebitInsufficient
	DebitUnknownVehicle
	DebitStoreError
)

func (r DebitResult) String() string {
	switch r {
	case DebitOK:
		return "ok"
	case DebitInsufficient:
		return "insufficient_funds"
	case DebitUnknownVehicle:
		return "unknown_vehicle"
	case DebitStoreError:
		return "store_error"
	}
	return fmt.Sprintf("DebitResult(%d)", int(r))
}

// Wallet is one vehicle's prepaid account.
type Wallet struct {
	VehicleID   string
	VehicleType string
	Balance     float64
}

// Ledger holds every prepaid wallet and applies debits atomically.
// A single mutex covers check, subtract and persist; a balance can never
// go negative and no debit is ever partially applied.
type Ledger struct {
	mu      sync.Mutex
	wallets map[string]*Wallet
	store   Store
	log     *slog.Logger
}

// Open loads all wallets from the store. Vehicle types are static
// reference data after this point.
func Open(store Store, log *slog.Logger) (*Ledger, error) {
	if log == nil {
		log = slog.Default()
	}
	wallets, err := store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load wallets: %w", err)
	}

	m := make(map[string]*Wallet, len(wallets))
	for _, w := range wallets {
		w := w
		m[w.VehicleID] = &w
	}
	return &Ledger{wallets: m, store: store, log: log}, nil
}

// TryDebit atomically checks and subtracts amount from a wallet, then
// persists the new balance. On a persistence failure the in-memory
// balance is rolled back and DebitStoreError returned, so memory and
// store never drift.
func (l *Ledger) TryDebit(vehicleID string, amount float64) DebitResult {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.wallets[vehicleID]
	if !ok {
		l.log.Error("debit for unknown vehicle", "vehicle_id", vehicleID)
		return DebitUnknownVehicle
	}
	if w.Balance < amount {
		l.log.Warn("insufficient funds",
			"vehicle_id", vehicleID, "balance", w.Balance, "amount", amount)
		return DebitInsufficient
	}

	prev := w.Balance
	w.Balance -= amount

	if err := l.store.Save(vehicleID, w.Balance); err != nil {
		w.Balance = prev
		l.log.Error("persist balance failed, debit rolled back",
			"vehicle_id", vehicleID, "error", err)
		return DebitStoreError
	}

	l.log.Info("debited wallet",
		"vehicle_id", vehicleID, "amount", amount, "balance", w.Balance)
	return DebitOK
}

// Balance returns the current balance for a vehicle.
func (l *Ledger) Balance(vehicleID string) (float64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.wallets[vehicleID]
	if !ok {
		return 0, false
	}
	return w.Balance, true
}

// VehicleType returns the registered type for a vehicle, "" if unknown.
// The pricing table maps unknown types to its default rate.
func (l *Ledger) VehicleType(vehicleID string) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w, ok := l.wallets[vehicleID]; ok {
		return w.VehicleType
	}
	return ""
}
