package journal

import (
	"time"

	"github.com/rustyeddy/tollgate/geo"
	"github.com/rustyeddy/tollgate/pricing"
)

// Transaction is one committed toll charge. Records are append-only;
// nothing ever mutates or deletes one.
type Transaction struct {
	ID        string
	VehicleID string
	Time      time.Time
	Start     geo.Point
	End       geo.Point

	DistanceKm  float64
	AvgSpeedKmh float64

	Price pricing.Breakdown
}

type Journal interface {
	RecordTransaction(Transaction) error
	Close() error
}
