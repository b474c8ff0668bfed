package pricing

import (
	"strings"
	"time"
)

// Toll rate constants for the single corridor.
const (
	RatePerKm        = 0.1
	OverspeedRate    = 0.2
	SpeedLimitKmh    = 100.0
	PeakSurcharge    = 10.0
	TaxSurcharge     = 5.0
	RoadTypeCharge   = 10.0
	DefaultTypePrice = 10.0
)

var vehicleTypePrices = map[string]float64{
	"car":   20,
	"bus":   30,
	"truck": 40,
	"other": 10,
}

// Input describes one trip segment to be priced.
type Input struct {
	DistanceKm   float64
	ElapsedHours float64
	VehicleType  string
	StartTime    time.Time

	// OnHighway gates the per-km distance charge. The flat surcharges
	// apply either way.
	OnHighway bool
}

// Breakdown is the priced result. Total is the sum of the six components.
type Breakdown struct {
	DistancePrice    float64
	OverspeedPrice   float64
	VehicleTypePrice float64
	PeakTimePrice    float64
	TaxPrice         float64
	RoadTypePrice    float64
	Total            float64
}

// Speed returns average speed in km/h, 0 for a non-positive elapsed time.
func Speed(distanceKm, elapsedHours float64) float64 {
	if elapsedHours <= 0 {
		return 0
	}
	return distanceKm / elapsedHours
}

// Quote prices one segment. Pure: identical inputs always produce an
// identical Breakdown.
func Quote(in Input) Breakdown {
	speed := Speed(in.DistanceKm, in.ElapsedHours)

	var b Breakdown
	if in.OnHighway {
		b.DistancePrice = in.DistanceKm * RatePerKm
	}
	if speed > SpeedLimitKmh {
		b.OverspeedPrice = (speed - SpeedLimitKmh) * OverspeedRate
	}
	b.VehicleTypePrice = VehicleTypePrice(in.VehicleType)
	b.PeakTimePrice = PeakTimePrice(in.StartTime)
	b.TaxPrice = TaxSurcharge
	b.RoadTypePrice = RoadTypeCharge

	b.Total = b.DistancePrice + b.OverspeedPrice + b.VehicleTypePrice +
		b.PeakTimePrice + b.TaxPrice + b.RoadTypePrice
	return b
}

// VehicleTypePrice looks up the flat charge for a vehicle type.
// Unknown or empty types price as "other".
func VehicleTypePrice(vehicleType string) float64 {
	if p, ok := vehicleTypePrices[strings.ToLower(vehicleType)]; ok {
		return p
	}
	return DefaultTypePrice
}

// PeakTimePrice returns the rush-hour surcharge. Peak windows are
// 07:00-09:59 and 17:00-19:59 by segment start hour, inclusive.
func PeakTimePrice(start time.Time) float64 {
	h := start.Hour()
	if (h >= 7 && h <= 9) || (h >= 17 && h <= 19) {
		return PeakSurcharge
	}
	return 0
}
