package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuoteOnHighwayRushHour(t *testing.T) {
	t.Parallel()

	// 5 km in 6 minutes at 8am: no overspeed, peak surcharge applies.
	b := Quote(Input{
		DistanceKm:   5,
		ElapsedHours: 0.1,
		VehicleType:  "car",
		StartTime:    time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
		OnHighway:    true,
	})

	assert.InDelta(t, 0.5, b.DistancePrice, 1e-9)
	assert.Equal(t, 0.0, b.OverspeedPrice)
	assert.Equal(t, 20.0, b.VehicleTypePrice)
	assert.Equal(t, 10.0, b.PeakTimePrice)
	assert.Equal(t, 5.0, b.TaxPrice)
	assert.Equal(t, 10.0, b.RoadTypePrice)
	assert.InDelta(t, 45.5, b.Total, 1e-9)
}

func TestQuoteOverspeed(t *testing.T) {
	t.Parallel()

	// 10 km in 0.05 h is 200 km/h, 100 over the limit.
	b := Quote(Input{
		DistanceKm:   10,
		ElapsedHours: 0.05,
		VehicleType:  "truck",
		StartTime:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		OnHighway:    true,
	})

	assert.InDelta(t, 20.0, b.OverspeedPrice, 1e-9)
	assert.Equal(t, 0.0, b.PeakTimePrice)
}

func TestQuoteOffHighwayNoDistanceCharge(t *testing.T) {
	t.Parallel()

	b := Quote(Input{
		DistanceKm:   5,
		ElapsedHours: 0.1,
		VehicleType:  "bus",
		StartTime:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		OnHighway:    false,
	})

	assert.Equal(t, 0.0, b.DistancePrice)
	assert.InDelta(t, 30+5+10, b.Total, 1e-9)
}

func TestQuoteDeterministic(t *testing.T) {
	t.Parallel()

	in := Input{
		DistanceKm:   3.7,
		ElapsedHours: 0.02,
		VehicleType:  "Bus",
		StartTime:    time.Date(2024, 6, 1, 17, 30, 0, 0, time.UTC),
		OnHighway:    true,
	}
	assert.Equal(t, Quote(in), Quote(in))
}

func TestSpeedDegenerateElapsed(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, Speed(5, 0))
	assert.Equal(t, 0.0, Speed(5, -0.1))
	assert.InDelta(t, 50.0, Speed(5, 0.1), 1e-9)
}

func TestVehicleTypePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		vtype string
		want  float64
	}{
		{"car", 20},
		{"CAR", 20},
		{"Bus", 30},
		{"truck", 40},
		{"other", 10},
		{"autorickshaw", 10},
		{"", 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VehicleTypePrice(tt.vtype), "type %q", tt.vtype)
	}
}

func TestPeakTimePriceWindows(t *testing.T) {
	t.Parallel()

	at := func(hour int) time.Time {
		return time.Date(2024, 6, 1, hour, 15, 0, 0, time.UTC)
	}

	assert.Equal(t, 0.0, PeakTimePrice(at(6)))
	assert.Equal(t, 10.0, PeakTimePrice(at(7)))
	assert.Equal(t, 10.0, PeakTimePrice(at(8)))
	assert.Equal(t, 10.0, PeakTimePrice(at(9)))
	assert.Equal(t, 0.0, PeakTimePrice(at(10)))
	assert.Equal(t, 0.0, PeakTimePrice(at(12)))
	assert.Equal(t, 0.0, PeakTimePrice(at(16)))
	assert.Equal(t, 10.0, PeakTimePrice(at(17)))
	assert.Equal(t, 10.0, PeakTimePrice(at(19)))
	assert.Equal(t, 0.0, PeakTimePrice(at(20)))
}
