package track

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tollgate/geo"
)

func fixAt(id string, t time.Time, lon, lat float64) Fix {
	return Fix{VehicleID: id, Time: t, Point: geo.Point{Lon: lon, Lat: lat}}
}

func TestLatestSegmentNeedsTwoFixes(t *testing.T) {
	t.Parallel()

	s := NewStore()
	t0 := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	_, ok := s.LatestSegment("KA01AB1234")
	assert.False(t, ok)

	s.Append(fixAt("KA01AB1234", t0, 77.5540, 13.2130))
	_, ok = s.LatestSegment("KA01AB1234")
	assert.False(t, ok)

	s.Append(fixAt("KA01AB1234", t0.Add(time.Minute), 77.5545, 13.2180))
	seg, ok := s.LatestSegment("KA01AB1234")
	assert.True(t, ok)
	assert.Equal(t, t0, seg.Prev.Time)
	assert.Equal(t, t0.Add(time.Minute), seg.Curr.Time)
}

func TestLatestSegmentTracksTail(t *testing.T) {
	t.Parallel()

	s := NewStore()
	t0 := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		s.Append(fixAt("V1", t0.Add(time.Duration(i)*time.Minute), 77.55, 13.21+float64(i)*0.001))
	}

	seg, ok := s.LatestSegment("V1")
	assert.True(t, ok)
	assert.Equal(t, t0.Add(3*time.Minute), seg.Prev.Time)
	assert.Equal(t, t0.Add(4*time.Minute), seg.Curr.Time)
	assert.Equal(t, 5, s.Len("V1"))
}

func TestTracksAreIndependent(t *testing.T) {
	t.Parallel()

	s := NewStore()
	t0 := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	s.Append(fixAt("A", t0, 77.55, 13.21))
	s.Append(fixAt("B", t0, 77.56, 13.22))
	s.Append(fixAt("A", t0.Add(time.Minute), 77.55, 13.22))

	_, ok := s.LatestSegment("A")
	assert.True(t, ok)
	_, ok = s.LatestSegment("B")
	assert.False(t, ok)
}

func TestSegmentDerivedValues(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	seg := Segment{
		Prev: fixAt("V1", t0, 77.5540, 13.2130),
		Curr: fixAt("V1", t0.Add(6*time.Minute), 77.5540, 13.2580),
	}

	assert.InDelta(t, 0.1, seg.ElapsedHours(), 1e-9)
	assert.InDelta(t, 5.0, seg.DistanceKm(), 0.05)
}

func TestConcurrentAppend(t *testing.T) {
	t.Parallel()

	s := NewStore()
	t0 := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := fmt.Sprintf("V%d", p%4)
				s.Append(fixAt(id, t0.Add(time.Duration(i)*time.Second), 77.55, 13.21))
			}
		}(p)
	}
	wg.Wait()

	total := 0
	for v := 0; v < 4; v++ {
		total += s.Len(fmt.Sprintf("V%d", v))
	}
	assert.Equal(t, 800, total)
}
