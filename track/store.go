package track

import (
	"sync"
	"time"

	"github.com/rustyeddy/tollgate/geo"
)

// Fix is a single timestamped position report for one vehicle.
// Immutable once recorded.
type Fix struct {
	VehicleID string
	Time      time.Time
	Point     geo.Point
}

// Segment is the movement implied by two consecutive fixes.
type Segment struct {
	Prev Fix
	Curr Fix
}

// ElapsedHours returns the time between the two fixes in hours.
func (s Segment) ElapsedHours() float64 {
	return s.Curr.Time.Sub(s.Prev.Time).Hours()
}

// DistanceKm returns the geodesic distance between the two fixes.
func (s Segment) DistanceKm() float64 {
	return geo.Distance(s.Prev.Point, s.Curr.Point)
}

// Store holds the ordered fix history per vehicle. Append-only; fixes are
// kept in arrival order without reordering.
type Store struct {
	mu     sync.Mutex
	tracks map[string][]Fix
}

func NewStore() *Store {
	return &Store{tracks: make(map[string][]Fix)}
}

// Append records a fix at the tail of its vehicle's track.
func (s *Store) Append(fix Fix) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracks[fix.VehicleID] = append(s.tracks[fix.VehicleID], fix)
}

// LatestSegment returns the segment formed by the last two fixes on
// record. ok is false while a vehicle has fewer than two fixes.
func (s *Store) LatestSegment(vehicleID string) (seg Segment, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fixes := s.tracks[vehicleID]
	if len(fixes) < 2 {
		return Segment{}, false
	}
	return Segment{Prev: fixes[len(fixes)-2], Curr: fixes[len(fixes)-1]}, true
}

// Fixes returns a copy of a vehicle's track in arrival order.
func (s *Store) Fixes(vehicleID string) []Fix {
	s.mu.Lock()
	defer s.mu.Unlock()

	fixes := s.tracks[vehicleID]
	out := make([]Fix, len(fixes))
	copy(out, fixes)
	return out
}

// Len returns the number of fixes on record for a vehicle.
func (s *Store) Len(vehicleID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tracks[vehicleID])
}
