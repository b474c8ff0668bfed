package geo

import "math"

const earthRadiusKm = 6371.0088

// Point is a geographic coordinate (WGS 84).
type Point struct {
	Lon float64 `json:"longitude"`
	Lat float64 `json:"latitude"`
}

// Distance returns the great-circle distance between two points in km.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// DistanceToSegment returns the distance in km from p to the segment ab.
//
// Points are projected onto a local equirectangular plane centered on the
// segment, which is accurate enough at the few-km scale a snap radius
// operates on.
func DistanceToSegment(p, a, b Point) float64 {
	midLat := (a.Lat + b.Lat) / 2 * math.Pi / 180
	kx := math.Cos(midLat) * 111.320 // km per degree longitude
	const ky = 110.574               // km per degree latitude

	px, py := p.Lon*kx, p.Lat*ky
	ax, ay := a.Lon*kx, a.Lat*ky
	bx, by := b.Lon*kx, b.Lat*ky

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((px-ax)*dx + (py-ay)*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}

	cx, cy := ax+t*dx, ay+t*dy
	return math.Hypot(px-cx, py-cy)
}
