package roadnet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rustyeddy/tollgate/geo"
)

// ErrNoEdge is returned when a point does not resolve to any road edge
// within the snap radius.
var ErrNoEdge = errors.New("no road edge within snap radius")

// Edge is one directed road segment from the supplied road graph.
type Edge struct {
	ID   string
	Name string
	A    geo.Point
	B    geo.Point
}

// Network is a read-only spatial index over road edges with a precomputed
// tolled subset. Membership in the subset is by case-insensitive road
// name match against the corridor name.
type Network struct {
	edges     []Edge
	tolled    map[string]struct{}
	maxSnapKm float64
}

// New builds a network over edges. Edges whose name contains
// corridorName (case-insensitive) form the tolled subset. maxSnapKm
// bounds how far a query point may be from its nearest edge before
// resolution fails.
func New(edges []Edge, corridorName string, maxSnapKm float64) *Network {
	tolled := make(map[string]struct{})
	needle := strings.ToLower(corridorName)
	for _, e := range edges {
		if needle != "" && strings.Contains(strings.ToLower(e.Name), needle) {
			tolled[e.ID] = struct{}{}
		}
	}
	return &Network{edges: edges, tolled: tolled, maxSnapKm: maxSnapKm}
}

// LoadCSV reads an edge file with header:
//
//	edge_id,name,lon1,lat1,lon2,lat2
func LoadCSV(path, corridorName string, maxSnapKm float64) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open edges file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read edges file %s: %w", path, err)
	}

	var edges []Edge
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 6 {
			return nil, fmt.Errorf("edges file %s: row %d has %d fields, want 6", path, i+1, len(row))
		}
		coords := make([]float64, 4)
		for j := 0; j < 4; j++ {
			coords[j], err = strconv.ParseFloat(row[2+j], 64)
			if err != nil {
				return nil, fmt.Errorf("edges file %s: row %d: bad coordinate %q: %w", path, i+1, row[2+j], err)
			}
		}
		edges = append(edges, Edge{
			ID:   row[0],
			Name: row[1],
			A:    geo.Point{Lon: coords[0], Lat: coords[1]},
			B:    geo.Point{Lon: coords[2], Lat: coords[3]},
		})
	}
	if len(edges) == 0 {
		return nil, fmt.Errorf("edges file %s has no edges", path)
	}

	return New(edges, corridorName, maxSnapKm), nil
}

// NearestEdge resolves a point to the closest edge by point-to-segment
// distance. Fails with ErrNoEdge when the network is empty or the point
// lies beyond the snap radius.
func (n *Network) NearestEdge(p geo.Point) (string, error) {
	bestID := ""
	bestDist := 0.0
	for _, e := range n.edges {
		d := geo.DistanceToSegment(p, e.A, e.B)
		if bestID == "" || d < bestDist {
			bestID, bestDist = e.ID, d
		}
	}
	if bestID == "" {
		return "", ErrNoEdge
	}
	if n.maxSnapKm > 0 && bestDist > n.maxSnapKm {
		return "", fmt.Errorf("%w: nearest is %s at %.2f km", ErrNoEdge, bestID, bestDist)
	}
	return bestID, nil
}

// IsTolled reports whether an edge belongs to the tolled corridor.
func (n *Network) IsTolled(edgeID string) bool {
	_, ok := n.tolled[edgeID]
	return ok
}

// TolledEdges returns the corridor edges in file order. The simulator
// uses this to route vehicles along the chargeable road.
func (n *Network) TolledEdges() []Edge {
	var out []Edge
	for _, e := range n.edges {
		if _, ok := n.tolled[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out
}
