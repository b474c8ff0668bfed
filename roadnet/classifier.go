package roadnet

import (
	"log/slog"

	"github.com/rustyeddy/tollgate/geo"
)

// Classifier answers whether a trip segment ran on the tolled corridor.
//
// Geometry lookups must never take down the pricing pipeline. Any failure
// to resolve a point is logged and classified as not-on-highway, so an
// unresolvable segment is dropped rather than charged.
type Classifier struct {
	net *Network
	log *slog.Logger
}

func NewClassifier(net *Network, log *slog.Logger) *Classifier {
	if log == nil {
		log = slog.Default()
	}
	return &Classifier{net: net, log: log}
}

// OnHighway reports true only when both endpoints resolve to tolled
// edges.
func (c *Classifier) OnHighway(a, b geo.Point) bool {
	edgeA, err := c.net.NearestEdge(a)
	if err != nil {
		c.log.Warn("could not resolve segment start", "lon", a.Lon, "lat", a.Lat, "error", err)
		return false
	}
	edgeB, err := c.net.NearestEdge(b)
	if err != nil {
		c.log.Warn("could not resolve segment end", "lon", b.Lon, "lat", b.Lat, "error", err)
		return false
	}
	return c.net.IsTolled(edgeA) && c.net.IsTolled(edgeB)
}
