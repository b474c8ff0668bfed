package roadnet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tollgate/geo"
)

func TestOnHighwayBothPointsTolled(t *testing.T) {
	t.Parallel()

	c := NewClassifier(New(testEdges(), "Doddaballapur Road", 1), nil)

	a := geo.Point{Lon: 77.5540, Lat: 13.2100}
	b := geo.Point{Lon: 77.5540, Lat: 13.2500}
	assert.True(t, c.OnHighway(a, b))
}

func TestOnHighwayOneEndOffCorridor(t *testing.T) {
	t.Parallel()

	c := NewClassifier(New(testEdges(), "Doddaballapur Road", 1), nil)

	onCorridor := geo.Point{Lon: 77.5540, Lat: 13.2100}
	onSideRoad := geo.Point{Lon: 77.5850, Lat: 13.2300}
	assert.False(t, c.OnHighway(onCorridor, onSideRoad))
	assert.False(t, c.OnHighway(onSideRoad, onCorridor))
}

func TestOnHighwayResolutionFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	c := NewClassifier(New(testEdges(), "Doddaballapur Road", 1), nil)

	farAway := geo.Point{Lon: 80.0, Lat: 20.0}
	onCorridor := geo.Point{Lon: 77.5540, Lat: 13.2100}
	assert.False(t, c.OnHighway(farAway, onCorridor))
	assert.False(t, c.OnHighway(onCorridor, farAway))
}

func TestOnHighwayEmptyNetwork(t *testing.T) {
	t.Parallel()

	c := NewClassifier(New(nil, "x", 1), nil)
	p := geo.Point{Lon: 77.5540, Lat: 13.2100}
	assert.False(t, c.OnHighway(p, p))
}
