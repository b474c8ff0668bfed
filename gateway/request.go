package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/tollgate/geo"
	"github.com/rustyeddy/tollgate/track"
)

const timeLayout = "2006-01-02 15:04:05"

var errMissingData = errors.New("Missing data")

// vehicleID accepts either a JSON string or a bare number; simulators in
// the field send both.
type vehicleID string

func (v *vehicleID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = vehicleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*v = vehicleID(n.String())
		return nil
	}
	return fmt.Errorf("vehicle_id must be a string or number")
}

// gpsRequest is the inbound position report. Pointer fields distinguish
// absent and null from zero values.
type gpsRequest struct {
	VehicleID *vehicleID `json:"vehicle_id"`
	Timestamp *string    `json:"timestamp"`
	Longitude *float64   `json:"longitude"`
	Latitude  *float64   `json:"latitude"`
}

// fix validates the report and converts it to a track.Fix.
func (r gpsRequest) fix() (track.Fix, error) {
	if r.VehicleID == nil || *r.VehicleID == "" ||
		r.Timestamp == nil || r.Longitude == nil || r.Latitude == nil {
		return track.Fix{}, errMissingData
	}

	ts, err := time.Parse(timeLayout, *r.Timestamp)
	if err != nil {
		return track.Fix{}, fmt.Errorf("bad timestamp %q, want YYYY-MM-DD HH:MM:SS", *r.Timestamp)
	}

	return track.Fix{
		VehicleID: string(*r.VehicleID),
		Time:      ts,
		Point:     geo.Point{Lon: *r.Longitude, Lat: *r.Latitude},
	}, nil
}
