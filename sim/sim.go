package sim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/tollgate/geo"
	"github.com/rustyeddy/tollgate/roadnet"
)

const timeLayout = "2006-01-02 15:04:05"

// Vehicle is one simulated traffic source: an ID and the route it drives.
type Vehicle struct {
	ID    string
	Route []geo.Point
}

// Options control a simulation run.
type Options struct {
	ServerURL string
	Interval  time.Duration
}

// Simulator drives vehicles along their routes, POSTing one position fix
// per interval to the ingest gateway. Each vehicle runs concurrently,
// like real traffic.
type Simulator struct {
	client *http.Client
	opts   Options
	log    *slog.Logger
}

func New(opts Options, log *slog.Logger) *Simulator {
	if log == nil {
		log = slog.Default()
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	return &Simulator{
		client: &http.Client{Timeout: 10 * time.Second},
		opts:   opts,
		log:    log,
	}
}

// Run drives every vehicle to the end of its route. A vehicle that fails
// to send a fix logs and keeps driving; only ctx cancellation stops the
// run early.
func (s *Simulator) Run(ctx context.Context, vehicles []Vehicle) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, v := range vehicles {
		v := v
		g.Go(func() error { return s.drive(ctx, v) })
	}
	return g.Wait()
}

func (s *Simulator) drive(ctx context.Context, v Vehicle) error {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for _, p := range v.Route {
		if err := s.sendFix(ctx, v.ID, p); err != nil {
			s.log.Warn("send fix failed", "vehicle_id", v.ID, "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	s.log.Info("vehicle finished route", "vehicle_id", v.ID, "fixes", len(v.Route))
	return nil
}

func (s *Simulator) sendFix(ctx context.Context, vehicleID string, p geo.Point) error {
	payload, err := json.Marshal(map[string]any{
		"vehicle_id": vehicleID,
		"timestamp":  time.Now().Format(timeLayout),
		"longitude":  p.Lon,
		"latitude":   p.Lat,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.opts.ServerURL+"/gps", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway returned %s", resp.Status)
	}
	return nil
}

// CorridorRoute builds a route along the tolled corridor, visiting each
// edge endpoint in file order.
func CorridorRoute(n *roadnet.Network) []geo.Point {
	edges := n.TolledEdges()
	var route []geo.Point
	for i, e := range edges {
		if i == 0 {
			route = append(route, e.A)
		}
		route = append(route, e.B)
	}
	return route
}
