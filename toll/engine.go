package toll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rustyeddy/tollgate/geo"
	"github.com/rustyeddy/tollgate/journal"
	"github.com/rustyeddy/tollgate/ledger"
	"github.com/rustyeddy/tollgate/pkg/id"
	"github.com/rustyeddy/tollgate/pricing"
	"github.com/rustyeddy/tollgate/track"
)

// ErrClosed is returned by Ingest once shutdown has begun.
var ErrClosed = errors.New("toll engine is shutting down")

// HighwayClassifier answers whether a segment ran on the tolled
// corridor. It never fails; uncertainty classifies as false.
type HighwayClassifier interface {
	OnHighway(a, b geo.Point) bool
}

// Engine is the ingest orchestrator. Producers call Ingest concurrently;
// a single worker consumes the queue, derives the latest trip segment,
// classifies, prices, debits and journals it. One worker by design: the
// serialized consumer is what keeps ledger debits per segment
// exactly-once without finer locking.
type Engine struct {
	tracks     *track.Store
	classifier HighwayClassifier
	ledger     *ledger.Ledger
	journal    journal.Journal
	q          *queue
	log        *slog.Logger
	done       chan struct{}
}

func NewEngine(tracks *track.Store, c HighwayClassifier, l *ledger.Ledger, j journal.Journal, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		tracks:     tracks,
		classifier: c,
		ledger:     l,
		journal:    j,
		q:          newQueue(),
		log:        log,
		done:       make(chan struct{}),
	}
}

// Start launches the worker loop.
func (e *Engine) Start() {
	go e.run()
}

// Ingest is the producer path: record the fix, then queue a processing
// job for its vehicle. The caller learns only whether ingestion
// succeeded; pricing and debit outcomes stay inside the pipeline.
func (e *Engine) Ingest(fix track.Fix) error {
	e.tracks.Append(fix)
	if !e.q.enqueue(job{vehicleID: fix.VehicleID}) {
		return ErrClosed
	}
	return nil
}

// Close stops intake and waits for the worker to drain every queued job,
// or for ctx to expire.
func (e *Engine) Close(ctx context.Context) error {
	e.q.close()
	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain toll queue: %w", ctx.Err())
	}
}

// Queued reports the jobs not yet picked up by the worker.
func (e *Engine) Queued() int {
	return e.q.len()
}

func (e *Engine) run() {
	defer close(e.done)
	for {
		j, ok := e.q.dequeue()
		if !ok {
			return
		}
		e.safeProcess(j.vehicleID)
	}
}

// safeProcess shields the worker loop: a panic while handling one job
// discards that job and moves on.
func (e *Engine) safeProcess(vehicleID string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("job processing panicked, job discarded",
				"vehicle_id", vehicleID, "panic", r)
		}
	}()
	e.process(vehicleID)
}

func (e *Engine) process(vehicleID string) {
	seg, ok := e.tracks.LatestSegment(vehicleID)
	if !ok {
		e.log.Debug("fewer than two fixes on record", "vehicle_id", vehicleID)
		return
	}

	if !e.classifier.OnHighway(seg.Prev.Point, seg.Curr.Point) {
		e.log.Warn("segment off the tolled corridor, discarding",
			"vehicle_id", vehicleID)
		return
	}

	distance := seg.DistanceKm()
	elapsed := seg.ElapsedHours()
	speed := pricing.Speed(distance, elapsed)

	price := pricing.Quote(pricing.Input{
		DistanceKm:   distance,
		ElapsedHours: elapsed,
		VehicleType:  e.ledger.VehicleType(vehicleID),
		StartTime:    seg.Prev.Time,
		OnHighway:    true,
	})

	switch res := e.ledger.TryDebit(vehicleID, price.Total); res {
	case ledger.DebitOK:
	default:
		e.log.Warn("debit refused, segment discarded",
			"vehicle_id", vehicleID, "result", res.String(), "amount", price.Total)
		return
	}

	tx := journal.Transaction{
		ID:          id.New(),
		VehicleID:   vehicleID,
		Time:        seg.Curr.Time,
		Start:       seg.Prev.Point,
		End:         seg.Curr.Point,
		DistanceKm:  distance,
		AvgSpeedKmh: speed,
		Price:       price,
	}
	if err := e.journal.RecordTransaction(tx); err != nil {
		// The debit has already been committed; the charge stands even
		// if its record could not be written.
		e.log.Error("record transaction failed",
			"vehicle_id", vehicleID, "transaction_id", tx.ID, "error", err)
		return
	}

	e.log.Info("toll committed",
		"vehicle_id", vehicleID, "transaction_id", tx.ID,
		"distance_km", distance, "total", price.Total)
}
