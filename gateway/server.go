package gateway

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/rustyeddy/tollgate/ledger"
	"github.com/rustyeddy/tollgate/toll"
	"github.com/rustyeddy/tollgate/track"
)

// Server is the HTTP ingest gateway in front of the toll engine.
// Every inbound report is validated here; nothing malformed reaches the
// queue.
type Server struct {
	app    *fiber.App
	engine *toll.Engine
	ledger *ledger.Ledger
	tracks *track.Store
	log    *slog.Logger
}

func New(engine *toll.Engine, l *ledger.Ledger, tracks *track.Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:      "tollgate v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	s := &Server{app: app, engine: engine, ledger: l, tracks: tracks, log: log}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)
	s.app.Post("/gps", s.receiveGPS)
	s.app.Get("/wallets/:id", s.walletBalance)
	s.app.Get("/vehicles/:id/track", s.vehicleTrack)
}

// App exposes the fiber app for Listen and for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "tollgate",
	})
}

func (s *Server) receiveGPS(c *fiber.Ctx) error {
	var req gpsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	fix, err := req.fix()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.engine.Ingest(fix); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "shutting down"})
	}

	return c.JSON(fiber.Map{"message": "GPS data received"})
}

func (s *Server) walletBalance(c *fiber.Ctx) error {
	id := c.Params("id")
	balance, ok := s.ledger.Balance(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown vehicle"})
	}
	return c.JSON(fiber.Map{
		"vehicle_id": id,
		"balance":    balance,
	})
}

func (s *Server) vehicleTrack(c *fiber.Ctx) error {
	id := c.Params("id")
	fixes := s.tracks.Fixes(id)

	out := make([]fiber.Map, 0, len(fixes))
	for _, f := range fixes {
		out = append(out, fiber.Map{
			"timestamp": f.Time.Format(timeLayout),
			"longitude": f.Point.Lon,
			"latitude":  f.Point.Lat,
		})
	}
	return c.JSON(fiber.Map{
		"vehicle_id": id,
		"fixes":      out,
	})
}
