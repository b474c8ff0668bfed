package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/tollgate/config"
	"github.com/rustyeddy/tollgate/gateway"
	"github.com/rustyeddy/tollgate/journal"
	"github.com/rustyeddy/tollgate/ledger"
	"github.com/rustyeddy/tollgate/roadnet"
	"github.com/rustyeddy/tollgate/toll"
	"github.com/rustyeddy/tollgate/track"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ingest gateway and toll pipeline",
	Long: `Start the HTTP ingest gateway and the toll processing worker.

The config file locates the road network, the wallet store and the
transaction journal. TOLLGATE_ADDR in the environment (or a .env file)
overrides server.addr.

Example:
  tollgate serve --config tollgate.yaml`,
	RunE: runServe,
}

var serveConfigPath string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	serveCmd.MarkFlagRequired("config")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := newLogger()

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using system environment")
	}

	cfg, err := config.LoadFromFile(serveConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr := os.Getenv("TOLLGATE_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}

	network, err := roadnet.LoadCSV(cfg.Map.EdgesFile, cfg.Map.TolledRoad, cfg.Map.MaxSnapKm)
	if err != nil {
		return fmt.Errorf("load road network: %w", err)
	}
	log.Info("road network loaded",
		"edges_file", cfg.Map.EdgesFile, "tolled_road", cfg.Map.TolledRoad,
		"tolled_edges", len(network.TolledEdges()))

	store, err := openLedgerStore(cfg.Ledger)
	if err != nil {
		return fmt.Errorf("open ledger store: %w", err)
	}
	defer store.Close()

	wallets, err := ledger.Open(store, log)
	if err != nil {
		return err
	}

	sink, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer sink.Close()

	tracks := track.NewStore()
	classifier := roadnet.NewClassifier(network, log)
	engine := toll.NewEngine(tracks, classifier, wallets, sink, log)
	engine.Start()

	server := gateway.New(engine, wallets, tracks, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("gateway listening", "addr", cfg.Server.Addr)
		return server.App().Listen(cfg.Server.Addr)
	})
	g.Go(func() error {
		<-ctx.Done()

		log.Info("shutting down gateway")
		if err := server.App().ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Error("gateway shutdown", "error", err)
		}

		// All producers are gone once the listener is down; drain what
		// is already queued so no accepted fix is lost.
		log.Info("draining toll queue", "queued", engine.Queued())
		drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return engine.Close(drainCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("tollgate exited gracefully")
	return nil
}

func openLedgerStore(cfg config.LedgerConfig) (ledger.Store, error) {
	if cfg.Type == "sqlite" {
		return ledger.NewSQLiteStore(cfg.DBPath)
	}
	return ledger.NewCSVStore(cfg.UsersFile), nil
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	if cfg.Type == "sqlite" {
		return journal.NewSQLite(cfg.DBPath)
	}
	return journal.NewCSV(cfg.Dir)
}

func newLogger() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	log := slog.New(handler).With("service", "tollgate")
	slog.SetDefault(log)
	return log
}
