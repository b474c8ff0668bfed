package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tollgate/config"
	"github.com/rustyeddy/tollgate/roadnet"
	"github.com/rustyeddy/tollgate/sim"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Drive simulated vehicles against a running gateway",
	Long: `Walk every vehicle from the wallet store along the tolled corridor,
POSTing one position fix per interval to the ingest gateway.

Example:
  tollgate simulate --config tollgate.yaml --server http://localhost:8080`,
	RunE: runSimulate,
}

var (
	simConfigPath string
	simServerURL  string
	simInterval   time.Duration
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVarP(&simConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	simulateCmd.Flags().StringVar(&simServerURL, "server", "http://localhost:8080", "gateway base URL")
	simulateCmd.Flags().DurationVar(&simInterval, "interval", time.Second, "delay between fixes per vehicle")
	simulateCmd.MarkFlagRequired("config")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := config.LoadFromFile(simConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	network, err := roadnet.LoadCSV(cfg.Map.EdgesFile, cfg.Map.TolledRoad, cfg.Map.MaxSnapKm)
	if err != nil {
		return fmt.Errorf("load road network: %w", err)
	}

	route := sim.CorridorRoute(network)
	if len(route) < 2 {
		return fmt.Errorf("tolled corridor %q has no drivable route", cfg.Map.TolledRoad)
	}

	store, err := openLedgerStore(cfg.Ledger)
	if err != nil {
		return fmt.Errorf("open ledger store: %w", err)
	}
	defer store.Close()

	wallets, err := store.LoadAll()
	if err != nil {
		return fmt.Errorf("load vehicles: %w", err)
	}
	if len(wallets) == 0 {
		return fmt.Errorf("wallet store has no vehicles to simulate")
	}

	vehicles := make([]sim.Vehicle, 0, len(wallets))
	for _, w := range wallets {
		vehicles = append(vehicles, sim.Vehicle{ID: w.VehicleID, Route: route})
	}

	fmt.Printf("Simulating %d vehicles over %d route points against %s\n",
		len(vehicles), len(route), simServerURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := sim.New(sim.Options{ServerURL: simServerURL, Interval: simInterval}, log)
	return s.Run(ctx, vehicles)
}
