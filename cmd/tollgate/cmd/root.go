package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tollgate",
	Short: "A GPS-based toll collection service for a single highway corridor",
	Long: `Tollgate ingests streamed vehicle position reports, matches each
movement against the tolled corridor, prices the trip segment and debits
a prepaid wallet.

It provides tools for:
  - Running the ingest gateway and pricing pipeline
  - Simulating vehicle traffic against a running gateway
  - Generating and validating configuration files
  - CSV or SQLite persistence for wallets and transaction logs`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
