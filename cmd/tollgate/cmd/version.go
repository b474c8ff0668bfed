package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the tollgate CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tollgate version %s\n", version)
		fmt.Println("A GPS-based toll collection service for a single highway corridor")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
