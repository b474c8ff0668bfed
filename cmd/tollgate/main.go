package main

import (
	"os"

	"github.com/rustyeddy/tollgate/cmd/tollgate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
