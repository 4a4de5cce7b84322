// Package main is the entrypoint for the AutonomOS dashboard CLI.
package main

import (
	"os"

	"github.com/ilyacantor/autonomos-dash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
