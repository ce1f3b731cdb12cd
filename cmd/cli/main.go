// Package main is the entry point for the bakery-cost CLI.
package main

import (
	"os"

	"bakery-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
