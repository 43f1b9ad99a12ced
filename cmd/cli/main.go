// Package main is the entry point for the payoff CLI.
package main

import (
	"os"

	"payoff/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
