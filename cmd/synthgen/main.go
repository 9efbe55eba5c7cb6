// Package main provides the synthgen CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/synthgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
