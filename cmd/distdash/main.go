// Package main provides the distdash command-line entrypoint.
package main

import (
	"os"

	"github.com/sahyadri-labs/distdash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
