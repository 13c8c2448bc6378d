// Package main is the entry point for the hubcard CLI tool.
package main

import (
	"os"

	"github.com/hubcard/hubcard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
