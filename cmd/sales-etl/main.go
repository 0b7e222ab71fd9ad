// Package main is the entry point for sales-etl.
package main

import (
	"fmt"
	"os"

	"github.com/retailworks/sales-etl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
