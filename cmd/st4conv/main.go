// Package main provides the st4conv command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/st4conv/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
