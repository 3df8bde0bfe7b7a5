// Package main is the entry point for the chaincost CLI.
package main

import (
	"os"

	"chaincost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
