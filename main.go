package main

import (
	"os"

	"github.com/ledgerlabs-fi/tron-tax-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
