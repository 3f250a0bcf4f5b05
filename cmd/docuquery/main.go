package main

import (
	"os"

	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
