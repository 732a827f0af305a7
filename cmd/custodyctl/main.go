package main

import (
	"os"

	"github.com/vaultline-hq/vaultline-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
