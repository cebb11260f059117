package main

import (
	"os"

	"github.com/recapkit/recap/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
