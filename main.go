package main

import (
	"os"

	"github.com/TokenSwapper/swap-status-svc/internal/cli"
)

func main() {
	if !cli.Run(os.Args) {
		os.Exit(1)
	}
}
