package main

import (
	"os"

	"github.com/brg8607/lsm-frontend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
