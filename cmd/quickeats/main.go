package main

import (
	"os"

	"github.com/quickeats/quickeats/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
