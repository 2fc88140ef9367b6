package main

import (
	"fmt"
	"os"

	"github.com/ppiankov/adscout/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return cli.Execute()
}
