package main

import (
	"fmt"
	"os"

	"tasktrack/internal/cli"
	"tasktrack/internal/config"
)

func main() {
	// Load configuration: defaults, then environment overrides
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	root := cli.NewRootCommand(cfg)
	if err := root.Execute(); err != nil {
		errorHandler := cli.NewErrorHandler()
		fmt.Fprintf(os.Stderr, "Error: %v\n", errorHandler.HandleSimple(err))
		os.Exit(1)
	}
}
