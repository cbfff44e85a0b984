package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thicknavyrain/brockwell-park-noise/cmd"
	"github.com/thicknavyrain/brockwell-park-noise/internal/conf"
	"github.com/thicknavyrain/brockwell-park-noise/internal/logging"
)

func main() {
	// Diagnostics go to stderr, stdout carries only results.
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error while loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Terminate promptly on Ctrl-C with the conventional interrupt exit code.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nCalculation interrupted by user.")
		os.Exit(130)
	}()

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
