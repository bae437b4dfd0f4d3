package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/BadFoxAI/patchrc/pkg/log"
)

func main() {
	// Setup logging
	ctx := setupLogging(context.Background())

	// Create console logger for user-facing output
	console := log.New(os.Stdout, zerolog.InfoLevel)
	ctx = log.NewContext(ctx, console)

	// Create and run root command
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportFailure(ctx, err)
		os.Exit(1)
	}
}
