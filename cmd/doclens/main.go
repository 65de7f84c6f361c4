package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"DocLens/internal/app"
	"DocLens/internal/config"
	"DocLens/internal/logging"
)

func main() {
	sourceURL := flag.String("url", "", "URL of the document to evaluate")
	keywords := flag.String("keywords", "", "comma-separated domain keywords passed to the evaluator")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s -url <document url> [-keywords <k1, k2>]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)

	if err := application.Run(ctx, *sourceURL, *keywords); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
