// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tamzrod/modbus-preflight/internal/config"
	"github.com/tamzrod/modbus-preflight/internal/validate"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: preflight <config.yaml>")
		os.Exit(2)
	}

	cfgPath := os.Args[1]

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger setup failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// --------------------
	// Load + shape check
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	// --------------------
	// Validate + normalize
	// --------------------

	out, report := validate.NewPipeline(logger).Run(cfg)

	logger.Info("preflight finished",
		zap.Int("hubs", report.Hubs),
		zap.Int("entities", report.Entities),
		zap.Int("rejected", report.Rejected))

	// --------------------
	// Emit normalized tree
	// --------------------

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		logger.Fatal("emit normalized config failed", zap.Error(err))
	}
	if err := enc.Close(); err != nil {
		logger.Fatal("emit normalized config failed", zap.Error(err))
	}

	if report.Err() != nil {
		_ = logger.Sync()
		os.Exit(1)
	}
}
