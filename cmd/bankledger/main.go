// Command bankledger runs the in-memory banking ledger behind an
// interactive text menu, an HTTP API, or both at once.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"bankledger/pkg/api"
	"bankledger/pkg/config"
	"bankledger/pkg/ledger"
	"bankledger/pkg/logging"
	"bankledger/pkg/menu"
	"bankledger/pkg/metrics"
	memorymetrics "bankledger/pkg/metrics/memory"
	prommetrics "bankledger/pkg/metrics/prometheus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	mode := flag.String("mode", "", "menu, serve, or both (overrides config)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	flag.Parse()

	// A missing .env file is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *addr != "" {
		cfg.HTTP.Address = *addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	// The HTTP shell exports Prometheus metrics; the standalone menu keeps
	// an in-memory collector so the ledger path is always instrumented.
	var collector metrics.Collector
	if cfg.Mode == config.ModeMenu {
		collector = memorymetrics.NewCollector()
	} else {
		pc, err := prommetrics.NewCollector(cfg.MetricsNamespace)
		if err != nil {
			return err
		}
		collector = pc
	}

	l, err := ledger.New(ledger.Config{
		Logger:          logger,
		Metrics:         collector,
		DuplicatePolicy: ledger.DuplicatePolicy(cfg.DuplicatePolicy),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Mode == config.ModeServe || cfg.Mode == config.ModeBoth {
		server := api.NewServer(l, collector, logger, api.ServerConfig{
			Address:      cfg.HTTP.Address,
			ReadTimeout:  cfg.HTTP.ReadTimeout.Std(),
			WriteTimeout: cfg.HTTP.WriteTimeout.Std(),
		})
		g.Go(server.Start)
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Stop(shutdownCtx)
		})
	}

	if cfg.Mode == config.ModeMenu || cfg.Mode == config.ModeBoth {
		g.Go(func() error {
			// When the menu exits the rest of the process winds down too.
			defer stop()
			return menu.New(l, os.Stdin, os.Stdout, logger).Run()
		})
	}

	return g.Wait()
}
