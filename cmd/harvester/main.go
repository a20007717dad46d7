package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/nndjoli/eqty/internal/api"
	"github.com/nndjoli/eqty/internal/config"
	"github.com/nndjoli/eqty/internal/database"
	"github.com/nndjoli/eqty/internal/harvest"
	"github.com/nndjoli/eqty/internal/session"
	"github.com/nndjoli/eqty/internal/version"
	"github.com/nndjoli/eqty/internal/writer"
)

func main() {
	configPath := flag.String("config", "configs/harvester.yaml", "path to config file")
	symbolList := flag.String("symbols", "", "comma-separated symbols to fetch, skipping discovery")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting harvester",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"regions", cfg.Discovery.Regions,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Assemble the output writers
	runID := uuid.New()
	var outputs writer.Multi

	if cfg.Output.CSVPath != "" {
		csvWriter, err := writer.NewCSVWriter(cfg.Output.CSVPath)
		if err != nil {
			logger.Error("failed to open csv output", "path", cfg.Output.CSVPath, "error", err)
			os.Exit(1)
		}
		outputs = append(outputs, csvWriter)
		logger.Info("csv output enabled", "path", cfg.Output.CSVPath)
	}

	if cfg.Database.Enabled {
		logger.Info("connecting to database",
			"host", cfg.Database.Postgres.Host,
			"port", cfg.Database.Postgres.Port,
			"database", cfg.Database.Postgres.Name,
		)

		pool, err := database.Connect(ctx, cfg.Database.Postgres)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		quoteWriter := writer.NewQuoteWriter(writer.WriterConfig{
			BatchSize:     cfg.Writers.BatchSize,
			FlushInterval: cfg.Writers.FlushInterval,
			BufferSize:    cfg.Writers.BufferSize,
		}, pool, runID, logger)
		if err := quoteWriter.Start(ctx); err != nil {
			logger.Error("failed to start quote writer", "error", err)
			os.Exit(1)
		}
		outputs = append(outputs, quoteWriter)
		logger.Info("database output enabled", "run_id", runID.String())
	}

	// Create session store and API client
	acquirer := session.NewHTTPAcquirer(
		cfg.Session.CookieURL,
		cfg.Session.CrumbURL,
		cfg.API.UserAgent,
	)
	sessions := session.NewStore(acquirer, cfg.Session.AcquireTimeout, logger)

	client := api.NewClient(
		cfg.API.ScreenerURL,
		cfg.API.QuoteURL,
		sessions,
		api.WithUserAgent(cfg.API.UserAgent),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.BackoffBase, cfg.API.BackoffMax),
		api.WithRateLimit(cfg.API.RatePerSec),
		api.WithLogger(logger),
	)

	// Run the harvest
	coordinator := harvest.New(harvest.Config{
		Regions:     cfg.Discovery.Regions,
		PageSize:    cfg.Discovery.PageSize,
		BatchSize:   cfg.Fetcher.BatchSize,
		Concurrency: cfg.Fetcher.Concurrency,
		BatchDelay:  cfg.Fetcher.BatchDelay,
	}, client, sessions, outputs, logger)

	var summary *harvest.Summary
	if *symbolList != "" {
		symbols := splitSymbols(*symbolList)
		summary, err = coordinator.RunSymbols(ctx, symbols)
	} else {
		summary, err = coordinator.Run(ctx)
	}

	closeErr := outputs.Close()

	if err != nil {
		logger.Error("harvest aborted", "error", err)
		os.Exit(1)
	}
	if closeErr != nil {
		logger.Error("output close failed", "error", closeErr)
		os.Exit(1)
	}

	logger.Info("harvester finished",
		"run_id", runID.String(),
		"job_id", summary.JobID.String(),
		"total", summary.Total,
		"fetched", summary.Fetched,
		"failed", len(summary.Failed),
		"duration", summary.Duration.Round(time.Millisecond),
	)

	if len(summary.Failed) > 0 {
		logger.Warn("some tickers were not harvested",
			"symbols", summary.FailedSymbols())
		os.Exit(2)
	}
}

func splitSymbols(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, strings.ToUpper(s))
		}
	}
	return out
}
