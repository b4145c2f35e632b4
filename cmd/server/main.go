package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/me/optrack/internal/config"
	"github.com/me/optrack/internal/jobs"
	"github.com/me/optrack/internal/logging"
	"github.com/me/optrack/internal/seed"
	"github.com/me/optrack/internal/server"
	"github.com/me/optrack/internal/store"
	"github.com/me/optrack/internal/tracker"
)

func main() {
	defaults := config.DefaultServerConfig()

	configFile := flag.String("config", "", "Path to a YAML config file (default: ./optrack.yaml or /etc/optrack/optrack.yaml if present)")
	flag.String("addr", defaults.Addr, "Listen address")
	flag.String("log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	flag.String("log-format", defaults.LogFormat, "Log format (text, json)")
	flag.String("seed", "", "YAML file replacing the built-in live submissions")
	flag.Duration("job-interval", defaults.JobInterval, "Interval between background job runs")
	flag.Bool("demo", false, "Run background jobs every 30s")
	flag.Bool("debug", false, "Shorthand for --log-level=debug")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line win over the file and environment.
	cfg, err = cfg.ApplyFlags(flag.CommandLine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	// Open the in-memory store, migrate and seed it.
	st, err := store.NewSQLiteStore(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate store: %v\n", err)
		os.Exit(1)
	}
	sum, err := seed.Load(context.Background(), st, seed.Options{SubmissionsFile: cfg.SeedFile}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed store: %v\n", err)
		os.Exit(1)
	}
	logger.Info("store ready", "live", sum.Live, "archived", sum.Archived, "reminders", sum.Reminders)

	catalog, err := seed.LoadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load report type catalog: %v\n", err)
		os.Exit(1)
	}
	dir, err := seed.LoadDirectory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load directory: %v\n", err)
		os.Exit(1)
	}

	svc := tracker.New(st, catalog, logger)

	// Background jobs: reminder checks feed the banner, directory refresh
	// keeps relationship columns current.
	feed := jobs.NewFeed()
	reminderJob := jobs.NewReminderJob(svc, feed, logger)
	directoryJob := jobs.NewDirectoryJob(svc, dir, logger)
	loop := jobs.NewLoop(jobs.Config{Interval: cfg.Interval()}, logger, reminderJob, directoryJob)

	srv := server.New(cfg, svc, logger,
		server.WithReminderFeed(feed),
		server.WithDirectoryJob(directoryJob),
	)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := loop.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("job loop stopped", "error", err)
		}
	}()

	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "job_interval", cfg.Interval())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	// Stop the job loop before the HTTP server.
	if err := loop.Stop(); err != nil {
		logger.Error("job loop stop error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
