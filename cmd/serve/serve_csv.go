package serve

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/sync/errgroup"

	"github.com/sig-0/usdreport/cmd/env"
	"github.com/sig-0/usdreport/server"
	"github.com/sig-0/usdreport/storage/csv"
)

type serveCSVCfg struct {
	rootCfg *serveCfg
}

// newServeCSVCmd creates the serve csv command
func newServeCSVCmd(rootCfg *serveCfg) *ffcli.Command {
	cfg := &serveCSVCfg{
		rootCfg: rootCfg,
	}

	fs := flag.NewFlagSet("csv", flag.ExitOnError)
	cfg.rootCfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "csv",
		ShortUsage: "serve csv [flags]",
		LongHelp:   "Serves the usdreport backend, using the flat CSV history store",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *serveCSVCfg) exec(ctx context.Context, _ []string) error {
	// Read the service configuration, if any
	if err := c.rootCfg.loadConfig(); err != nil {
		return fmt.Errorf("unable to read service config, %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("unable to load .env file")
	}

	// Create the CSV-backed store
	store := csv.NewStorage(c.rootCfg.config.StorePath)

	// Create the reporting service
	orchestrator, err := newReportOrchestrator(logger, store, c.rootCfg.config)
	if err != nil {
		return err
	}

	// Create the server instance
	s, err := server.New(
		store,
		server.WithLogger(logger),
		server.WithConfig(c.rootCfg.config),
	)
	if err != nil {
		return fmt.Errorf("unable to create server, %w", err)
	}

	runCtx, cancelFn := signal.NotifyContext(
		ctx,
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancelFn()

	group, gCtx := errgroup.WithContext(runCtx)

	// Start the HTTP server
	group.Go(func() error {
		return s.Serve(gCtx)
	})

	// Start the reporting service
	group.Go(func() error {
		return orchestrator.Start(gCtx)
	})

	return group.Wait()
}
