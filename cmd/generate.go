package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/usdreport/cmd/env"
	"github.com/sig-0/usdreport/cmd/serve"
	"github.com/sig-0/usdreport/config"
	"github.com/sig-0/usdreport/storage/csv"
	"github.com/sig-0/usdreport/storage/types"
)

// generateCfg wraps the generate configuration
type generateCfg struct {
	config *config.Config

	configPath string
	countries  string
	storePath  string
}

// newGenerateCmd creates the generate command: a one-shot report run
// over the configured countries, against the CSV history store
func newGenerateCmd() *ffcli.Command {
	cfg := &generateCfg{
		config: config.DefaultConfig(),
	}

	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "generate",
		ShortUsage: "generate [flags]",
		LongHelp:   "Runs a one-shot daily report for the configured countries",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *generateCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.configPath,
		"config",
		"",
		"the path to the service TOML configuration, if any",
	)

	fs.StringVar(
		&c.countries,
		"countries",
		"",
		"a comma-separated country list, overriding the configuration",
	)

	fs.StringVar(
		&c.storePath,
		"store",
		"",
		"the CSV history store path, overriding the configuration",
	)
}

func (c *generateCfg) exec(ctx context.Context, _ []string) error {
	// Read the service configuration, if any
	if c.configPath != "" {
		cfg, err := config.Read(c.configPath)
		if err != nil {
			return fmt.Errorf("unable to read service config, %w", err)
		}

		c.config = cfg
	}

	// Apply the flag overrides
	if c.countries != "" {
		c.config.Countries = strings.Split(c.countries, ",")
	}

	if c.storePath != "" {
		c.config.StorePath = c.storePath
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load .env
	if err := godotenv.Load(); err != nil {
		logger.Warn("unable to load .env file")
	}

	// Create the CSV-backed store
	store := csv.NewStorage(c.config.StorePath)

	// Create the reporter
	reporter := serve.NewReporter(logger, store, c.config)

	countries := make([]types.Country, 0, len(c.config.Countries))
	for _, country := range c.config.Countries {
		countries = append(
			countries,
			types.Country(strings.ToLower(strings.TrimSpace(country))),
		)
	}

	// Run the one-shot report batch
	if err := reporter.Run(ctx, countries); err != nil {
		return fmt.Errorf("report batch finished with errors: %w", err)
	}

	logger.Info("report batch complete")

	return nil
}
