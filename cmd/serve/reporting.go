package serve

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sig-0/usdreport/config"
	"github.com/sig-0/usdreport/report"
	"github.com/sig-0/usdreport/report/wordpress"
	"github.com/sig-0/usdreport/sched"
	"github.com/sig-0/usdreport/storage"
	"github.com/sig-0/usdreport/storage/types"
)

const (
	// One report per country per day
	reportInterval = time.Hour * 24

	publishTimeout = time.Second * 30
)

// NewReporter wires a reporter over the given store, per the service
// configuration
func NewReporter(
	logger *slog.Logger,
	store storage.Storage,
	cfg *config.Config,
) *report.Reporter {
	reporterOpts := []report.Option{
		report.WithLogger(logger),
		report.WithArticleDir(cfg.ArticleDir),
	}

	if cfg.Content != nil {
		reporterOpts = append(
			reporterOpts,
			report.WithWordBounds(cfg.Content.MinWords, cfg.Content.MaxWords),
		)
	}

	if cfg.WordPress != nil {
		publisher := wordpress.New(
			*cfg.WordPress,
			publishTimeout,
			wordpress.WithLogger(logger),
		)

		reporterOpts = append(reporterOpts, report.WithPublisher(publisher))
	}

	return report.New(
		DefaultRegistry(logger),
		store,
		reporterOpts...,
	)
}

// newReportOrchestrator wires the daily per-country report jobs
func newReportOrchestrator(
	logger *slog.Logger,
	store storage.Storage,
	cfg *config.Config,
) (*sched.Orchestrator, error) {
	reporter := NewReporter(logger, store, cfg)

	orchestrator := sched.New(
		sched.WithLogger(logger),
		sched.WithQueryInterval(time.Second*30),
	)

	for _, country := range cfg.Countries {
		job := report.NewCountryJob(
			reporter,
			types.Country(country),
			reportInterval,
		)

		if err := orchestrator.Register(job); err != nil {
			return nil, fmt.Errorf("unable to register report job: %w", err)
		}
	}

	return orchestrator, nil
}
