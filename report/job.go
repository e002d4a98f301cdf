package report

import (
	"context"
	"fmt"
	"time"

	"github.com/sig-0/usdreport/storage/types"
)

// CountryJob is a recurring report run for a single country,
// registrable with the scheduling orchestrator
type CountryJob struct {
	reporter *Reporter
	country  types.Country
	interval time.Duration
}

// NewCountryJob creates a recurring report job for the given country
func NewCountryJob(
	reporter *Reporter,
	country types.Country,
	interval time.Duration,
) *CountryJob {
	return &CountryJob{
		reporter: reporter,
		country:  country,
		interval: interval,
	}
}

func (j *CountryJob) Name() string {
	return fmt.Sprintf("report-%s", j.country)
}

func (j *CountryJob) Interval() time.Duration {
	return j.interval
}

func (j *CountryJob) Run(ctx context.Context) error {
	_, err := j.reporter.Report(ctx, j.country)

	return err
}
