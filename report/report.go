// Package report runs the per-country reporting pipeline: acquire the
// day's rate, persist it to history, analyze the day-over-day change,
// and hand the resulting payload to the downstream article-generation
// and publishing collaborators
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sig-0/usdreport/analyzer"
	"github.com/sig-0/usdreport/provider"
	"github.com/sig-0/usdreport/storage"
	"github.com/sig-0/usdreport/storage/types"
)

// Payload is the complete input the downstream prose-generation and
// publishing steps require
type Payload struct {
	Country  types.Country       `json:"country"`
	Currency string              `json:"currency"`
	Source   types.Source        `json:"source"`
	Date     string              `json:"date"` // ISO day
	Change   *types.ChangeResult `json:"change"`
	Buy      float64             `json:"buy"`
	Sell     float64             `json:"sell"`
}

// Generator turns a structured prompt into article text. The concrete
// implementation (a language-model call) is an external collaborator
// with its own retry policy; it is only assumed to eventually return
// or fail so the batch loop can move on
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Publisher publishes a finished article for the given payload
type Publisher interface {
	Publish(ctx context.Context, payload *Payload, article string) error
}

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Reporter drives the reporting pipeline for configured countries
type Reporter struct {
	logger *slog.Logger

	registry *provider.Registry
	storage  storage.Storage
	analyzer *analyzer.Analyzer

	generator Generator // optional
	publisher Publisher // optional

	articleDir string // optional
	now        func() time.Time

	minWords int // optional article length bounds
	maxWords int
}

type Option func(r *Reporter)

// WithLogger specifies the logger for the reporter
func WithLogger(l *slog.Logger) Option {
	return func(r *Reporter) {
		r.logger = l
	}
}

// WithGenerator specifies the article text generator
func WithGenerator(g Generator) Option {
	return func(r *Reporter) {
		r.generator = g
	}
}

// WithPublisher specifies the article publisher
func WithPublisher(p Publisher) Option {
	return func(r *Reporter) {
		r.publisher = p
	}
}

// WithArticleDir specifies the directory generated article markdown
// is kept in for review
func WithArticleDir(dir string) Option {
	return func(r *Reporter) {
		r.articleDir = dir
	}
}

// WithWordBounds bounds the generated article length, in words
func WithWordBounds(minWords, maxWords int) Option {
	return func(r *Reporter) {
		r.minWords = minWords
		r.maxWords = maxWords
	}
}

// WithNowFunc overrides the clock, for tests
func WithNowFunc(now func() time.Time) Option {
	return func(r *Reporter) {
		r.now = now
	}
}

// New creates a new reporter
func New(
	registry *provider.Registry,
	store storage.Storage,
	opts ...Option,
) *Reporter {
	r := &Reporter{
		logger:   noopLogger,
		registry: registry,
		storage:  store,
		analyzer: analyzer.New(store),
		now:      time.Now,
	}

	// Apply the options
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Payload acquires the country's rate, appends it to history, and
// returns the complete downstream payload. Acquisition errors (unknown
// country, normalization violation) are fatal for this country only
func (r *Reporter) Payload(ctx context.Context, country types.Country) (*Payload, error) {
	rate, err := r.registry.Rate(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("unable to acquire rate: %w", err)
	}

	today := truncateToDay(r.now())

	row := &types.HistoryRow{
		Date:    today,
		Country: rate.Country,
		Buy:     rate.Buy,
		Sell:    rate.Sell,
	}

	if err := r.storage.SaveRate(ctx, row); err != nil {
		return nil, fmt.Errorf("unable to save history row: %w", err)
	}

	change, err := r.analyzer.ChangeFor(ctx, rate.Country)
	if err != nil {
		return nil, fmt.Errorf("unable to analyze change: %w", err)
	}

	return &Payload{
		Country:  rate.Country,
		Currency: rate.Currency,
		Source:   rate.Source,
		Date:     today.Format("2006-01-02"),
		Change:   change,
		Buy:      rate.Buy,
		Sell:     rate.Sell,
	}, nil
}

// Report runs the full pipeline for one country: payload, optional
// article generation and local markdown copy, optional publish
func (r *Reporter) Report(ctx context.Context, country types.Country) (*Payload, error) {
	payload, err := r.Payload(ctx, country)
	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"rate acquired",
		"country", payload.Country,
		"buy", payload.Buy,
		"sell", payload.Sell,
		"source", payload.Source,
		"direction", payload.Change.Direction,
		"change_percent", payload.Change.ChangePercent,
	)

	if r.generator == nil {
		return payload, nil
	}

	article, err := r.generator.Generate(ctx, r.prompt(payload))
	if err != nil {
		return nil, fmt.Errorf("unable to generate article: %w", err)
	}

	if r.articleDir != "" {
		if err := r.writeArticle(payload, article); err != nil {
			// A missing local copy is not worth failing the run over
			r.logger.Error(
				"unable to write article copy",
				"country", payload.Country,
				"err", err,
			)
		}
	}

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, payload, article); err != nil {
			return nil, fmt.Errorf("unable to publish article: %w", err)
		}
	}

	return payload, nil
}

// Run reports every given country, isolating failures: one country's
// fatal error never aborts processing of the remaining countries.
// The joined per-country errors are returned at the end
func (r *Reporter) Run(ctx context.Context, countries []types.Country) error {
	var errs []error

	for _, country := range countries {
		if _, err := r.Report(ctx, country); err != nil {
			r.logger.Error(
				"country report failed",
				"country", country,
				"err", err,
			)

			errs = append(errs, fmt.Errorf("%s: %w", country, err))
		}
	}

	return errors.Join(errs...)
}

// writeArticle keeps a local markdown copy of the generated article
func (r *Reporter) writeArticle(payload *Payload, article string) error {
	if err := os.MkdirAll(r.articleDir, 0o755); err != nil {
		return err
	}

	name := fmt.Sprintf("%s-%s.md", payload.Date, payload.Country)

	return os.WriteFile(filepath.Join(r.articleDir, name), []byte(article), 0o644)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
