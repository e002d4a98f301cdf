// Package wordpress publishes finished articles through the WordPress
// REST API, using an application password for auth
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sig-0/usdreport/report"
)

// Config is the WordPress publishing configuration
type Config struct {
	// URL is the posts endpoint,
	// e.g. https://example.com/wp-json/wp/v2/posts
	URL string `toml:"url"`

	// User is a WordPress user with publishing rights
	User string `toml:"user"`

	// AppPassword is the application password generated for the user
	AppPassword string `toml:"app_password"`

	// Categories maps country codes to WordPress category IDs
	Categories map[string]int `toml:"categories"`

	// Status is the post status, "draft" while testing
	Status string `toml:"publish_status"`
}

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Publisher publishes articles to a WordPress site
type Publisher struct {
	client *http.Client
	logger *slog.Logger

	config Config
}

type Option func(p *Publisher)

// WithLogger specifies the logger for the publisher
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = l
	}
}

// New creates a new WordPress publisher
func New(config Config, timeout time.Duration, opts ...Option) *Publisher {
	p := &Publisher{
		client: &http.Client{
			Timeout: timeout,
		},
		logger: noopLogger,
		config: config,
	}

	// Apply the options
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// postRequest is the WordPress post creation body
type postRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	Slug       string `json:"slug"`
	Excerpt    string `json:"excerpt"`
	Categories []int  `json:"categories"`
}

// postResponse is the relevant part of the WordPress response
type postResponse struct {
	ID int `json:"id"`
}

// Publish creates a post for the payload's country and article text
func (p *Publisher) Publish(ctx context.Context, payload *report.Payload, article string) error {
	status := p.config.Status
	if status == "" {
		status = "draft"
	}

	body := postRequest{
		Title:      fmt.Sprintf("سعر الدولار اليوم في %s - %s", payload.Country, payload.Date),
		Content:    article,
		Status:     status,
		Slug:       fmt.Sprintf("usd-%s-%s", payload.Country, payload.Date),
		Excerpt:    fmt.Sprintf("آخر تحديث لسعر الدولار مقابل %s بتاريخ %s.", payload.Currency, payload.Date),
		Categories: []int{p.config.Categories[payload.Country.String()]},
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("unable to marshal post body: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.config.URL,
		bytes.NewReader(raw),
	)
	if err != nil {
		return fmt.Errorf("unable to create POST request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.config.User, p.config.AppPassword)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to execute POST request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	var created postResponse

	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return fmt.Errorf("unable to decode publish response: %w", err)
	}

	p.logger.Info(
		"article published",
		"country", payload.Country,
		"post_id", created.ID,
		"status", status,
	)

	return nil
}
