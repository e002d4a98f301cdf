// Package scrape provides goquery-backed rate strategies for provider
// pages that expose USD buy/sell pairs in loosely structured HTML.
//
// Three page shapes are covered:
//
//   - RowStrategy: an authority page listing currencies as table rows
//     (central-bank exchange rate listings)
//   - BlockStrategy: a commercial-bank page where the rates live
//     somewhere inside the first block mentioning the currency
//   - TextScanStrategy: a page carrying only a mid-market hint in its
//     running text, from which a pair is synthesized with a spread
//
// Strategies never panic: any transport error, parse failure or
// missing structure is returned as an error and absorbed by the chain
package scrape

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sig-0/usdreport/provider"
	"github.com/sig-0/usdreport/provider/numeric"
)

const userAgent = "Mozilla/5.0 (compatible; usdreport/1.0)"

var (
	errNoMatchingRow   = errors.New("no table row matches the currency")
	errNoMatchingBlock = errors.New("no block matches the currency")
	errNoPair          = errors.New("no plausible buy/sell pair found")
	errNoMidRate       = errors.New("no plausible mid rate found")
)

// newClient creates the strategy HTTP client. Certificate verification
// is skipped, several of the scraped government sites serve broken
// chains
func newClient(timeout time.Duration) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: true, //nolint:gosec // Fine to ignore
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: tr,
	}
}

// fetchDocument GETs the URL and parses the response body into a query doc
func fetchDocument(
	ctx context.Context,
	client *http.Client,
	url string,
) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("unable to create new GET request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to execute GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to construct query doc: %w", err)
	}

	return doc, nil
}

// containsAny reports whether the text contains any of the match tokens
func containsAny(text string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(text, token) {
			return true
		}
	}

	return false
}

// RowStrategy scrapes an authority page that lists currencies as table
// rows, locating the row whose text matches the target currency name
type RowStrategy struct {
	client *http.Client

	name  string
	url   string
	match []string
	band  numeric.Band
}

// NewRowStrategy creates a new table row scraping strategy
func NewRowStrategy(
	name string,
	url string,
	match []string,
	band numeric.Band,
	timeout time.Duration,
) *RowStrategy {
	return &RowStrategy{
		client: newClient(timeout),
		name:   name,
		url:    url,
		match:  match,
		band:   band,
	}
}

func (s *RowStrategy) Name() string {
	return s.name
}

func (s *RowStrategy) Attempt(ctx context.Context) (*provider.Quote, error) {
	doc, err := fetchDocument(ctx, s.client, s.url)
	if err != nil {
		return nil, err
	}

	row := doc.Find("tr").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return containsAny(sel.Text(), s.match)
	}).First()

	if row.Length() == 0 {
		// Fall back to locating a matching cell's parent row
		cell := doc.Find("td,th").FilterFunction(func(_ int, sel *goquery.Selection) bool {
			return containsAny(sel.Text(), s.match)
		}).First()

		row = cell.Closest("tr")
	}

	if row.Length() == 0 {
		return nil, errNoMatchingRow
	}

	var fragments []string

	row.Find("td,th,span,div").Each(func(_ int, sel *goquery.Selection) {
		fragments = append(fragments, strings.TrimSpace(sel.Text()))
	})

	buy, sell, ok := numeric.PickPair(fragments, s.band)
	if !ok {
		return nil, errNoPair
	}

	return &provider.Quote{Buy: buy, Sell: sell}, nil
}

// BlockStrategy scrapes a secondary bank page, locating the first
// block that mentions the target currency and pair-selecting across
// its descendant text nodes
type BlockStrategy struct {
	client *http.Client

	name  string
	url   string
	match []string
	band  numeric.Band
}

// NewBlockStrategy creates a new block scraping strategy
func NewBlockStrategy(
	name string,
	url string,
	match []string,
	band numeric.Band,
	timeout time.Duration,
) *BlockStrategy {
	return &BlockStrategy{
		client: newClient(timeout),
		name:   name,
		url:    url,
		match:  match,
		band:   band,
	}
}

func (s *BlockStrategy) Name() string {
	return s.name
}

func (s *BlockStrategy) Attempt(ctx context.Context) (*provider.Quote, error) {
	doc, err := fetchDocument(ctx, s.client, s.url)
	if err != nil {
		return nil, err
	}

	block := doc.Find("section,div,table").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return containsAny(sel.Text(), s.match)
	}).First()

	if block.Length() == 0 {
		return nil, errNoMatchingBlock
	}

	var fragments []string

	block.Find("td,th,div,span,p").Each(func(_ int, sel *goquery.Selection) {
		fragments = append(fragments, strings.TrimSpace(sel.Text()))
	})

	buy, sell, ok := numeric.PickPair(fragments, s.band)
	if !ok {
		return nil, errNoPair
	}

	return &provider.Quote{Buy: buy, Sell: sell}, nil
}

// TextScanStrategy scans the whole page text for the first number
// inside the plausibility band and treats it as a mid-market value.
// Used for pages that only hint at the rate in running text
type TextScanStrategy struct {
	client *http.Client

	name   string
	url    string
	band   numeric.Band
	spread provider.Spread
}

// NewTextScanStrategy creates a new page text scanning strategy
func NewTextScanStrategy(
	name string,
	url string,
	band numeric.Band,
	spread provider.Spread,
	timeout time.Duration,
) *TextScanStrategy {
	return &TextScanStrategy{
		client: newClient(timeout),
		name:   name,
		url:    url,
		band:   band,
		spread: spread,
	}
}

func (s *TextScanStrategy) Name() string {
	return s.name
}

func (s *TextScanStrategy) Attempt(ctx context.Context) (*provider.Quote, error) {
	doc, err := fetchDocument(ctx, s.client, s.url)
	if err != nil {
		return nil, err
	}

	for _, field := range strings.Fields(doc.Text()) {
		mid, ok := numeric.Parse(field, s.band)
		if !ok {
			continue
		}

		quote := s.spread.Apply(mid)

		return &quote, nil
	}

	return nil, errNoMidRate
}
