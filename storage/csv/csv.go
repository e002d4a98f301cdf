// Package csv implements the flat-file history store, a small
// append-only CSV at a well-known path with the columns
// date, country, buy, sell
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sig-0/usdreport/storage/types"
)

// DefaultPath is the well-known history store location
const DefaultPath = "data/rates_history.csv"

const dayFormat = "2006-01-02"

var header = []string{"date", "country", "buy", "sell"}

// dateFormats are the formats tolerated when reading back rows.
// Rows with dates in none of these formats are dropped
var dateFormats = []string{
	dayFormat,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Storage is the CSV-backed history store. Appends are serialized with
// a mutex; coordination across multiple writer processes is not
// provided, a single writer process per run is assumed
type Storage struct {
	path string

	mu sync.Mutex
}

// NewStorage creates a CSV history store at the given path
func NewStorage(path string) *Storage {
	return &Storage{
		path: path,
	}
}

// SaveRate appends one row to the store, creating the backing file
// with a header if it does not exist yet
func (s *Storage) SaveRate(_ context.Context, row *types.HistoryRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create store directory: %w", err)
		}
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("unable to open store: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("unable to stat store: %w", err)
	}

	w := csv.NewWriter(file)

	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("unable to write store header: %w", err)
		}
	}

	record := []string{
		row.Date.UTC().Format(dayFormat),
		row.Country.String(),
		strconv.FormatFloat(row.Buy, 'f', -1, 64),
		strconv.FormatFloat(row.Sell, 'f', -1, 64),
	}

	if err := w.Write(record); err != nil {
		return fmt.Errorf("unable to write store row: %w", err)
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("unable to flush store row: %w", err)
	}

	return nil
}

// History returns all rows for the given country, in append order.
// A missing or corrupted store reads as empty, data loss is acceptable
// here but a crash is not
func (s *Storage) History(_ context.Context, country types.Country) ([]types.HistoryRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readAll()
	if err != nil {
		return nil, nil // treat as empty
	}

	out := make([]types.HistoryRow, 0, len(rows))

	for _, row := range rows {
		if row.Country == country {
			out = append(out, row)
		}
	}

	return out, nil
}

// Countries lists all countries present in the store, sorted
func (s *Storage) Countries(_ context.Context) ([]types.Country, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readAll()
	if err != nil {
		return nil, nil // treat as empty
	}

	seen := make(map[types.Country]struct{})

	for _, row := range rows {
		seen[row.Country] = struct{}{}
	}

	out := make([]types.Country, 0, len(seen))

	for country := range seen {
		out = append(out, country)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i] < out[j]
	})

	return out, nil
}

// readAll reads every parsable row from the backing file,
// silently dropping anything malformed
func (s *Storage) readAll() ([]types.HistoryRow, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows []types.HistoryRow

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue // skip the malformed record
			}

			break // unreadable beyond this point
		}

		row, ok := parseRecord(record)
		if !ok {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func parseRecord(record []string) (types.HistoryRow, bool) {
	if len(record) < 4 {
		return types.HistoryRow{}, false
	}

	date, ok := parseDate(record[0])
	if !ok {
		return types.HistoryRow{}, false
	}

	buy, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return types.HistoryRow{}, false
	}

	sell, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return types.HistoryRow{}, false
	}

	return types.HistoryRow{
		Date:    date,
		Country: types.Country(record[1]),
		Buy:     buy,
		Sell:    sell,
	}, true
}

func parseDate(raw string) (time.Time, bool) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}
