package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sig-0/usdreport/analyzer"
	"github.com/sig-0/usdreport/storage/types"
)

var (
	errUnableToFetchRates     = errors.New("unable to fetch rates")
	errUnableToFetchCountries = errors.New("unable to fetch countries")

	errInvalidCountry = errors.New("invalid country")
	errUnknownCountry = errors.New("unknown country")
)

// Countries lists the countries with recorded history
func (s *Server) Countries(w http.ResponseWriter, r *http.Request) {
	items, err := s.storage.Countries(r.Context())
	if err != nil {
		s.logger.Debug(
			"unable to fetch countries",
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToFetchCountries,
		)

		return
	}

	resp := &CountriesResponse{
		Results: items,
	}

	writeJSON(w, http.StatusOK, resp)
}

// LatestRates returns the most recent recorded rate of every country
func (s *Server) LatestRates(w http.ResponseWriter, r *http.Request) {
	countries, err := s.storage.Countries(r.Context())
	if err != nil {
		s.logger.Debug(
			"unable to fetch countries",
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToFetchRates,
		)

		return
	}

	results := make([]types.HistoryRow, 0, len(countries))

	for _, country := range countries {
		rows, err := s.history(r.Context(), country)
		if err != nil {
			s.logger.Debug(
				"unable to fetch history",
				"country", country,
				"err", err,
			)

			writeError(
				w,
				http.StatusInternalServerError,
				errUnableToFetchRates,
			)

			return
		}

		if len(rows) == 0 {
			continue
		}

		results = append(results, rows[0])
	}

	resp := &RatesResponse{
		Results: results,
	}

	writeJSON(w, http.StatusOK, resp)
}

// RateHistory returns the country's recorded history, most recent first
func (s *Server) RateHistory(w http.ResponseWriter, r *http.Request) {
	country, err := parseCountry(chi.URLParam(r, "country"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	rows, err := s.history(r.Context(), country)
	if err != nil {
		s.logger.Debug(
			"unable to fetch history",
			"country", country,
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToFetchRates,
		)

		return
	}

	if len(rows) == 0 {
		writeError(w, http.StatusNotFound, errUnknownCountry)

		return
	}

	resp := &RatesResponse{
		Results: rows,
	}

	writeJSON(w, http.StatusOK, resp)
}

// RateChange returns the country's day-over-day movement
func (s *Server) RateChange(w http.ResponseWriter, r *http.Request) {
	country, err := parseCountry(chi.URLParam(r, "country"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	rows, err := s.history(r.Context(), country)
	if err != nil {
		s.logger.Debug(
			"unable to fetch history",
			"country", country,
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToFetchRates,
		)

		return
	}

	if len(rows) == 0 {
		writeError(w, http.StatusNotFound, errUnknownCountry)

		return
	}

	writeJSON(w, http.StatusOK, analyzer.Change(rows))
}

// history returns the country's prepared history, cached between reads
func (s *Server) history(ctx context.Context, country types.Country) ([]types.HistoryRow, error) {
	if rows, ok := s.cache.getHistory(country); ok {
		return rows, nil
	}

	raw, err := s.storage.History(ctx, country)
	if err != nil {
		return nil, err
	}

	rows := analyzer.Prepare(raw)

	s.cache.setHistory(country, rows)

	return rows, nil
}

func parseCountry(v string) (types.Country, error) {
	c := strings.ToLower(strings.TrimSpace(v))
	if c == "" {
		return "", errInvalidCountry
	}

	return types.Country(c), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Fine to ignore
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := &ErrorResponse{
		Error: err.Error(),
	}

	writeJSON(w, status, resp)
}
