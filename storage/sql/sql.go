package sql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sig-0/usdreport/storage/types"
)

// Storage is the Postgres-backed history store, for deployments where
// the flat CSV file is not enough
type Storage struct {
	conn *pgx.Conn
}

// NewStorage creates a new Postgres history store
func NewStorage(conn *pgx.Conn) *Storage {
	return &Storage{
		conn: conn,
	}
}

func (s *Storage) SaveRate(ctx context.Context, row *types.HistoryRow) error {
	_, err := s.conn.Exec(
		ctx,
		`INSERT INTO rate_history (day, country, buy, sell) VALUES ($1, $2, $3, $4)`,
		row.Date.UTC(),
		row.Country.String(),
		row.Buy,
		row.Sell,
	)
	if err != nil {
		return fmt.Errorf("unable to save history row: %w", err)
	}

	return nil
}

func (s *Storage) History(ctx context.Context, country types.Country) ([]types.HistoryRow, error) {
	rows, err := s.conn.Query(
		ctx,
		`SELECT day, country, buy, sell FROM rate_history WHERE country = $1 ORDER BY id`,
		country.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch history rows: %w", err)
	}
	defer rows.Close()

	var out []types.HistoryRow

	for rows.Next() {
		var (
			day           time.Time
			countryColumn string
			buy, sell     float64
		)

		if err := rows.Scan(&day, &countryColumn, &buy, &sell); err != nil {
			return nil, fmt.Errorf("unable to scan history row: %w", err)
		}

		out = append(out, types.HistoryRow{
			Date:    day.UTC(),
			Country: types.Country(countryColumn),
			Buy:     buy,
			Sell:    sell,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to read history rows: %w", err)
	}

	return out, nil
}

func (s *Storage) Countries(ctx context.Context) ([]types.Country, error) {
	rows, err := s.conn.Query(
		ctx,
		`SELECT DISTINCT country FROM rate_history ORDER BY country`,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch countries: %w", err)
	}
	defer rows.Close()

	var out []types.Country

	for rows.Next() {
		var country string

		if err := rows.Scan(&country); err != nil {
			return nil, fmt.Errorf("unable to scan country: %w", err)
		}

		out = append(out, types.Country(country))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to read countries: %w", err)
	}

	return out, nil
}
