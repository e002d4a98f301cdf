package types

import "time"

// Country is the lowercase country key used across the system,
// e.g. "egypt", "iraq", "jordan"
type Country string

func (c Country) String() string {
	return string(c)
}

// Source identifies which strategy actually supplied a rate's values
type Source string

// SourceUnknown marks a rate produced by the last-resort fallback,
// after every configured strategy came up empty
const SourceUnknown Source = "Unknown"

func (s Source) String() string {
	return string(s)
}

type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

func (d Direction) String() string {
	return string(d)
}

// Rate is a single acquired USD -> local currency buy/sell pair.
// It is created fresh on every acquisition and never mutated after
// construction; only its (date, country, buy, sell) projection is persisted
type Rate struct {
	Country  Country `json:"country"`
	Currency string  `json:"currency"` // local currency display name
	Source   Source  `json:"source"`
	Buy      float64 `json:"buy"`
	Sell     float64 `json:"sell"`
}

// HistoryRow is the persisted projection of a Rate, at day granularity
type HistoryRow struct {
	Date    time.Time `json:"date"`
	Country Country   `json:"country"`
	Buy     float64   `json:"buy"`
	Sell    float64   `json:"sell"`
}

// ChangeResult is the derived day-over-day movement for one country.
// It is recomputed from history on each request, never stored
type ChangeResult struct {
	TodayBuy      *float64  `json:"today_buy,omitempty"`
	YesterdayBuy  *float64  `json:"yesterday_buy,omitempty"`
	Direction     Direction `json:"direction"`
	ChangePercent float64   `json:"change_percent"`
}
