package numeric

import "sort"

// PickPair selects the most plausible (buy, sell) pair among the given
// text fragments, typically the cells of a scraped table row.
//
// Every fragment is run through Parse; with a single valid number the
// value doubles as both buy and sell, otherwise the values are sorted
// ascending and the adjacent pair with the smallest gap wins (ties go
// to the first such pair). Real pages often carry extra unrelated
// numbers (dates, footnote markers), and a minimal adjacent gap is the
// cheapest proxy for "this looks like a real buy/sell spread".
//
// Known limitation: when a row lists more than two true rate fields
// (e.g. a previous day's rate alongside today's), the heuristic can
// pick the wrong pair
func PickPair(fragments []string, b Band) (float64, float64, bool) {
	vals := make([]float64, 0, len(fragments))

	for _, fragment := range fragments {
		if v, ok := Parse(fragment, b); ok {
			vals = append(vals, v)
		}
	}

	if len(vals) == 0 {
		return 0, 0, false
	}

	if len(vals) == 1 {
		v := Round(vals[0], 3)

		return v, v, true
	}

	sort.Float64s(vals)

	var (
		buy  = vals[0]
		sell = vals[len(vals)-1]
		gap  = sell - buy
	)

	for i := 0; i < len(vals)-1; i++ {
		if g := vals[i+1] - vals[i]; g < gap {
			buy, sell, gap = vals[i], vals[i+1], g
		}
	}

	return Round(buy, 3), Round(sell, 3), true
}
