package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickPair(t *testing.T) {
	t.Parallel()

	band := Band{Low: 5, High: 400}

	testTable := []struct {
		name         string
		fragments    []string
		expectedBuy  float64
		expectedSell float64
		ok           bool
	}{
		{
			name:      "no valid numbers",
			fragments: []string{"", "USD", "-"},
		},
		{
			name:         "single number duplicated",
			fragments:    []string{"US Dollar", "60.45"},
			expectedBuy:  60.45,
			expectedSell: 60.45,
			ok:           true,
		},
		{
			name:         "smallest adjacent gap wins",
			fragments:    []string{"60.10", "60.45", "12"},
			expectedBuy:  60.1,
			expectedSell: 60.45,
			ok:           true,
		},
		{
			name:         "two numbers",
			fragments:    []string{"48.60", "48.75"},
			expectedBuy:  48.6,
			expectedSell: 48.75,
			ok:           true,
		},
		{
			name:         "tie keeps first pair in sorted order",
			fragments:    []string{"10", "20", "30"},
			expectedBuy:  10,
			expectedSell: 20,
			ok:           true,
		},
		{
			name:         "identical values",
			fragments:    []string{"60.45", "60.45", "99"},
			expectedBuy:  60.45,
			expectedSell: 60.45,
			ok:           true,
		},
		{
			name:         "out of band fragments ignored",
			fragments:    []string{"2024", "60.10", "60.45", "0.5"},
			expectedBuy:  60.1,
			expectedSell: 60.45,
			ok:           true,
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			buy, sell, ok := PickPair(testCase.fragments, band)

			require.Equal(t, testCase.ok, ok)
			assert.InDelta(t, testCase.expectedBuy, buy, 0.0001)
			assert.InDelta(t, testCase.expectedSell, sell, 0.0001)
		})
	}
}
