package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	band := Band{Low: 5, High: 5000}

	testTable := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{
			name:     "plain decimal",
			input:    "1234.5",
			expected: 1234.5,
			ok:       true,
		},
		{
			name:     "thousands comma",
			input:    "1,234.5",
			expected: 1234.5,
			ok:       true,
		},
		{
			name:     "arabic digits and separators",
			input:    "١٬٢٣٤٫٥",
			expected: 1234.5,
			ok:       true,
		},
		{
			name:     "european separators",
			input:    "1.234,56",
			expected: 1234.56,
			ok:       true,
		},
		{
			name:     "comma decimal",
			input:    "60,45",
			expected: 60.45,
			ok:       true,
		},
		{
			name:     "embedded in text",
			input:    "Rate: 48.75 EGP",
			expected: 48.75,
			ok:       true,
		},
		{
			name:  "no number",
			input: "abc",
		},
		{
			name:  "empty input",
			input: "",
		},
		{
			name:  "out of band",
			input: "99999",
		},
		{
			name:  "below band",
			input: "1.5",
		},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			v, ok := Parse(testCase.input, band)

			require.Equal(t, testCase.ok, ok)
			assert.InDelta(t, testCase.expected, v, 0.0001)
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	t.Parallel()

	band := Band{Low: 5, High: 400}

	first, okFirst := Parse("٦٠٫٤٥", band)
	second, okSecond := Parse("٦٠٫٤٥", band)

	require.True(t, okFirst)
	require.True(t, okSecond)
	assert.Equal(t, first, second)
}

func TestBand_Contains(t *testing.T) {
	t.Parallel()

	band := Band{Low: 5, High: 400}

	assert.True(t, band.Contains(5))
	assert.True(t, band.Contains(60.45))
	assert.False(t, band.Contains(400))
	assert.False(t, band.Contains(4.99))
}

func TestRound(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 60.153, Round(60.15349, 3), 0.00001)
	assert.InDelta(t, 2.04, Round(2.0408, 2), 0.00001)
}
