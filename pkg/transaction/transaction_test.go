package transaction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByDay(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	at := func(year int, month time.Month, day, hour, min int) Transaction {
		ts := time.Date(year, month, day, hour, min, 0, 0, warsaw)
		return Transaction{ID: ts.Format(time.RFC3339), Price: decimal.NewFromInt(1), Timestamp: ts.UnixMilli()}
	}

	tests := []struct {
		name     string
		day      time.Time
		input    []Transaction
		expected []string
	}{
		{
			name: "keeps midnight and drops next midnight",
			day:  time.Date(2024, time.March, 10, 15, 0, 0, 0, warsaw),
			input: []Transaction{
				at(2024, time.March, 9, 23, 59),
				at(2024, time.March, 10, 0, 0),
				at(2024, time.March, 10, 23, 59),
				at(2024, time.March, 11, 0, 0),
			},
			expected: []string{"2024-03-10T00:00:00+01:00", "2024-03-10T23:59:00+01:00"},
		},
		{
			name: "covers a 23 hour DST day",
			day:  time.Date(2024, time.March, 31, 12, 0, 0, 0, warsaw),
			input: []Transaction{
				at(2024, time.March, 31, 23, 30),
				at(2024, time.April, 1, 0, 30),
			},
			expected: []string{"2024-03-31T23:30:00+02:00"},
		},
		{
			name:     "returns empty for no data",
			day:      time.Date(2024, time.March, 10, 0, 0, 0, 0, warsaw),
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// when
			result := FilterByDay(tt.input, tt.day)

			// then
			ids := make([]string, 0, len(result))
			for _, r := range result {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}
