package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrEmptyName = errors.New("name cannot be empty")
var ErrTransactionNotFound = errors.New("transaction not found")

// DisplayDateLayout renders the human readable date stored next to the timestamp.
const DisplayDateLayout = "1/2/2006, 3:04:05 PM"

type Transaction struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	// Date is for display only and is never parsed back.
	Date string `json:"date"`
	// Timestamp in milliseconds since epoch decides every period bucket.
	Timestamp int64  `json:"timestamp"`
	Category  string `json:"category,omitempty"`
}

func (t Transaction) Time() time.Time {
	return time.UnixMilli(t.Timestamp)
}

// Draft is user input for a new or edited transaction.
type Draft struct {
	Name     string
	Price    string
	Category string
}

// FilterByDay keeps the transactions of the calendar day containing day, in
// day's location.
func FilterByDay(transactions []Transaction, day time.Time) []Transaction {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	from, to := start.UnixMilli(), end.UnixMilli()

	result := make([]Transaction, 0)
	for _, t := range transactions {
		if t.Timestamp >= from && t.Timestamp < to {
			result = append(result, t)
		}
	}
	return result
}
