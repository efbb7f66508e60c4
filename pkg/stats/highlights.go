package stats

import (
	"github.com/pocketledger/pocketledger/pkg/money"
	"github.com/shopspring/decimal"
)

// CalculateHighlights picks the single largest record, the average daily
// spend of the current week and the category with the largest total. On ties
// the first category of the breakdown wins.
func CalculateHighlights(records []Record, totals Totals, breakdown []CategoryAmount) Highlights {
	highlights := Highlights{
		AverageDailySpend: totals.Weekly.Div(daysPerWeek).Round(money.Places),
	}

	for _, r := range records {
		if !highlights.HighestExpense.Valid || r.Amount.GreaterThan(highlights.HighestExpense.Decimal) {
			highlights.HighestExpense = decimal.NewNullDecimal(r.Amount)
		}
	}

	for i := range breakdown {
		if highlights.TopCategory == nil || breakdown[i].Amount.GreaterThan(highlights.TopCategory.Amount) {
			top := breakdown[i]
			highlights.TopCategory = &top
		}
	}
	return highlights
}
