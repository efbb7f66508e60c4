package stats

import (
	"github.com/pocketledger/pocketledger/pkg/limit"
	"github.com/pocketledger/pocketledger/pkg/money"
	"github.com/shopspring/decimal"
)

var daysPerWeek = decimal.NewFromInt(7)

// EvaluateLimit compares total with limit. A limit of zero or less is unset:
// it is never exceeded and has no percentage.
func EvaluateLimit(total, limitValue decimal.Decimal) LimitStatus {
	status := LimitStatus{Total: total, Limit: limitValue}
	if !limitValue.IsPositive() {
		return status
	}
	status.Set = true
	status.Over = total.GreaterThan(limitValue)
	percent := decimal.Min(total.Div(limitValue).Mul(hundred), hundred)
	status.Percent = decimal.NewNullDecimal(percent.Round(money.Places))
	return status
}

func EvaluateLimits(totals Totals, limits limit.SpendingLimit) LimitReport {
	return LimitReport{
		Daily:   EvaluateLimit(totals.Daily, limits.Weekly.Div(daysPerWeek)),
		Weekly:  EvaluateLimit(totals.Weekly, limits.Weekly),
		Monthly: EvaluateLimit(totals.Monthly, limits.Monthly),
		Yearly:  EvaluateLimit(totals.Yearly, limits.Yearly),
	}
}
