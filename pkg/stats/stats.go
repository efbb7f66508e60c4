package stats

import (
	"strings"
	"time"

	"github.com/pocketledger/pocketledger/pkg/goal"
	"github.com/pocketledger/pocketledger/pkg/transaction"
	"github.com/shopspring/decimal"
)

// UncategorizedCategory groups records without a category.
const UncategorizedCategory = "Uncategorized"

var hundred = decimal.NewFromInt(100)

// Record is the engine's view of anything with a time and an amount.
type Record struct {
	Timestamp int64
	Amount    decimal.Decimal
	Category  string
}

func (r Record) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

func FromTransactions(transactions []transaction.Transaction) []Record {
	records := make([]Record, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, Record{Timestamp: t.Timestamp, Amount: t.Price, Category: t.Category})
	}
	return records
}

func FromGoalExpenses(expenses []goal.GoalExpense) []Record {
	records := make([]Record, 0, len(expenses))
	for _, e := range expenses {
		records = append(records, Record{Timestamp: e.Timestamp, Amount: e.Amount})
	}
	return records
}

type Totals struct {
	Daily   decimal.Decimal
	Weekly  decimal.Decimal
	Monthly decimal.Decimal
	Yearly  decimal.Decimal
}

type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

type TrendPoint struct {
	Label  string
	Start  time.Time
	Amount decimal.Decimal
}

type GoalStatus string

const (
	GoalReached    GoalStatus = "GoalReached"
	OnTrack        GoalStatus = "OnTrack"
	NeedsAttention GoalStatus = "NeedsAttention"
)

// Label is the text shown next to a goal.
func (s GoalStatus) Label() string {
	switch s {
	case GoalReached:
		return "Goal Reached!"
	case OnTrack:
		return "On Track"
	}
	return "Needs Attention"
}

type GoalProgress struct {
	Goal goal.SavingsGoal
	// Progress is saved/target in percent. It is not clamped.
	Progress      decimal.Decimal
	TotalExpenses decimal.Decimal
	DaysLeft      int64
	WeeksLeft     int64
	MonthsLeft    int64
	// Needed amounts are not set when no whole period is left.
	WeeklySavingsNeeded  decimal.NullDecimal
	MonthlySavingsNeeded decimal.NullDecimal
	Status               GoalStatus
}

type LimitStatus struct {
	Total decimal.Decimal
	Limit decimal.Decimal
	// Set is false for a zero limit; Over and Percent are then meaningless.
	Set     bool
	Over    bool
	Percent decimal.NullDecimal
}

type LimitReport struct {
	// Daily is measured against a seventh of the weekly limit.
	Daily   LimitStatus
	Weekly  LimitStatus
	Monthly LimitStatus
	Yearly  LimitStatus
}

type Highlights struct {
	HighestExpense    decimal.NullDecimal
	AverageDailySpend decimal.Decimal
	TopCategory       *CategoryAmount
}

type Overview struct {
	Now           time.Time
	Currency      string
	Totals        Totals
	Limits        LimitReport
	TopCategories []CategoryAmount
	WeeklyTrend   []TrendPoint
	Goals         []GoalProgress
}

type Insights struct {
	Now          time.Time
	Currency     string
	Totals       Totals
	Limits       LimitReport
	DailyTrend   []TrendPoint
	MonthlyTrend []TrendPoint
	Categories   []CategoryAmount
	Highlights   Highlights
}

func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return UncategorizedCategory
	}
	return category
}
