package goal

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrGoalNotSelected = errors.New("no goal selected")
var ErrGoalNotFound = errors.New("goal not found")
var ErrEmptyName = errors.New("name cannot be empty")
var ErrInvalidDate = errors.New("invalid target date")
var ErrInvalidFrequency = errors.New("frequency must be daily or weekly")

// Frequency tags an expense; it does not take part in any calculation.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToLower(strings.TrimSpace(s))) {
	case "", FrequencyDaily:
		return FrequencyDaily, nil
	case FrequencyWeekly:
		return FrequencyWeekly, nil
	}
	return "", ErrInvalidFrequency
}

type SavingsGoal struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	// TargetDate is a calendar date, see ParseTargetDate.
	TargetDate    string          `json:"targetDate"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
	WeeklyIncome  decimal.Decimal `json:"weeklyIncome"`
	// SavedAmount only grows, by the amount of each expense added to the goal.
	SavedAmount decimal.Decimal `json:"savedAmount"`
	Timestamp   int64           `json:"timestamp"`
}

// TargetTime resolves the goal's target date in location.
func (g SavingsGoal) TargetTime(location *time.Location) (time.Time, error) {
	return ParseTargetDate(g.TargetDate, location)
}

type GoalExpense struct {
	ID        string          `json:"id"`
	GoalID    string          `json:"goalId"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Timestamp int64           `json:"timestamp"`
	Frequency Frequency       `json:"frequency"`
}

func (e GoalExpense) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

type GoalDraft struct {
	Name          string
	TargetAmount  string
	TargetDate    string
	MonthlyIncome string
	WeeklyIncome  string
}

type ExpenseDraft struct {
	GoalID    string
	Name      string
	Amount    string
	Frequency string
}

// ParseTargetDate reads a goal target date. A plain date ("2006-01-02") is
// midnight in location; RFC3339 timestamps are taken as is.
func ParseTargetDate(s string, location *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if location == nil {
		location = time.Local
	}
	// Midnight in the configured zone, not UTC midnight. daysLeft near midnight
	// can differ by one from a UTC reading in non-UTC zones.
	if date, err := time.ParseInLocation(time.DateOnly, s, location); err == nil {
		return date, nil
	}
	if date, err := time.Parse(time.RFC3339, s); err == nil {
		return date, nil
	}
	return time.Time{}, ErrInvalidDate
}

// ExpensesOf returns the expenses recorded against goalID, in stored order.
func ExpensesOf(expenses []GoalExpense, goalID string) []GoalExpense {
	result := make([]GoalExpense, 0)
	for _, e := range expenses {
		if e.GoalID == goalID {
			result = append(result, e)
		}
	}
	return result
}

// SumExpenses adds up the amounts of expenses.
func SumExpenses(expenses []GoalExpense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}
