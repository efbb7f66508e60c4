package stats

import (
	"fmt"
	"slices"
	"time"

	"github.com/pocketledger/pocketledger/pkg/goal"
	"github.com/pocketledger/pocketledger/pkg/money"
	"github.com/shopspring/decimal"
)

const dayMs = int64(24 * time.Hour / time.Millisecond)

// CalculateGoalProgress derives progress, remaining time and the savings
// needed per week and month to reach the goal by its target date.
func CalculateGoalProgress(g goal.SavingsGoal, expensesSum decimal.Decimal, now time.Time) (GoalProgress, error) {
	target, err := g.TargetTime(now.Location())
	if err != nil {
		return GoalProgress{}, fmt.Errorf("goal %s: %w", g.ID, err)
	}

	daysLeft := ceilDiv(target.UnixMilli()-now.UnixMilli(), dayMs)
	progress := GoalProgress{
		Goal:          g,
		TotalExpenses: expensesSum,
		DaysLeft:      daysLeft,
		WeeksLeft:     ceilDiv(daysLeft, 7),
		MonthsLeft:    ceilDiv(daysLeft, 30),
	}
	if g.TargetAmount.IsPositive() {
		progress.Progress = g.SavedAmount.Div(g.TargetAmount).Mul(hundred).Round(money.Places)
	}

	remaining := g.TargetAmount.Sub(g.SavedAmount)
	weekly, weeklySet := perPeriod(remaining, progress.WeeksLeft)
	monthly, monthlySet := perPeriod(remaining, progress.MonthsLeft)
	if weeklySet {
		progress.WeeklySavingsNeeded = decimal.NewNullDecimal(weekly.Round(money.Places))
	}
	if monthlySet {
		progress.MonthlySavingsNeeded = decimal.NewNullDecimal(monthly.Round(money.Places))
	}

	switch {
	case g.SavedAmount.GreaterThanOrEqual(g.TargetAmount):
		progress.Status = GoalReached
	case weeklySet && monthlySet &&
		weekly.LessThanOrEqual(g.WeeklyIncome) && monthly.LessThanOrEqual(g.MonthlyIncome):
		progress.Status = OnTrack
	default:
		progress.Status = NeedsAttention
	}
	return progress, nil
}

// SortByUrgency orders goals by days left, soonest first.
func SortByUrgency(progress []GoalProgress) {
	slices.SortStableFunc(progress, func(a, b GoalProgress) int {
		switch {
		case a.DaysLeft < b.DaysLeft:
			return -1
		case a.DaysLeft > b.DaysLeft:
			return 1
		}
		return 0
	})
}

// SavingsTrend is the monthly trend of the expenses recorded for goalID.
func SavingsTrend(goalID string, expenses []goal.GoalExpense, location *time.Location) []TrendPoint {
	return MonthlyTrend(FromGoalExpenses(goal.ExpensesOf(expenses, goalID)), location, 6)
}

func perPeriod(remaining decimal.Decimal, periods int64) (decimal.Decimal, bool) {
	if periods <= 0 {
		return decimal.Zero, false
	}
	return remaining.Div(decimal.NewFromInt(periods)), true
}

// ceilDiv rounds a/b towards positive infinity.
func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a > 0) == (b > 0) {
		q++
	}
	return q
}
