package stats

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pocketledger/pocketledger/internal/utils"
	"github.com/pocketledger/pocketledger/pkg/goal"
	"github.com/pocketledger/pocketledger/pkg/kvstore"
	"github.com/pocketledger/pocketledger/pkg/limit"
	"github.com/pocketledger/pocketledger/pkg/money"
	"github.com/pocketledger/pocketledger/pkg/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

type fixture struct {
	service      *StatsServiceImpl
	store        *kvstore.StubStore
	transactions transaction.Repository
	goals        goal.Repository
	limits       limit.Repository
}

func setup(t *testing.T) fixture {
	store := kvstore.NewStubStore()
	clock := &utils.MockClock{FixedNow: now}
	f := fixture{
		store:        store,
		transactions: transaction.NewRepository(store),
		goals:        goal.NewRepository(store),
		limits:       limit.NewRepository(store),
	}
	f.service = NewStatsServiceImpl(f.transactions, goal.NewService(f.goals, clock), f.limits, clock, time.Sunday, "PKR")
	t.Cleanup(store.Cleanup)
	return f
}

func tx(id string, at time.Time, price string, category string) transaction.Transaction {
	return transaction.Transaction{
		ID:        id,
		Name:      "item " + id,
		Price:     money.MustParse(price),
		Date:      at.Format(transaction.DisplayDateLayout),
		Timestamp: at.UnixMilli(),
		Category:  category,
	}
}

func TestStatsServiceImpl_GetOverview(t *testing.T) {
	f := setup(t)

	// given
	transactions := []transaction.Transaction{
		tx("1", now.Add(-time.Hour), "100", "Food"),
		tx("2", now.Add(-2*time.Hour), "200", "Rent"),
		tx("3", now.AddDate(0, 0, -8), "50", "Food"),
	}
	for i := 0; i < 5; i++ {
		transactions = append(transactions, tx(fmt.Sprintf("x%d", i), now.AddDate(0, 0, -10), "1", fmt.Sprintf("Misc %d", i)))
	}
	require.NoError(t, f.transactions.StoreAll(ctx, transactions))
	require.NoError(t, f.limits.Store(ctx, limitOf("250", "1000", "0")))
	require.NoError(t, f.goals.StoreGoalsAndExpenses(ctx, []goal.SavingsGoal{
		{ID: "later", Name: "Car", TargetAmount: money.MustParse("10000"), TargetDate: "2024-06-01"},
		{ID: "broken", Name: "Broken", TargetAmount: money.MustParse("1"), TargetDate: "next year"},
		{ID: "soon", Name: "Gift", TargetAmount: money.MustParse("100"), TargetDate: "2024-01-25", SavedAmount: money.MustParse("30")},
	}, []goal.GoalExpense{
		{ID: "e1", GoalID: "soon", Amount: money.MustParse("30"), Timestamp: now.UnixMilli()},
	}))

	// when
	overview, err := f.service.GetOverview(ctx)

	// then
	require.NoError(t, err)
	assert.Equal(t, now, overview.Now)
	assert.Equal(t, "PKR", overview.Currency)
	assertAmount(t, "300", overview.Totals.Daily)
	assertAmount(t, "300", overview.Totals.Weekly)
	assertAmount(t, "355", overview.Totals.Monthly)
	assert.True(t, overview.Limits.Weekly.Over)
	assert.False(t, overview.Limits.Monthly.Over)
	assert.False(t, overview.Limits.Yearly.Set)

	require.Len(t, overview.TopCategories, 5)
	assert.Equal(t, "Rent", overview.TopCategories[0].Category)
	assert.Equal(t, "Food", overview.TopCategories[1].Category)
	assert.Equal(t, "Misc 0", overview.TopCategories[2].Category)

	require.Len(t, overview.WeeklyTrend, 5)
	assertAmount(t, "300", overview.WeeklyTrend[4].Amount)
	assertAmount(t, "55", overview.WeeklyTrend[3].Amount)

	require.Len(t, overview.Goals, 2)
	assert.Equal(t, "soon", overview.Goals[0].Goal.ID)
	assertAmount(t, "30", overview.Goals[0].TotalExpenses)
	assert.Equal(t, "later", overview.Goals[1].Goal.ID)
}

func TestStatsServiceImpl_GetInsights(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.transactions.StoreAll(ctx, []transaction.Transaction{
		tx("1", now.Add(-time.Hour), "100", "Food"),
		tx("2", now.Add(-2*time.Hour), "200", ""),
		tx("3", now.AddDate(0, -2, 0), "50", "Food"),
	}))

	insights, err := f.service.GetInsights(ctx)

	require.NoError(t, err)
	require.Len(t, insights.DailyTrend, 7)
	assertAmount(t, "300", insights.DailyTrend[6].Amount)
	require.Len(t, insights.MonthlyTrend, 2)
	assert.Equal(t, "2023-11", insights.MonthlyTrend[0].Label)
	assert.Equal(t, "2024-1", insights.MonthlyTrend[1].Label)
	require.Len(t, insights.Categories, 2)
	assert.Equal(t, "Food", insights.Categories[0].Category)
	assert.Equal(t, UncategorizedCategory, insights.Categories[1].Category)
	assertAmount(t, "200", insights.Highlights.HighestExpense.Decimal)
	assert.Equal(t, "Uncategorized", insights.Highlights.TopCategory.Category)
	assert.False(t, insights.Limits.Weekly.Set, "no limits stored")
}

func TestStatsServiceImpl_GetInsightsKeepsCategoryOrder(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.transactions.StoreAll(ctx, []transaction.Transaction{
		tx("1", now.Add(-2*time.Hour), "10", "Food"),
		tx("2", now.Add(-time.Hour), "500", "Rent"),
	}))

	// when
	insights, err := f.service.GetInsights(ctx)

	// then
	require.NoError(t, err)
	require.Len(t, insights.Categories, 2)
	assert.Equal(t, "Food", insights.Categories[0].Category)
	assert.Equal(t, "Rent", insights.Categories[1].Category)
	assert.Equal(t, "Rent", insights.Highlights.TopCategory.Category)
}

func TestStatsServiceImpl_GetGoalsProgress(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.goals.StoreGoals(ctx, []goal.SavingsGoal{
		{ID: "a", Name: "A", TargetAmount: money.MustParse("100"), TargetDate: "2024-03-01"},
		{ID: "b", Name: "B", TargetAmount: money.MustParse("100"), TargetDate: "2024-02-01", SavedAmount: money.MustParse("100")},
	}))

	progress, err := f.service.GetGoalsProgress(ctx)

	require.NoError(t, err)
	require.Len(t, progress, 2)
	assert.Equal(t, "b", progress[0].Goal.ID)
	assert.Equal(t, GoalReached, progress[0].Status)
	assert.Equal(t, NeedsAttention, progress[1].Status)
}

func TestStatsServiceImpl_GetSavingsTrend(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.goals.StoreGoalsAndExpenses(ctx,
		[]goal.SavingsGoal{{ID: "g1", Name: "Trip", TargetAmount: money.MustParse("500"), TargetDate: "2024-12-01"}},
		[]goal.GoalExpense{
			{ID: "e1", GoalID: "g1", Amount: money.MustParse("20"), Timestamp: now.UnixMilli()},
			{ID: "e2", GoalID: "g1", Amount: money.MustParse("5"), Timestamp: now.Add(time.Hour).UnixMilli()},
		},
	))

	t.Run("should sum expenses per month", func(t *testing.T) {
		trend, err := f.service.GetSavingsTrend(ctx, "g1")

		require.NoError(t, err)
		require.Len(t, trend, 1)
		assertAmount(t, "25", trend[0].Amount)
	})

	t.Run("should reject unknown goal", func(t *testing.T) {
		_, err := f.service.GetSavingsTrend(ctx, "missing")

		assert.ErrorIs(t, err, goal.ErrGoalNotFound)
	})
}

func TestStatsServiceImpl_EmptyAfterClear(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.transactions.StoreAll(ctx, []transaction.Transaction{tx("1", now, "10", "Food")}))

	// when
	require.NoError(t, f.store.Clear(ctx))
	transactions, err := f.transactions.GetAll(ctx)
	require.NoError(t, err)
	overview, err := f.service.GetOverview(ctx)

	// then
	require.NoError(t, err)
	assert.NotNil(t, transactions)
	assert.Empty(t, transactions)
	assert.True(t, overview.Totals.Yearly.IsZero())
	assert.Empty(t, overview.TopCategories)
	assert.Empty(t, overview.Goals)
}

func TestStatsServiceImpl_StorageFailure(t *testing.T) {
	f := setup(t)
	f.store.GetErr = errors.New("disk on fire")

	_, err := f.service.GetOverview(ctx)
	assert.ErrorContains(t, err, "disk on fire")

	_, err = f.service.GetInsights(ctx)
	assert.Error(t, err)
}
