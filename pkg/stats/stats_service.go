package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketledger/pocketledger/internal/utils"
	"github.com/pocketledger/pocketledger/pkg/goal"
	"github.com/pocketledger/pocketledger/pkg/limit"
	"github.com/pocketledger/pocketledger/pkg/transaction"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	overviewCategories = 5
	overviewWeeks      = 5
	insightDays        = 7
	insightMonths      = 6
)

type StatsService interface {
	GetOverview(ctx context.Context) (Overview, error)
	GetInsights(ctx context.Context) (Insights, error)
	// GetGoalsProgress returns every goal with its progress, soonest target first.
	GetGoalsProgress(ctx context.Context) ([]GoalProgress, error)
	GetSavingsTrend(ctx context.Context, goalID string) ([]TrendPoint, error)
	GetLimitReport(ctx context.Context) (LimitReport, error)
}

type StatsServiceImpl struct {
	transactions transaction.Repository
	goals        goal.Service
	limits       limit.Repository
	clock        utils.Clock
	weekStart    time.Weekday
	currency     string
}

func NewStatsServiceImpl(
	transactions transaction.Repository,
	goals goal.Service,
	limits limit.Repository,
	clock utils.Clock,
	weekStart time.Weekday,
	currency string,
) *StatsServiceImpl {
	return &StatsServiceImpl{
		transactions: transactions,
		goals:        goals,
		limits:       limits,
		clock:        clock,
		weekStart:    weekStart,
		currency:     currency,
	}
}

type snapshot struct {
	transactions []transaction.Transaction
	goals        []goal.SavingsGoal
	expenses     []goal.GoalExpense
	limits       limit.SpendingLimit
}

func (s *StatsServiceImpl) load(ctx context.Context, withGoals bool) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.transactions, err = s.transactions.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.limits, err = s.limits.Get(gctx)
		return err
	})
	if withGoals {
		g.Go(func() error {
			var err error
			snap.goals, snap.expenses, err = s.goals.Load(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return snapshot{}, fmt.Errorf("failed to load stats data: %w", err)
	}
	return snap, nil
}

func (s *StatsServiceImpl) GetOverview(ctx context.Context) (Overview, error) {
	snap, err := s.load(ctx, true)
	if err != nil {
		return Overview{}, err
	}
	now := s.clock.Now()
	records := FromTransactions(snap.transactions)
	totals := CalculateTotals(records, now, s.weekStart)

	return Overview{
		Now:           now,
		Currency:      s.currency,
		Totals:        totals,
		Limits:        EvaluateLimits(totals, snap.limits),
		TopCategories: TopCategories(CategoryBreakdown(records), overviewCategories),
		WeeklyTrend:   WeeklyTrend(records, now, overviewWeeks),
		Goals:         goalsProgress(snap.goals, snap.expenses, now),
	}, nil
}

func (s *StatsServiceImpl) GetInsights(ctx context.Context) (Insights, error) {
	snap, err := s.load(ctx, false)
	if err != nil {
		return Insights{}, err
	}
	now := s.clock.Now()
	records := FromTransactions(snap.transactions)
	totals := CalculateTotals(records, now, s.weekStart)
	breakdown := CategoryBreakdown(records)
	log.Debugf("Insights over %d transactions, %d categories", len(records), len(breakdown))

	return Insights{
		Now:          now,
		Currency:     s.currency,
		Totals:       totals,
		Limits:       EvaluateLimits(totals, snap.limits),
		DailyTrend:   DailyTrend(records, now, insightDays),
		MonthlyTrend: MonthlyTrend(records, now.Location(), insightMonths),
		Categories:   breakdown,
		Highlights:   CalculateHighlights(records, totals, breakdown),
	}, nil
}

func (s *StatsServiceImpl) GetGoalsProgress(ctx context.Context) ([]GoalProgress, error) {
	goals, expenses, err := s.goals.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	return goalsProgress(goals, expenses, s.clock.Now()), nil
}

func (s *StatsServiceImpl) GetSavingsTrend(ctx context.Context, goalID string) ([]TrendPoint, error) {
	expenses, err := s.goals.GetExpenses(ctx, goalID)
	if err != nil {
		return nil, err
	}
	return SavingsTrend(goalID, expenses, s.clock.Now().Location()), nil
}

func (s *StatsServiceImpl) GetLimitReport(ctx context.Context) (LimitReport, error) {
	snap, err := s.load(ctx, false)
	if err != nil {
		return LimitReport{}, err
	}
	totals := CalculateTotals(FromTransactions(snap.transactions), s.clock.Now(), s.weekStart)
	return EvaluateLimits(totals, snap.limits), nil
}

// goalsProgress skips goals whose target date cannot be read.
func goalsProgress(goals []goal.SavingsGoal, expenses []goal.GoalExpense, now time.Time) []GoalProgress {
	progress := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		p, err := CalculateGoalProgress(g, goal.SumExpenses(goal.ExpensesOf(expenses, g.ID)), now)
		if err != nil {
			log.Warnf("Skipping goal in progress report: %v", err)
			continue
		}
		progress = append(progress, p)
	}
	SortByUrgency(progress)
	return progress
}
