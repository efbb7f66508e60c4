package goal

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketledger/pocketledger/internal/utils"
	"github.com/pocketledger/pocketledger/pkg/money"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DisplayDateLayout renders the human readable expense date.
const DisplayDateLayout = "1/2/2006, 3:04:05 PM"

type Service interface {
	GetGoals(ctx context.Context) ([]SavingsGoal, error)
	// Load returns goals and all their expenses, read concurrently.
	Load(ctx context.Context) ([]SavingsGoal, []GoalExpense, error)
	GetExpenses(ctx context.Context, goalID string) ([]GoalExpense, error)
	CreateGoal(ctx context.Context, draft GoalDraft) (SavingsGoal, error)
	// AddExpense records an expense and raises the goal's saved amount by the
	// same value. Both collections are persisted together or not at all.
	AddExpense(ctx context.Context, draft ExpenseDraft) (GoalExpense, SavingsGoal, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) GetGoals(ctx context.Context) ([]SavingsGoal, error) {
	return s.repo.GetGoals(ctx)
}

func (s *ServiceImpl) Load(ctx context.Context) ([]SavingsGoal, []GoalExpense, error) {
	var goals []SavingsGoal
	var expenses []GoalExpense

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		goals, err = s.repo.GetGoals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.repo.GetExpenses(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return goals, expenses, nil
}

func (s *ServiceImpl) GetExpenses(ctx context.Context, goalID string) ([]GoalExpense, error) {
	goals, expenses, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.ContainsFunc(goals, func(g SavingsGoal) bool { return g.ID == goalID }) {
		return nil, ErrGoalNotFound
	}
	return ExpensesOf(expenses, goalID), nil
}

func (s *ServiceImpl) CreateGoal(ctx context.Context, draft GoalDraft) (SavingsGoal, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return SavingsGoal{}, ErrEmptyName
	}
	targetAmount, err := money.ParsePositive(draft.TargetAmount)
	if err != nil {
		return SavingsGoal{}, fmt.Errorf("target amount %q: %w", draft.TargetAmount, err)
	}
	targetDate := strings.TrimSpace(draft.TargetDate)
	if _, err := ParseTargetDate(targetDate, s.clock.Now().Location()); err != nil {
		return SavingsGoal{}, fmt.Errorf("target date %q: %w", draft.TargetDate, err)
	}
	monthlyIncome, err := money.Parse(draft.MonthlyIncome)
	if err != nil {
		return SavingsGoal{}, fmt.Errorf("monthly income %q: %w", draft.MonthlyIncome, err)
	}
	weeklyIncome, err := money.Parse(draft.WeeklyIncome)
	if err != nil {
		return SavingsGoal{}, fmt.Errorf("weekly income %q: %w", draft.WeeklyIncome, err)
	}

	goals, err := s.repo.GetGoals(ctx)
	if err != nil {
		return SavingsGoal{}, err
	}

	goal := SavingsGoal{
		ID:            uuid.NewString(),
		Name:          name,
		TargetAmount:  targetAmount,
		TargetDate:    targetDate,
		MonthlyIncome: monthlyIncome,
		WeeklyIncome:  weeklyIncome,
		Timestamp:     s.clock.Now().UnixMilli(),
	}
	if err := s.repo.StoreGoals(ctx, append(goals, goal)); err != nil {
		return SavingsGoal{}, err
	}
	log.Debugf("goal %s created with target %s by %s", goal.ID, goal.TargetAmount, goal.TargetDate)
	return goal, nil
}

func (s *ServiceImpl) AddExpense(ctx context.Context, draft ExpenseDraft) (GoalExpense, SavingsGoal, error) {
	goalID := strings.TrimSpace(draft.GoalID)
	if goalID == "" {
		return GoalExpense{}, SavingsGoal{}, ErrGoalNotSelected
	}
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return GoalExpense{}, SavingsGoal{}, ErrEmptyName
	}
	amount, err := money.ParsePositive(draft.Amount)
	if err != nil {
		return GoalExpense{}, SavingsGoal{}, fmt.Errorf("amount %q: %w", draft.Amount, err)
	}
	frequency, err := ParseFrequency(draft.Frequency)
	if err != nil {
		return GoalExpense{}, SavingsGoal{}, err
	}

	goals, expenses, err := s.Load(ctx)
	if err != nil {
		return GoalExpense{}, SavingsGoal{}, err
	}
	idx := slices.IndexFunc(goals, func(g SavingsGoal) bool { return g.ID == goalID })
	if idx < 0 {
		return GoalExpense{}, SavingsGoal{}, ErrGoalNotFound
	}

	now := s.clock.Now()
	expense := GoalExpense{
		ID:        uuid.NewString(),
		GoalID:    goalID,
		Name:      name,
		Amount:    amount,
		Date:      now.Format(DisplayDateLayout),
		Timestamp: now.UnixMilli(),
		Frequency: frequency,
	}

	updatedGoals := slices.Clone(goals)
	updatedGoals[idx].SavedAmount = updatedGoals[idx].SavedAmount.Add(amount)

	if err := s.repo.StoreGoalsAndExpenses(ctx, updatedGoals, append(expenses, expense)); err != nil {
		return GoalExpense{}, SavingsGoal{}, err
	}
	log.Debugf("expense %s of %s added to goal %s", expense.ID, amount, goalID)
	return expense, updatedGoals[idx], nil
}
