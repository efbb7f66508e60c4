package goal

import (
	"context"
	"fmt"

	"github.com/pocketledger/pocketledger/pkg/kvstore"
)

type Repository interface {
	GetGoals(ctx context.Context) ([]SavingsGoal, error)
	GetExpenses(ctx context.Context) ([]GoalExpense, error)
	StoreGoals(ctx context.Context, goals []SavingsGoal) error
	// StoreGoalsAndExpenses writes both collections in one store transition.
	StoreGoalsAndExpenses(ctx context.Context, goals []SavingsGoal, expenses []GoalExpense) error
}

type RepositoryImpl struct {
	store kvstore.Store
}

func NewRepository(store kvstore.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

func (r *RepositoryImpl) GetGoals(ctx context.Context) ([]SavingsGoal, error) {
	goals := make([]SavingsGoal, 0)
	if _, err := kvstore.GetJSON(ctx, r.store, kvstore.KeyGoals, &goals); err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	if goals == nil {
		goals = make([]SavingsGoal, 0)
	}
	return goals, nil
}

func (r *RepositoryImpl) GetExpenses(ctx context.Context) ([]GoalExpense, error) {
	expenses := make([]GoalExpense, 0)
	if _, err := kvstore.GetJSON(ctx, r.store, kvstore.KeyGoalExpenses, &expenses); err != nil {
		return nil, fmt.Errorf("failed to load goal expenses: %w", err)
	}
	if expenses == nil {
		expenses = make([]GoalExpense, 0)
	}
	return expenses, nil
}

func (r *RepositoryImpl) StoreGoals(ctx context.Context, goals []SavingsGoal) error {
	if goals == nil {
		goals = make([]SavingsGoal, 0)
	}
	if err := kvstore.SetJSON(ctx, r.store, kvstore.KeyGoals, goals); err != nil {
		return fmt.Errorf("failed to save goals: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) StoreGoalsAndExpenses(ctx context.Context, goals []SavingsGoal, expenses []GoalExpense) error {
	goalsDoc, err := kvstore.EncodeJSON(kvstore.KeyGoals, goals)
	if err != nil {
		return err
	}
	expensesDoc, err := kvstore.EncodeJSON(kvstore.KeyGoalExpenses, expenses)
	if err != nil {
		return err
	}
	err = r.store.SetMany(ctx, map[string]string{
		kvstore.KeyGoals:        goalsDoc,
		kvstore.KeyGoalExpenses: expensesDoc,
	})
	if err != nil {
		return fmt.Errorf("failed to save goals and expenses: %w", err)
	}
	return nil
}
