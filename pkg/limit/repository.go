package limit

import (
	"context"
	"fmt"

	"github.com/pocketledger/pocketledger/pkg/kvstore"
)

type Repository interface {
	Get(ctx context.Context) (SpendingLimit, error)
	Store(ctx context.Context, limits SpendingLimit) error
}

type RepositoryImpl struct {
	store kvstore.Store
}

func NewRepository(store kvstore.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

// Get returns the stored limits, or all zero when none were saved.
func (r *RepositoryImpl) Get(ctx context.Context) (SpendingLimit, error) {
	var limits SpendingLimit
	if _, err := kvstore.GetJSON(ctx, r.store, kvstore.KeySpendingLimits, &limits); err != nil {
		return SpendingLimit{}, fmt.Errorf("failed to load spending limits: %w", err)
	}
	return limits, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, limits SpendingLimit) error {
	if err := kvstore.SetJSON(ctx, r.store, kvstore.KeySpendingLimits, limits); err != nil {
		return fmt.Errorf("failed to save spending limits: %w", err)
	}
	return nil
}
