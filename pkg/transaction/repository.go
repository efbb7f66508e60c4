package transaction

import (
	"context"
	"fmt"

	"github.com/pocketledger/pocketledger/pkg/kvstore"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Transaction, error)
	StoreAll(ctx context.Context, transactions []Transaction) error
}

type RepositoryImpl struct {
	store kvstore.Store
}

func NewRepository(store kvstore.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

// GetAll returns the stored transactions in insertion order. A missing
// record is an empty collection.
func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Transaction, error) {
	transactions := make([]Transaction, 0)
	if _, err := kvstore.GetJSON(ctx, r.store, kvstore.KeyTransactions, &transactions); err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	if transactions == nil {
		transactions = make([]Transaction, 0)
	}
	return transactions, nil
}

func (r *RepositoryImpl) StoreAll(ctx context.Context, transactions []Transaction) error {
	if transactions == nil {
		transactions = make([]Transaction, 0)
	}
	if err := kvstore.SetJSON(ctx, r.store, kvstore.KeyTransactions, transactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}
