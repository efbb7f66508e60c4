package transaction

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/pocketledger/internal/utils"
	"github.com/pocketledger/pocketledger/pkg/money"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// GetAll returns every transaction, newest first.
	GetAll(ctx context.Context) ([]Transaction, error)
	// GetForDay returns the transactions of one calendar day, newest first.
	GetForDay(ctx context.Context, day time.Time) ([]Transaction, error)
	Add(ctx context.Context, draft Draft) (Transaction, error)
	Update(ctx context.Context, id string, draft Draft) (Transaction, error)
	Delete(ctx context.Context, id string) error
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Transaction, error) {
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(transactions), nil
}

func (s *ServiceImpl) GetForDay(ctx context.Context, day time.Time) ([]Transaction, error) {
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(FilterByDay(transactions, day)), nil
}

func (s *ServiceImpl) Add(ctx context.Context, draft Draft) (Transaction, error) {
	name, price, err := validate(draft)
	if err != nil {
		return Transaction{}, err
	}

	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return Transaction{}, err
	}

	now := s.clock.Now()
	transaction := Transaction{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     price,
		Date:      now.Format(DisplayDateLayout),
		Timestamp: now.UnixMilli(),
		Category:  strings.TrimSpace(draft.Category),
	}

	if err := s.repo.StoreAll(ctx, append(transactions, transaction)); err != nil {
		return Transaction{}, err
	}
	log.Debugf("transaction %s added", transaction.ID)
	return transaction, nil
}

// Update replaces name, price and category. Date and timestamp are kept.
func (s *ServiceImpl) Update(ctx context.Context, id string, draft Draft) (Transaction, error) {
	name, price, err := validate(draft)
	if err != nil {
		return Transaction{}, err
	}

	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return Transaction{}, err
	}

	idx := slices.IndexFunc(transactions, func(t Transaction) bool { return t.ID == id })
	if idx < 0 {
		return Transaction{}, ErrTransactionNotFound
	}
	updated := transactions[idx]
	updated.Name = name
	updated.Price = price
	updated.Category = strings.TrimSpace(draft.Category)
	transactions[idx] = updated

	if err := s.repo.StoreAll(ctx, transactions); err != nil {
		return Transaction{}, err
	}
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	transactions, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	remaining := slices.DeleteFunc(slices.Clone(transactions), func(t Transaction) bool { return t.ID == id })
	if len(remaining) == len(transactions) {
		log.Warnf("transaction %s not deleted, it does not exist", id)
		return ErrTransactionNotFound
	}
	return s.repo.StoreAll(ctx, remaining)
}

func validate(draft Draft) (string, decimal.Decimal, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return "", decimal.Zero, ErrEmptyName
	}
	price, err := money.Parse(draft.Price)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("price %q: %w", draft.Price, err)
	}
	return name, price, nil
}

func newestFirst(transactions []Transaction) []Transaction {
	sorted := slices.Clone(transactions)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		switch {
		case a.Timestamp > b.Timestamp:
			return -1
		case a.Timestamp < b.Timestamp:
			return 1
		}
		return 0
	})
	return sorted
}
