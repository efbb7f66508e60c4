package limit

import (
	"context"
	"fmt"

	"github.com/pocketledger/pocketledger/pkg/money"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Get(ctx context.Context) (SpendingLimit, error)
	// Update overwrites all three limits at once.
	Update(ctx context.Context, draft Draft) (SpendingLimit, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Get(ctx context.Context) (SpendingLimit, error) {
	return s.repo.Get(ctx)
}

func (s *ServiceImpl) Update(ctx context.Context, draft Draft) (SpendingLimit, error) {
	weekly, err := money.ParseOptional(draft.Weekly)
	if err != nil {
		return SpendingLimit{}, fmt.Errorf("weekly limit %q: %w", draft.Weekly, err)
	}
	monthly, err := money.ParseOptional(draft.Monthly)
	if err != nil {
		return SpendingLimit{}, fmt.Errorf("monthly limit %q: %w", draft.Monthly, err)
	}
	yearly, err := money.ParseOptional(draft.Yearly)
	if err != nil {
		return SpendingLimit{}, fmt.Errorf("yearly limit %q: %w", draft.Yearly, err)
	}

	limits := SpendingLimit{Weekly: weekly, Monthly: monthly, Yearly: yearly}
	if err := s.repo.Store(ctx, limits); err != nil {
		return SpendingLimit{}, err
	}
	log.Debugf("spending limits updated: weekly=%s monthly=%s yearly=%s", weekly, monthly, yearly)
	return limits, nil
}
