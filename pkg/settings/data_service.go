package settings

import (
	"context"
	"fmt"

	"github.com/pocketledger/pocketledger/pkg/kvstore"
	log "github.com/sirupsen/logrus"
)

type DataService struct {
	store kvstore.Store
	theme *ThemeService
}

func NewDataService(store kvstore.Store, theme *ThemeService) *DataService {
	return &DataService{store: store, theme: theme}
}

// ClearAll removes every record. Afterwards all collections load empty, limits
// load as zero and the theme is light.
func (s *DataService) ClearAll(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	s.theme.reset()
	log.Info("all data cleared")
	return nil
}
