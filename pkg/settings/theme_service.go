package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/pocketledger/pocketledger/pkg/kvstore"
	log "github.com/sirupsen/logrus"
)

// ThemeService holds the process-wide display theme. It is loaded once at
// startup and changed only through Toggle, which persists before switching.
type ThemeService struct {
	mu      sync.RWMutex
	store   kvstore.Store
	current Theme
}

func NewThemeService(store kvstore.Store) *ThemeService {
	return &ThemeService{store: store, current: ThemeLight}
}

func (s *ThemeService) Load(ctx context.Context) (Theme, error) {
	value, ok, err := s.store.Get(ctx, kvstore.KeyThemePreference)
	if err != nil {
		return s.Current(), fmt.Errorf("failed to load theme preference: %w", err)
	}

	theme := ThemeLight
	if ok {
		theme = ParseTheme(value)
	}

	s.mu.Lock()
	s.current = theme
	s.mu.Unlock()
	log.Debugf("theme preference loaded: %s", theme)
	return theme, nil
}

func (s *ThemeService) Current() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Toggle switches between light and dark. On a failed write the current theme
// is kept.
func (s *ThemeService) Toggle(ctx context.Context) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Toggled()
	if err := s.store.Set(ctx, kvstore.KeyThemePreference, string(next)); err != nil {
		return s.current, fmt.Errorf("failed to save theme preference: %w", err)
	}
	s.current = next
	return next, nil
}

func (s *ThemeService) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = ThemeLight
}
