package kvstore

import (
	"context"
	"sort"

	"github.com/pocketledger/pocketledger/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// NotifyingStore publishes a RecordsChanged event after every successful write.
// A failed publish is logged; the write itself already happened.
type NotifyingStore struct {
	Store
	bus *event_bus.EventBus
}

func NewNotifyingStore(store Store, bus *event_bus.EventBus) *NotifyingStore {
	return &NotifyingStore{Store: store, bus: bus}
}

func (s *NotifyingStore) Set(ctx context.Context, key string, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *NotifyingStore) SetMany(ctx context.Context, values map[string]string) error {
	if err := s.Store.SetMany(ctx, values); err != nil {
		return err
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	s.publish(ctx, keys)
	return nil
}

func (s *NotifyingStore) Clear(ctx context.Context) error {
	if err := s.Store.Clear(ctx); err != nil {
		return err
	}
	s.publish(ctx, AllKeys)
	return nil
}

func (s *NotifyingStore) publish(ctx context.Context, keys []string) {
	if err := s.bus.PublishRecordsChanged(ctx, keys...); err != nil {
		log.Warnf("records %v changed but not every subscriber was notified: %v", keys, err)
	}
}
