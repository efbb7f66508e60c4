package event_bus

import (
	"context"
	"slices"
)

// RecordsChangedEvent is published by the write path after a store write succeeded.
const RecordsChangedEvent EventType = "records.changed"

// RecordsChanged lists the record store keys that were rewritten.
type RecordsChanged struct {
	Keys []string
}

// Touches reports whether any of keys was changed. No keys means any.
func (r RecordsChanged) Touches(keys ...string) bool {
	if len(keys) == 0 {
		return true
	}
	for _, k := range keys {
		if slices.Contains(r.Keys, k) {
			return true
		}
	}
	return false
}

// PublishRecordsChanged announces that keys were rewritten.
func (eb *EventBus) PublishRecordsChanged(ctx context.Context, keys ...string) error {
	return eb.Publish(NewEvent(ctx, RecordsChangedEvent, RecordsChanged{Keys: keys}))
}

// SubscribeRecordsChanged calls h for every change touching one of keys, or
// for every change when keys is empty.
func (eb *EventBus) SubscribeRecordsChanged(h func(ctx context.Context, changed RecordsChanged) error, keys ...string) (unsubscribe func()) {
	return eb.Subscribe(RecordsChangedEvent, func(e Event) error {
		changed, ok := e.Data.(RecordsChanged)
		if !ok || !changed.Touches(keys...) {
			return nil
		}
		return h(e.Context(), changed)
	})
}
