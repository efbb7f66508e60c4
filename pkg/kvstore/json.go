package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// GetJSON decodes the document stored under key into target. When the key is
// absent target is left untouched and found is false.
func GetJSON(ctx context.Context, store Store, key string, target any) (found bool, err error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		err := fmt.Errorf("could not decode record %s: %w", key, err)
		log.Error(err)
		return false, err
	}
	return true, nil
}

// EncodeJSON returns the document form of value.
func EncodeJSON(key string, value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		err := fmt.Errorf("could not encode record %s: %w", key, err)
		log.Error(err)
		return "", err
	}
	return string(data), nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, store Store, key string, value any) error {
	doc, err := EncodeJSON(key, value)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, doc)
}
