package kvstore

import (
	"context"
	"sync"
)

// StubStore is an in-memory Store for tests. Setting GetErr, SetErr or
// ClearErr makes the matching operation fail without touching the data.
type StubStore struct {
	mu       sync.Mutex
	data     map[string]string
	GetErr   error
	SetErr   error
	ClearErr error
	Writes   int
}

func NewStubStore() *StubStore {
	return &StubStore{data: map[string]string{}}
}

func (s *StubStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *StubStore) Set(ctx context.Context, key string, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *StubStore) SetMany(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	for key, value := range values {
		s.data[key] = value
	}
	s.Writes++
	return nil
}

func (s *StubStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.data = map[string]string{}
	return nil
}

// Raw returns the stored value without error injection.
func (s *StubStore) Raw(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	return value, ok
}

func (s *StubStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[string]string{}
	s.GetErr = nil
	s.SetErr = nil
	s.ClearErr = nil
	s.Writes = 0
}
