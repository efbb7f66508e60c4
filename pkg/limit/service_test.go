package limit

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketledger/pocketledger/pkg/kvstore"
	"github.com/pocketledger/pocketledger/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestServiceImpl_Get(t *testing.T) {
	t.Run("should return zero limits when nothing is stored", func(t *testing.T) {
		service := NewService(NewRepository(kvstore.NewStubStore()))

		limits, err := service.Get(ctx)

		require.NoError(t, err)
		assert.True(t, limits.Weekly.IsZero())
		assert.True(t, limits.Monthly.IsZero())
		assert.True(t, limits.Yearly.IsZero())
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should overwrite all limits and clear blank ones", func(t *testing.T) {
		store := kvstore.NewStubStore()
		service := NewService(NewRepository(store))
		_, err := service.Update(ctx, Draft{Weekly: "300", Monthly: "1000", Yearly: "9000"})
		require.NoError(t, err)

		// when
		limits, err := service.Update(ctx, Draft{Weekly: "350,5", Monthly: " "})

		// then
		require.NoError(t, err)
		assert.Equal(t, "350.5", limits.Weekly.String())
		assert.True(t, limits.Monthly.IsZero())
		assert.True(t, limits.Yearly.IsZero())
		raw, ok := store.Raw(kvstore.KeySpendingLimits)
		require.True(t, ok)
		assert.JSONEq(t, `{"weekly":350.5,"monthly":0,"yearly":0}`, raw)
	})

	t.Run("should reject non numeric input without writing", func(t *testing.T) {
		store := kvstore.NewStubStore()
		service := NewService(NewRepository(store))

		_, err := service.Update(ctx, Draft{Weekly: "100", Monthly: "lots"})

		assert.ErrorIs(t, err, money.ErrInvalidAmount)
		assert.Equal(t, 0, store.Writes)
	})

	t.Run("should surface storage failure", func(t *testing.T) {
		store := kvstore.NewStubStore()
		store.SetErr = errors.New("disk full")
		service := NewService(NewRepository(store))

		_, err := service.Update(ctx, Draft{Weekly: "100"})

		assert.ErrorContains(t, err, "failed to save spending limits")
	})
}

func TestHandler_Update(t *testing.T) {
	handler := NewHandler(NewService(NewRepository(kvstore.NewStubStore())))

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"numbers", `{"weekly":300,"monthly":350,"yearly":0}`, http.StatusOK},
		{"strings", `{"weekly":"300","monthly":"","yearly":null}`, http.StatusOK},
		{"invalid amount", `{"weekly":"abc"}`, http.StatusBadRequest},
		{"invalid body", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/limits", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Update(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
