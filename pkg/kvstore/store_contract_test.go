package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behaviour every Store backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("should report missing key without error", func(t *testing.T) {
		store := newStore(t)

		// when
		value, ok, err := store.Get(ctx, KeyTransactions)

		// then
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("should overwrite existing value", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, KeyThemePreference, "light"))

		// when
		err := store.Set(ctx, KeyThemePreference, "dark")

		// then
		require.NoError(t, err)
		value, ok, err := store.Get(ctx, KeyThemePreference)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "dark", value)
	})

	t.Run("should write many keys together", func(t *testing.T) {
		store := newStore(t)

		// when
		err := store.SetMany(ctx, map[string]string{
			KeyGoals:        `[{"id":"g1"}]`,
			KeyGoalExpenses: `[{"id":"e1","goalId":"g1"}]`,
		})

		// then
		require.NoError(t, err)
		goals, ok, err := store.Get(ctx, KeyGoals)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":"g1"}]`, goals)
		expenses, ok, err := store.Get(ctx, KeyGoalExpenses)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":"e1","goalId":"g1"}]`, expenses)
	})

	t.Run("should remove every key on clear", func(t *testing.T) {
		store := newStore(t)
		for _, key := range AllKeys {
			require.NoError(t, store.Set(ctx, key, "x"))
		}

		// when
		err := store.Clear(ctx)

		// then
		require.NoError(t, err)
		for _, key := range AllKeys {
			_, ok, err := store.Get(ctx, key)
			require.NoError(t, err)
			assert.False(t, ok, key)
		}
	})
}

func TestStubStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return NewStubStore()
	})
}

func TestStubStore_InjectedFailureLeavesDataUntouched(t *testing.T) {
	ctx := context.Background()
	store := NewStubStore()
	require.NoError(t, store.Set(ctx, KeyGoals, "[]"))
	store.SetErr = assert.AnError

	err := store.SetMany(ctx, map[string]string{KeyGoals: "[1]", KeyGoalExpenses: "[2]"})

	assert.ErrorIs(t, err, assert.AnError)
	goals, _ := store.Raw(KeyGoals)
	assert.Equal(t, "[]", goals)
	_, ok := store.Raw(KeyGoalExpenses)
	assert.False(t, ok)
}
