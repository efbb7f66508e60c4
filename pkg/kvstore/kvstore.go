package kvstore

import "context"

// Keys of the persisted layout. Values are JSON documents.
const (
	KeyTransactions    = "transactions"
	KeyGoals           = "goals"
	KeyGoalExpenses    = "goalExpenses"
	KeySpendingLimits  = "spendingLimits"
	KeyThemePreference = "themePreference"
)

// AllKeys lists every key the application writes.
var AllKeys = []string{
	KeyTransactions,
	KeyGoals,
	KeyGoalExpenses,
	KeySpendingLimits,
	KeyThemePreference,
}

// Store is an opaque string key-value record store.
type Store interface {
	// Get returns the value stored under key. A missing key is not an error: ok is false.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	// SetMany writes all values in a single transition. Either every key is
	// written or none is.
	SetMany(ctx context.Context, values map[string]string) error
	// Clear removes every key.
	Clear(ctx context.Context) error
}
