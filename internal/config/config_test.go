package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// when
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	// then
	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "PKR", cfg.App.Currency)
	assert.Equal(t, 30*time.Second, cfg.Refresh.Interval)
	weekStart, err := cfg.WeekStartDay()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, weekStart)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	// given
	path := filepath.Join(t.TempDir(), "application.yaml")
	yaml := "port: 9000\napp:\n  weekstart: monday\n  currency: EUR\ndb:\n  path: /tmp/ledger.db\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("POCKETLEDGER_APP_CURRENCY", "USD")
	t.Setenv("POCKETLEDGER_REFRESH_INTERVAL", "45s")

	// when
	cfg, err := Load(path)

	// then
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "USD", cfg.App.Currency)
	assert.Equal(t, "/tmp/ledger.db", cfg.Database.Path)
	assert.Equal(t, 45*time.Second, cfg.Refresh.Interval)
	weekStart, err := cfg.WeekStartDay()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, weekStart)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Application)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(a *Application) {},
		},
		{
			name:    "unknown driver",
			mutate:  func(a *Application) { a.Database.Driver = "mysql" },
			wantErr: "invalid db driver",
		},
		{
			name:    "bad timezone",
			mutate:  func(a *Application) { a.App.Timezone = "Mars/Olympus" },
			wantErr: "invalid timezone",
		},
		{
			name:    "bad week start",
			mutate:  func(a *Application) { a.App.WeekStart = "someday" },
			wantErr: "invalid week start",
		},
		{
			name:    "refresh too fast",
			mutate:  func(a *Application) { a.Refresh.Interval = time.Millisecond },
			wantErr: "invalid refresh interval",
		},
		{
			name:    "empty sqlite path",
			mutate:  func(a *Application) { a.Database.Path = "" },
			wantErr: "sqlite database path",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
