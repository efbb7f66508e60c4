package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/pocketledger/pocketledger/internal/config"
	"github.com/pocketledger/pocketledger/internal/event_bus"
	"github.com/pocketledger/pocketledger/internal/test_utils"
	"github.com/pocketledger/pocketledger/pkg/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *mux.Router {
	t.Helper()
	cfg := config.Defaults()
	cfg.App.Timezone = "UTC"

	bus := event_bus.NewEventBus()
	store := kvstore.NewNotifyingStore(kvstore.NewSQLiteStore(test_utils.SetupTestDB(t)), bus)
	deps, err := BuildDependencies(store, bus, cfg)
	require.NoError(t, err)

	r := mux.NewRouter()
	SetupMiddleware(r, deps, cfg)
	RegisterRoutes(r, deps, cfg)
	return r
}

func call(t *testing.T, r *mux.Router, method string, path string, body string) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w.Code, decoded
}

func TestRoutes_BudgetFlow(t *testing.T) {
	r := setupRouter(t)

	// given
	status, _ := call(t, r, http.MethodPost, "/api/transactions", `{"name":"Groceries","price":"120,50","category":"Food"}`)
	require.Equal(t, http.StatusCreated, status)
	status, _ = call(t, r, http.MethodPut, "/api/limits", `{"weekly":100,"monthly":"","yearly":"5000"}`)
	require.Equal(t, http.StatusOK, status)

	// when
	status, overview := call(t, r, http.MethodGet, "/api/stats/overview", "")

	// then
	require.Equal(t, http.StatusOK, status)
	totals := overview["totals"].(map[string]any)
	assert.Equal(t, 120.5, totals["daily"])
	weekly := overview["limits"].(map[string]any)["weekly"].(map[string]any)
	assert.Equal(t, true, weekly["over"])
	assert.Equal(t, float64(100), weekly["percent"])
	monthly := overview["limits"].(map[string]any)["monthly"].(map[string]any)
	assert.Equal(t, false, monthly["set"])
	assert.Nil(t, monthly["percent"])
}

func TestRoutes_GoalFlow(t *testing.T) {
	r := setupRouter(t)
	target := time.Now().AddDate(1, 0, 0).Format(time.DateOnly)

	status, created := call(t, r, http.MethodPost, "/api/goals",
		`{"name":"Laptop","targetAmount":1000,"targetDate":"`+target+`","monthlyIncome":500,"weeklyIncome":100}`)
	require.Equal(t, http.StatusCreated, status)
	id := created["id"].(string)

	status, added := call(t, r, http.MethodPost, "/api/goals/"+id+"/expenses", `{"name":"Deposit","amount":"250","frequency":"weekly"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(250), added["goal"].(map[string]any)["savedAmount"])

	req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var goals []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &goals))
	require.Len(t, goals, 1)
	assert.Equal(t, float64(25), goals[0]["progress"])
	assert.Equal(t, float64(250), goals[0]["totalExpenses"])

	status, _ = call(t, r, http.MethodGet, "/api/goals/"+id+"/trend", "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, r, http.MethodPost, "/api/goals/unknown/expenses", `{"name":"x","amount":"1"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRoutes_ThemeAndClear(t *testing.T) {
	r := setupRouter(t)

	status, theme := call(t, r, http.MethodPut, "/api/settings/theme/toggle", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "dark", theme["theme"])
	status, _ = call(t, r, http.MethodPost, "/api/transactions", `{"name":"Tea","price":"3"}`)
	require.Equal(t, http.StatusCreated, status)

	// when
	status, _ = call(t, r, http.MethodDelete, "/api/settings/data", "")

	// then
	require.Equal(t, http.StatusNoContent, status)
	_, theme = call(t, r, http.MethodGet, "/api/settings/theme", "")
	assert.Equal(t, "light", theme["theme"])

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRoutes_NotFound(t *testing.T) {
	r := setupRouter(t)

	status, body := call(t, r, http.MethodGet, "/api/nothing", "")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not found", body["error"])
}
