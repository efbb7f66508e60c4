package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pocketledger/pocketledger/internal/config"
	"github.com/pocketledger/pocketledger/internal/rest"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Transactions
	r.HandleFunc("/api/transactions", deps.TransactionHandler.List).Methods("GET")
	r.HandleFunc("/api/transactions", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/transactions/{id}", deps.TransactionHandler.Update).Methods("PUT")
	r.HandleFunc("/api/transactions/{id}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Spending limits
	r.HandleFunc("/api/limits", deps.LimitHandler.Get).Methods("GET")
	r.HandleFunc("/api/limits", deps.LimitHandler.Update).Methods("PUT")

	// Savings goals
	r.HandleFunc("/api/goals", deps.StatsHandler.GetGoals).Methods("GET")
	r.HandleFunc("/api/goals", deps.GoalHandler.CreateGoal).Methods("POST")
	r.HandleFunc("/api/goals/{id}/expenses", deps.GoalHandler.ListExpenses).Methods("GET")
	r.HandleFunc("/api/goals/{id}/expenses", deps.GoalHandler.AddExpense).Methods("POST")
	r.HandleFunc("/api/goals/{id}/trend", deps.StatsHandler.GetGoalTrend).Methods("GET")

	// Stats
	r.HandleFunc("/api/stats/overview", deps.StatsHandler.GetOverview).Methods("GET")
	r.HandleFunc("/api/stats/insights", deps.StatsHandler.GetInsights).Methods("GET")

	// Settings
	r.HandleFunc("/api/settings/theme", deps.SettingsHandler.GetTheme).Methods("GET")
	r.HandleFunc("/api/settings/theme/toggle", deps.SettingsHandler.ToggleTheme).Methods("PUT")
	r.HandleFunc("/api/settings/data", deps.SettingsHandler.ClearData).Methods("DELETE")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rest.WriteError(w, http.StatusNotFound, "Not found", req.URL.Path)
	})
}
