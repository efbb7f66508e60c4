package goal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*mux.Router, *ServiceImpl) {
	service, _ := setup(t)
	handler := NewHandler(service)
	r := mux.NewRouter()
	r.HandleFunc("/api/goals", handler.CreateGoal).Methods("POST")
	r.HandleFunc("/api/goals/{id}/expenses", handler.ListExpenses).Methods("GET")
	r.HandleFunc("/api/goals/{id}/expenses", handler.AddExpense).Methods("POST")
	return r, service
}

func TestHandler_CreateGoal(t *testing.T) {
	r, _ := setupHandlerTest(t)
	body := `{"name":"Bike","targetAmount":"5000","targetDate":"2024-06-01","monthlyIncome":2000,"weeklyIncome":500}`
	req := httptest.NewRequest(http.MethodPost, "/api/goals", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var created GoalDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, "Bike", created.Name)
	assert.Equal(t, "5000", created.TargetAmount.String())

	req = httptest.NewRequest(http.MethodPost, "/api/goals", bytes.NewBufferString(`{"name":"Bike"}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_AddExpense(t *testing.T) {
	r, service := setupHandlerTest(t)
	goal, err := service.CreateGoal(ctx, validGoalDraft())
	require.NoError(t, err)

	t.Run("should return the expense and the updated goal", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/goals/"+goal.ID+"/expenses", bytes.NewBufferString(`{"name":"Deposit","amount":250}`))
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response AddExpenseResponseDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "250", response.Goal.SavedAmount.String())
		assert.Equal(t, "daily", response.Expense.Frequency)
	})

	t.Run("should answer 404 for unknown goal", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/goals/unknown/expenses", bytes.NewBufferString(`{"name":"Deposit","amount":250}`))
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should list expenses of the goal", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/goals/"+goal.ID+"/expenses", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var expenses []ExpenseDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&expenses))
		assert.Len(t, expenses, 1)
	})
}
