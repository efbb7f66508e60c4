package goal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pocketledger/pocketledger/internal/rest"
	"github.com/pocketledger/pocketledger/pkg/money"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type GoalDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	TargetDate    string          `json:"targetDate"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
	WeeklyIncome  decimal.Decimal `json:"weeklyIncome"`
	SavedAmount   decimal.Decimal `json:"savedAmount"`
	Timestamp     int64           `json:"timestamp"`
}

type GoalDraftDTO struct {
	Name          string      `json:"name"`
	TargetAmount  money.Input `json:"targetAmount"`
	TargetDate    string      `json:"targetDate"`
	MonthlyIncome money.Input `json:"monthlyIncome"`
	WeeklyIncome  money.Input `json:"weeklyIncome"`
}

type ExpenseDTO struct {
	ID        string          `json:"id"`
	GoalID    string          `json:"goalId"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Timestamp int64           `json:"timestamp"`
	Frequency string          `json:"frequency"`
}

type ExpenseDraftDTO struct {
	Name      string      `json:"name"`
	Amount    money.Input `json:"amount"`
	Frequency string      `json:"frequency"`
}

type AddExpenseResponseDTO struct {
	Expense ExpenseDTO `json:"expense"`
	Goal    GoalDTO    `json:"goal"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new savings goal")

	var draftDTO GoalDraftDTO
	if err := json.NewDecoder(r.Body).Decode(&draftDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := handler.service.CreateGoal(r.Context(), GoalDraft{
		Name:          draftDTO.Name,
		TargetAmount:  draftDTO.TargetAmount.String(),
		TargetDate:    draftDTO.TargetDate,
		MonthlyIncome: draftDTO.MonthlyIncome.String(),
		WeeklyIncome:  draftDTO.WeeklyIncome.String(),
	})
	if err != nil {
		writeServiceError(w, err, "Please enter valid details", "Failed to save goals")
		return
	}
	rest.WriteJSON(w, http.StatusCreated, GoalToDTO(created))
}

func (handler *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	goalID := mux.Vars(r)["id"]

	expenses, err := handler.service.GetExpenses(r.Context(), goalID)
	if err != nil {
		writeServiceError(w, err, "Invalid goal", "Failed to load data")
		return
	}

	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		dtos = append(dtos, ExpenseToDTO(e))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (handler *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	goalID := mux.Vars(r)["id"]
	log.Debugf("Adding expense to goal %s", goalID)

	var draftDTO ExpenseDraftDTO
	if err := json.NewDecoder(r.Body).Decode(&draftDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	expense, goal, err := handler.service.AddExpense(r.Context(), ExpenseDraft{
		GoalID:    goalID,
		Name:      draftDTO.Name,
		Amount:    draftDTO.Amount.String(),
		Frequency: draftDTO.Frequency,
	})
	if err != nil {
		writeServiceError(w, err, "Please enter valid expense details", "Failed to save expenses")
		return
	}
	rest.WriteJSON(w, http.StatusCreated, AddExpenseResponseDTO{
		Expense: ExpenseToDTO(expense),
		Goal:    GoalToDTO(goal),
	})
}

func writeServiceError(w http.ResponseWriter, err error, validationMessage string, storageMessage string) {
	switch {
	case errors.Is(err, ErrGoalNotFound):
		rest.WriteError(w, http.StatusNotFound, "Goal not found", err.Error())
	case errors.Is(err, ErrGoalNotSelected),
		errors.Is(err, ErrEmptyName),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidFrequency),
		errors.Is(err, money.ErrInvalidAmount):
		rest.WriteError(w, http.StatusBadRequest, validationMessage, err.Error())
	default:
		rest.WriteError(w, http.StatusInternalServerError, storageMessage, err.Error())
	}
}

func GoalToDTO(g SavingsGoal) GoalDTO {
	return GoalDTO{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		TargetDate:    g.TargetDate,
		MonthlyIncome: g.MonthlyIncome,
		WeeklyIncome:  g.WeeklyIncome,
		SavedAmount:   g.SavedAmount,
		Timestamp:     g.Timestamp,
	}
}

func ExpenseToDTO(e GoalExpense) ExpenseDTO {
	return ExpenseDTO{
		ID:        e.ID,
		GoalID:    e.GoalID,
		Name:      e.Name,
		Amount:    e.Amount,
		Date:      e.Date,
		Timestamp: e.Timestamp,
		Frequency: string(e.Frequency),
	}
}
