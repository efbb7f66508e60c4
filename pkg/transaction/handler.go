package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pocketledger/pocketledger/internal/rest"
	"github.com/pocketledger/pocketledger/pkg/money"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Date      string          `json:"date"`
	Timestamp int64           `json:"timestamp"`
	Category  string          `json:"category,omitempty"`
}

type DraftDTO struct {
	Name     string      `json:"name"`
	Price    money.Input `json:"price"`
	Category string      `json:"category,omitempty"`
}

type Handler struct {
	service  Service
	location *time.Location
}

// NewHandler creates the transaction handler. Day filters are interpreted in location.
func NewHandler(service Service, location *time.Location) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{service: service, location: location}
}

func (handler *Handler) List(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing transactions")

	var (
		transactions []Transaction
		err          error
	)
	if dateString := r.URL.Query().Get("date"); dateString != "" {
		day, parseErr := time.ParseInLocation("2006-01-02", dateString, handler.location)
		if parseErr != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "date must be in YYYY-MM-DD format")
			return
		}
		transactions, err = handler.service.GetForDay(r.Context(), day)
	} else {
		transactions, err = handler.service.GetAll(r.Context())
	}
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to load transactions", err.Error())
		return
	}

	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		dtos = append(dtos, TransactionToDTO(t))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (handler *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding new transaction")

	var draftDTO DraftDTO
	if err := json.NewDecoder(r.Body).Decode(&draftDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := handler.service.Add(r.Context(), draftDTO.toDraft())
	if err != nil {
		writeServiceError(w, err, "Failed to save transaction")
		return
	}
	rest.WriteJSON(w, http.StatusCreated, TransactionToDTO(created))
}

func (handler *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	log.Debugf("Updating transaction %s", id)

	var draftDTO DraftDTO
	if err := json.NewDecoder(r.Body).Decode(&draftDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	updated, err := handler.service.Update(r.Context(), id, draftDTO.toDraft())
	if err != nil {
		writeServiceError(w, err, "Failed to save transaction")
		return
	}
	rest.WriteJSON(w, http.StatusOK, TransactionToDTO(updated))
}

func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	log.Debugf("Deleting transaction %s", id)

	if err := handler.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error, storageMessage string) {
	switch {
	case errors.Is(err, ErrEmptyName), errors.Is(err, money.ErrInvalidAmount):
		rest.WriteError(w, http.StatusBadRequest, "Please enter a valid name and price", err.Error())
	case errors.Is(err, ErrTransactionNotFound):
		rest.WriteError(w, http.StatusNotFound, "Transaction not found", err.Error())
	default:
		rest.WriteError(w, http.StatusInternalServerError, storageMessage, err.Error())
	}
}

func (d DraftDTO) toDraft() Draft {
	return Draft{
		Name:     d.Name,
		Price:    d.Price.String(),
		Category: d.Category,
	}
}

func TransactionToDTO(t Transaction) TransactionDTO {
	return TransactionDTO{
		ID:        t.ID,
		Name:      t.Name,
		Price:     t.Price,
		Date:      t.Date,
		Timestamp: t.Timestamp,
		Category:  t.Category,
	}
}
