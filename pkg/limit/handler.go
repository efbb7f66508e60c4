package limit

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pocketledger/pocketledger/internal/rest"
	"github.com/pocketledger/pocketledger/pkg/money"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type SpendingLimitDTO struct {
	Weekly  decimal.Decimal `json:"weekly"`
	Monthly decimal.Decimal `json:"monthly"`
	Yearly  decimal.Decimal `json:"yearly"`
}

type DraftDTO struct {
	Weekly  money.Input `json:"weekly"`
	Monthly money.Input `json:"monthly"`
	Yearly  money.Input `json:"yearly"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (handler *Handler) Get(w http.ResponseWriter, r *http.Request) {
	limits, err := handler.service.Get(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to load spending limits", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, LimitToDTO(limits))
}

func (handler *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating spending limits")

	var draftDTO DraftDTO
	if err := json.NewDecoder(r.Body).Decode(&draftDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	limits, err := handler.service.Update(r.Context(), Draft{
		Weekly:  draftDTO.Weekly.String(),
		Monthly: draftDTO.Monthly.String(),
		Yearly:  draftDTO.Yearly.String(),
	})
	if err != nil {
		if errors.Is(err, money.ErrInvalidAmount) {
			rest.WriteError(w, http.StatusBadRequest, "Please enter valid limits", err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, "Failed to save spending limits", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, LimitToDTO(limits))
}

func LimitToDTO(limits SpendingLimit) SpendingLimitDTO {
	return SpendingLimitDTO{
		Weekly:  limits.Weekly,
		Monthly: limits.Monthly,
		Yearly:  limits.Yearly,
	}
}
