package settings

import (
	"net/http"

	"github.com/pocketledger/pocketledger/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ThemeDTO struct {
	Theme string `json:"theme"`
}

type Handler struct {
	theme *ThemeService
	data  *DataService
}

func NewHandler(theme *ThemeService, data *DataService) *Handler {
	return &Handler{theme: theme, data: data}
}

func (handler *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, ThemeDTO{Theme: string(handler.theme.Current())})
}

func (handler *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	log.Debug("Toggling theme")
	theme, err := handler.theme.Toggle(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to save theme preference", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, ThemeDTO{Theme: string(theme)})
}

func (handler *Handler) ClearData(w http.ResponseWriter, r *http.Request) {
	log.Debug("Clearing all data")
	if err := handler.data.ClearAll(r.Context()); err != nil {
		rest.WriteError(w, http.StatusInternalServerError, "Failed to clear data", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
