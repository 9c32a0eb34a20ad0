package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// WriteDomainError маппит доменные ошибки на HTTP-статусы.
func WriteDomainError(w http.ResponseWriter, err error) {
	var valErr *domain.ValidationError
	var svcErr *domain.ExternalServiceError
	var timeoutErr *domain.PollingTimeoutError

	switch {
	case errors.As(err, &valErr):
		WriteJSONError(w, http.StatusBadRequest, valErr.Error())
	case errors.Is(err, domain.ErrStagedSetNotFound), errors.Is(err, domain.ErrPresetNotFound):
		WriteJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyApproved):
		WriteJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNoContent):
		WriteJSONError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &timeoutErr):
		WriteJSONError(w, http.StatusGatewayTimeout, err.Error())
	case errors.As(err, &svcErr):
		WriteJSONError(w, http.StatusBadGateway, err.Error())
	default:
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
