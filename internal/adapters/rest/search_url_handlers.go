package rest

import (
	"encoding/json"
	"net/http"

	"github.com/swami086/gentle-space-realty-sub007/internal/contextkeys"
	"github.com/swami086/gentle-space-realty-sub007/internal/core/port"
)

// SearchURLHandler конвертирует параметры поиска в URL портала и обратно.
type SearchURLHandler struct {
	urls port.SearchURLPort
}

func NewSearchURLHandler(urls port.SearchURLPort) *SearchURLHandler {
	return &SearchURLHandler{urls: urls}
}

// Build обрабатывает POST /api/v1/search-url/build.
func (h *SearchURLHandler) Build(w http.ResponseWriter, r *http.Request) {
	var req BuildURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	url, err := h.urls.BuildURL(req.Params)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, BuildURLResponse{URL: url})
}

// Parse обрабатывает POST /api/v1/search-url/parse.
// Разбор best-effort: поля, чье значение по умолчанию кодируется
// отсутствием параметра, при round-trip теряются.
func (h *SearchURLHandler) Parse(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"component": "rest",
		"use_case":  "ParseSearchURL",
	})

	var req ParseURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params, err := h.urls.ParseURL(req.URL)
	if err != nil {
		logger.Warn("Failed to parse portal URL", port.Fields{"url": req.URL})
		WriteDomainError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, ParseURLResponse{Params: params})
}
