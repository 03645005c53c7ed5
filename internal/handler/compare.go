package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/gitcompare/internal/service"
)

// CompareHandler serves the profile comparison endpoint.
type CompareHandler struct {
	compare *service.CompareService
	logger  *slog.Logger
}

// NewCompareHandler creates a CompareHandler.
func NewCompareHandler(compareSvc *service.CompareService, logger *slog.Logger) *CompareHandler {
	return &CompareHandler{compare: compareSvc, logger: logger}
}

type compareRequest struct {
	URL1 string `json:"url1"`
	URL2 string `json:"url2"`
}

// HandleCompare compares the two GitHub users behind url1 and url2.
//
// HTTP: POST /compare
// Auth: required
//
// Failure modes: 400 when both URLs extract to the same username (checked
// before any upstream call), 404 when either user is missing upstream,
// 504 when either upstream call times out, 500 otherwise.
func (h *CompareHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid request body",
		})
		return
	}

	result, err := h.compare.Compare(r.Context(), req.URL1, req.URL2)
	if err != nil {
		h.logger.Debug("compare failed",
			slog.String("url1", req.URL1),
			slog.String("url2", req.URL2),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
