package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// statusOf maps an error code to its HTTP status.
func statusOf(code errors.ErrorCode) int {
	switch code {
	case errors.InvalidInput:
		return http.StatusBadRequest
	case errors.Unauthorized:
		return http.StatusForbidden
	case errors.NotFound:
		return http.StatusNotFound
	case errors.InvalidTransition, errors.InvalidFill, errors.TransferFailed,
		errors.InvalidSettlement, errors.AlreadyProcessed:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.CodeOf(err)
	status := statusOf(code)

	resp := errorResponse{Code: string(code), Message: err.Error()}
	var details *errors.ErrorDetails
	if errors.As(err, &details) {
		resp.Field = details.Field
	}
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), err,
			logger.NewField("method", r.Method),
			logger.NewField("path", r.URL.Path),
		)
		resp.Message = "internal server error"
	}

	writeJSON(w, status, resp)
}
