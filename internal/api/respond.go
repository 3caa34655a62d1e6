package api

import (
	"encoding/json"
	"net/http"

	"meetsched/internal/apperrors"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	appErr := apperrors.AsAppError(err)
	writeJSON(w, appErr.StatusCode(), errorResponse{
		Success: false,
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}
