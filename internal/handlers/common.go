package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pool-market-client/internal/middleware"
	"pool-market-client/internal/models"
	"pool-market-client/internal/services"
)

// Error codes returned by the bridge.
const (
	CodeBadRequest = "BAD_REQUEST"
	CodeNotFound   = "NOT_FOUND"
)

// ResultResponse is the body of every store operation response. On error
// the current notification queue is attached so a UI can show why.
type ResultResponse struct {
	Result        services.Result       `json:"result"`
	Data          any                   `json:"data,omitempty"`
	Notifications []models.Notification `json:"notifications,omitempty"`
}

// respondJSON sends v as a JSON body
func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, code, message string, statusCode int) {
	middleware.RespondError(w, code, message, statusCode)
}

// respondResult maps a store result to 200 or 422
func respondResult(w http.ResponseWriter, result services.Result, data any, notifications *services.NotificationService) {
	if result == services.ResultSuccess {
		respondJSON(w, http.StatusOK, ResultResponse{Result: result, Data: data})
		return
	}
	respondJSON(w, http.StatusUnprocessableEntity, ResultResponse{
		Result:        result,
		Notifications: notifications.List(),
	})
}

// decodeBody decodes a JSON request body, answering 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, CodeBadRequest, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

func queryFloat(r *http.Request, name string) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0
	}
	return v
}

func queryBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
