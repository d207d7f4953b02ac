package transport

import (
	"encoding/json"
	"net/http"

	"wildtrack-backend/internal/failure"
)

type ErrorResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Errors  []failure.FieldError `json:"errors,omitempty"`
	Stack   string               `json:"stack,omitempty"`
}

// Envelope is a success body; the "success" key is always set to true.
type Envelope map[string]interface{}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteSuccess(w http.ResponseWriter, status int, body Envelope) {
	if body == nil {
		body = Envelope{}
	}
	body["success"] = true
	WriteJSON(w, status, body)
}

func WriteError(w http.ResponseWriter, status int, message string, errs []failure.FieldError) {
	WriteJSON(w, status, ErrorResponse{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// WriteFailure reports err with the status and field details it carries.
func WriteFailure(w http.ResponseWriter, err error) {
	WriteError(w, failure.GetCode(err), err.Error(), failure.FieldErrors(err))
}
