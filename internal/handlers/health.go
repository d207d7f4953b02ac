package handlers

import (
	"net/http"
	"time"

	"wildtrack-backend/internal/transport"
)

func health(env string, now func() time.Time) http.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, r *http.Request) {
		transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
			"message":     "UmZulu Wildtrack API is running",
			"timestamp":   now().UTC().Format(time.RFC3339),
			"environment": env,
		})
	}
}
