// Package http provides the HTTP handlers of the development API server:
// authentication and generic collection CRUD, all wrapped in the
// {status, message, data} envelope.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/vietsport/eprofile/internal/models"
)

func writeData(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(models.Envelope[any]{
		Status: models.StatusSuccess,
		Data:   data,
	})
}

func writeMessage(w http.ResponseWriter, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(models.Envelope[any]{
		Status:  models.StatusSuccess,
		Message: message,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(models.Envelope[any]{
		Status:  models.StatusError,
		Message: message,
	})
}
