package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/imobi-backoffice/internal/usecase"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError traduz a taxonomia de erros para HTTP: regra de negócio
// vira 400, falha de infraestrutura vira 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if usecase.IsDomainError(err) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Success: false, Message: err.Error()})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: msg})
}

func notFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, errorResponse{Success: false, Message: msg})
}
