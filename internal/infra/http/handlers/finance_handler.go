package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
	"github.com/xavierca1/imobi-backoffice/internal/usecase"
)

type FinanceHandler struct {
	service *usecase.FinanceService
}

func NewFinanceHandler(service *usecase.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: service}
}

func (h *FinanceHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"transactions": h.service.Snapshot()})
}

func (h *FinanceHandler) Recent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"transactions": h.service.Recent()})
}

// Stats sem parâmetros cobre o mês corrente; ?from/?to definem uma
// janela arbitrária.
func (h *FinanceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" && toStr == "" {
		writeJSON(w, http.StatusOK, h.service.Stats())
		return
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		badRequest(w, "Parâmetro from inválido (use YYYY-MM-DD)")
		return
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		badRequest(w, "Parâmetro to inválido (use YYYY-MM-DD)")
		return
	}
	writeJSON(w, http.StatusOK, h.service.StatsWindow(from, to))
}

func (h *FinanceHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"income":  entity.IncomeCategories,
		"expense": entity.ExpenseCategories,
	})
}

func (h *FinanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "JSON inválido")
		return
	}
	t, err := h.service.Add(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *FinanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd entity.TransactionUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		badRequest(w, "JSON inválido")
		return
	}
	t, err := h.service.Update(chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *FinanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
