package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
	"github.com/xavierca1/imobi-backoffice/internal/usecase"
)

type AgendaHandler struct {
	service *usecase.AgendaService
}

func NewAgendaHandler(service *usecase.AgendaService) *AgendaHandler {
	return &AgendaHandler{service: service}
}

func (h *AgendaHandler) List(w http.ResponseWriter, r *http.Request) {
	// ?day=YYYY-MM-DD filtra o calendário para um dia.
	if day := r.URL.Query().Get("day"); day != "" {
		d, err := time.Parse("2006-01-02", day)
		if err != nil {
			badRequest(w, "Data inválida (use YYYY-MM-DD)")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"appointments": h.service.ForDay(d)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"loading":      h.service.Loading(),
		"appointments": h.service.Snapshot(),
	})
}

func (h *AgendaHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"appointments": h.service.Upcoming()})
}

func (h *AgendaHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Stats())
}

func (h *AgendaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.AppointmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "JSON inválido")
		return
	}
	a, err := h.service.Add(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *AgendaHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd entity.AppointmentUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		badRequest(w, "JSON inválido")
		return
	}
	a, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AgendaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AgendaHandler) Transition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "JSON inválido")
		return
	}
	if err := h.service.Transition(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
