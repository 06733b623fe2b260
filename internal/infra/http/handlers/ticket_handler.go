package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
	"github.com/xavierca1/imobi-backoffice/internal/usecase"
)

type TicketHandler struct {
	service *usecase.TicketService
}

func NewTicketHandler(service *usecase.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	if client := r.URL.Query().Get("client_id"); client != "" {
		writeJSON(w, http.StatusOK, map[string]any{"tickets": h.service.ByClient(client)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"loading": h.service.Loading(),
		"tickets": h.service.Snapshot(),
	})
}

func (h *TicketHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Stats())
}

func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.TicketInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "JSON inválido")
		return
	}
	t, err := h.service.Add(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TicketHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd entity.TicketUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		badRequest(w, "JSON inválido")
		return
	}
	t, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *TicketHandler) Transition(w http.ResponseWriter, r *http.Request) {
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

type messageRequest struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

func (h *TicketHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "JSON inválido")
		return
	}
	if req.Sender == "" {
		req.Sender = entity.SenderAgent
	}
	m, err := h.service.AddMessage(r.Context(), chi.URLParam(r, "id"), req.Text, req.Sender)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}
