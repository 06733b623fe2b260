package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
	"github.com/xavierca1/imobi-backoffice/internal/usecase"
)

type CollaboratorHandler struct {
	service *usecase.CollaboratorService
}

func NewCollaboratorHandler(service *usecase.CollaboratorService) *CollaboratorHandler {
	return &CollaboratorHandler{service: service}
}

func (h *CollaboratorHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("active") == "true" {
		writeJSON(w, http.StatusOK, map[string]any{"collaborators": h.service.Active()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"loading":       h.service.Loading(),
		"collaborators": h.service.Snapshot(),
	})
}

func (h *CollaboratorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CollaboratorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "JSON inválido")
		return
	}
	c, err := h.service.Add(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CollaboratorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd entity.CollaboratorUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		badRequest(w, "JSON inválido")
		return
	}
	c, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CollaboratorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *CollaboratorHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.ToggleStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
