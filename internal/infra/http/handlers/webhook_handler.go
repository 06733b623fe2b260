package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/imobi-backoffice/internal/automation"
	"github.com/xavierca1/imobi-backoffice/internal/entity"
)

// WebhookHandler expõe o console de automação: cadastro de destinos,
// histórico de entregas e o botão de teste.
type WebhookHandler struct {
	registry   *automation.Registry
	dispatcher *automation.Dispatcher
}

func NewWebhookHandler(registry *automation.Registry, dispatcher *automation.Dispatcher) *WebhookHandler {
	return &WebhookHandler{registry: registry, dispatcher: dispatcher}
}

func (h *WebhookHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"webhooks": h.registry.List()})
}

func (h *WebhookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input automation.WebhookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		badRequest(w, "JSON inválido")
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		badRequest(w, "Nome é obrigatório")
		return
	}
	if !strings.HasPrefix(input.URL, "http://") && !strings.HasPrefix(input.URL, "https://") {
		badRequest(w, "URL deve começar com http:// ou https://")
		return
	}
	if input.Event == "" {
		input.Event = "*"
	}
	writeJSON(w, http.StatusCreated, h.registry.Add(input))
}

func (h *WebhookHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd entity.WebhookUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		badRequest(w, "JSON inválido")
		return
	}
	webhook, ok := h.registry.Update(chi.URLParam(r, "id"), upd)
	if !ok {
		notFound(w, "Webhook não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, webhook)
}

func (h *WebhookHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	webhook, ok := h.registry.Toggle(chi.URLParam(r, "id"))
	if !ok {
		notFound(w, "Webhook não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, webhook)
}

func (h *WebhookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.registry.Delete(chi.URLParam(r, "id")) {
		notFound(w, "Webhook não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *WebhookHandler) Deliveries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.registry.Get(id); !ok {
		notFound(w, "Webhook não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deliveries": h.registry.Deliveries(id)})
}

// Test dispara um evento sintético no destino, fora do filtro de
// evento, e devolve o resultado da tentativa.
func (h *WebhookHandler) Test(w http.ResponseWriter, r *http.Request) {
	delivery, ok := h.dispatcher.DeliverTest(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		notFound(w, "Webhook não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, delivery)
}
