package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/imobi-backoffice/internal/notify"
)

type NotificationHandler struct {
	center *notify.Center
}

func NewNotificationHandler(center *notify.Center) *NotificationHandler {
	return &NotificationHandler{center: center}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"unread":        h.center.UnreadCount(),
		"notifications": h.center.Snapshot(),
	})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if !h.center.MarkRead(chi.URLParam(r, "id")) {
		notFound(w, "Notificação não encontrada")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	h.center.MarkAllRead()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.center.Delete(chi.URLParam(r, "id")) {
		notFound(w, "Notificação não encontrada")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Clear com ?read=true limpa só as lidas; sem parâmetro limpa tudo.
func (h *NotificationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("read") == "true" {
		h.center.ClearRead()
	} else {
		h.center.ClearAll()
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
