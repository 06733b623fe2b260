// Package automation é o console de webhooks de saída: cadastro de
// destinos, entrega dos eventos de domínio e histórico de tentativas.
// O cadastro vive na memória do processo (como o financeiro) — é
// configuração de sessão, não dado do CRM.
package automation

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
)

const deliveryHistoryLimit = 50

type WebhookInput struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Event       string `json:"event"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type Registry struct {
	mu         sync.RWMutex
	webhooks   []entity.Webhook
	deliveries map[string][]entity.WebhookDelivery
}

func NewRegistry() *Registry {
	return &Registry{
		deliveries: make(map[string][]entity.WebhookDelivery),
	}
}

func (r *Registry) Add(input WebhookInput) entity.Webhook {
	w := entity.Webhook{
		ID:          uuid.New().String(),
		Name:        input.Name,
		URL:         input.URL,
		Event:       input.Event,
		Description: input.Description,
		Active:      input.Active,
		CreatedAt:   time.Now(),
	}

	r.mu.Lock()
	r.webhooks = append(r.webhooks, w)
	r.mu.Unlock()
	return w
}

func (r *Registry) Update(id string, upd entity.WebhookUpdate) (entity.Webhook, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.webhooks {
		if r.webhooks[i].ID != id {
			continue
		}
		w := &r.webhooks[i]
		if upd.Name != nil {
			w.Name = *upd.Name
		}
		if upd.URL != nil {
			w.URL = *upd.URL
		}
		if upd.Event != nil {
			w.Event = *upd.Event
		}
		if upd.Description != nil {
			w.Description = *upd.Description
		}
		if upd.Active != nil {
			w.Active = *upd.Active
		}
		return *w, true
	}
	return entity.Webhook{}, false
}

func (r *Registry) Toggle(id string) (entity.Webhook, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.webhooks {
		if r.webhooks[i].ID == id {
			r.webhooks[i].Active = !r.webhooks[i].Active
			return r.webhooks[i], true
		}
	}
	return entity.Webhook{}, false
}

func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.webhooks {
		if r.webhooks[i].ID == id {
			r.webhooks = append(r.webhooks[:i], r.webhooks[i+1:]...)
			delete(r.deliveries, id)
			return true
		}
	}
	return false
}

func (r *Registry) Get(id string) (entity.Webhook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.webhooks {
		if w.ID == id {
			return w, true
		}
	}
	return entity.Webhook{}, false
}

func (r *Registry) List() []entity.Webhook {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Webhook, len(r.webhooks))
	copy(out, r.webhooks)
	return out
}

// Matching devolve os destinos ativos assinando o evento ("*" assina
// todos).
func (r *Registry) Matching(event string) []entity.Webhook {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.Webhook
	for _, w := range r.webhooks {
		if !w.Active {
			continue
		}
		if w.Event == event || w.Event == "*" {
			out = append(out, w)
		}
	}
	return out
}

// RecordDelivery anexa a tentativa ao histórico (limitado) e atualiza
// os contadores do destino.
func (r *Registry) RecordDelivery(webhookID string, d entity.WebhookDelivery) {
	d.ID = uuid.New().String()
	d.WebhookID = webhookID
	if d.Timestamp.IsZero() {
		d.Timestamp = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(r.deliveries[webhookID], d)
	if len(list) > deliveryHistoryLimit {
		list = list[len(list)-deliveryHistoryLimit:]
	}
	r.deliveries[webhookID] = list

	for i := range r.webhooks {
		if r.webhooks[i].ID == webhookID {
			r.webhooks[i].TotalEvents++
			if d.Status == entity.DeliverySuccess {
				r.webhooks[i].SuccessEvents++
			}
			ts := d.Timestamp
			r.webhooks[i].LastRunAt = &ts
			break
		}
	}
}

// Deliveries devolve o histórico do destino, mais recente primeiro.
func (r *Registry) Deliveries(webhookID string) []entity.WebhookDelivery {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.deliveries[webhookID]
	out := make([]entity.WebhookDelivery, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}
