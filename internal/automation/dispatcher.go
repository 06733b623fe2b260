package automation

import (
	"context"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
	"github.com/xavierca1/imobi-backoffice/internal/infra/http/middleware"
	"github.com/xavierca1/imobi-backoffice/internal/infra/queue"
)

// Dispatcher entrega eventos de domínio aos webhooks cadastrados.
// Entrega é melhor-esforço: falha vira registro no histórico (e DLQ
// fica para mensagens podres, não para destino fora do ar).
type Dispatcher struct {
	Registry *Registry
	http     *resty.Client
}

func NewDispatcher(registry *Registry) *Dispatcher {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("User-Agent", "imobi-backoffice/1.0")

	return &Dispatcher{
		Registry: registry,
		http:     client,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, ev queue.DomainEvent) error {
	targets := d.Registry.Matching(ev.Event)
	if len(targets) == 0 {
		return nil
	}

	for _, w := range targets {
		d.deliver(ctx, w, ev)
	}
	return nil
}

// DeliverTest dispara um evento sintético para um destino específico
// (botão "testar" do console), ignorando o filtro de evento.
func (d *Dispatcher) DeliverTest(ctx context.Context, webhookID string) (entity.WebhookDelivery, bool) {
	w, ok := d.Registry.Get(webhookID)
	if !ok {
		return entity.WebhookDelivery{}, false
	}
	ev := queue.DomainEvent{
		Event:      "test",
		OccurredAt: time.Now(),
		Payload:    map[string]any{"webhook": w.Name},
	}
	return d.deliver(ctx, w, ev), true
}

func (d *Dispatcher) deliver(ctx context.Context, w entity.Webhook, ev queue.DomainEvent) entity.WebhookDelivery {
	start := time.Now()
	resp, err := d.http.R().
		SetContext(ctx).
		SetHeader("X-Imobi-Event", ev.Event).
		SetBody(ev).
		Post(w.URL)

	delivery := entity.WebhookDelivery{
		Event:          ev.Event,
		ResponseTimeMs: time.Since(start).Milliseconds(),
		Timestamp:      time.Now(),
	}

	switch {
	case err != nil:
		delivery.Status = entity.DeliveryFailure
		delivery.Error = err.Error()
		log.Printf("❌ [automation] %s (%s): %v", w.Name, w.URL, err)
	case resp.IsSuccess():
		delivery.Status = entity.DeliverySuccess
		delivery.StatusCode = resp.StatusCode()
	default:
		delivery.Status = entity.DeliveryFailure
		delivery.StatusCode = resp.StatusCode()
		delivery.Error = resp.Status()
		log.Printf("❌ [automation] %s respondeu %s", w.Name, resp.Status())
	}

	d.Registry.RecordDelivery(w.ID, delivery)
	middleware.RecordWebhookDelivery(delivery.Status)
	return delivery
}
