package notify

import (
	"context"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"github.com/xavierca1/imobi-backoffice/internal/cache"
	"github.com/xavierca1/imobi-backoffice/internal/entity"
	"github.com/xavierca1/imobi-backoffice/internal/infra/queue"
	"github.com/xavierca1/imobi-backoffice/internal/pipeline"
)

// LeadWonMailer avisa a equipe por email quando um negócio fecha.
type LeadWonMailer interface {
	SendLeadWon(leadName string, value float64) error
}

// Bridge assina os canais de mudança dos caches e traduz cada patch em
// notificação no sininho + evento de domínio na fila. Tudo best-effort:
// falha de publicação é logada e a vida segue.
type Bridge struct {
	center   *Center
	producer queue.EventProducerInterface
	mailer   LeadWonMailer
}

func NewBridge(center *Center, producer queue.EventProducerInterface, mailer LeadWonMailer) *Bridge {
	return &Bridge{center: center, producer: producer, mailer: mailer}
}

// WatchLeads roda como goroutine drenando o canal de mudanças de leads.
func (b *Bridge) WatchLeads(ctx context.Context, ch <-chan cache.Change[entity.Lead]) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-ch:
			if !ok {
				return
			}
			b.onLead(ctx, change)
		}
	}
}

func (b *Bridge) onLead(ctx context.Context, change cache.Change[entity.Lead]) {
	lead := change.Entity
	switch change.Kind {
	case cache.Inserted:
		b.center.Add(entity.NotificationLead,
			"Novo Lead Detectado",
			fmt.Sprintf("%s entrou no funil via %s.", lead.Name, lead.Source),
			"/leads")
		b.publish(ctx, queue.EventLeadCreated, map[string]any{
			"lead_id": lead.ID,
			"name":    lead.Name,
			"source":  lead.Source,
			"value":   lead.Value,
		})
	case cache.Updated:
		if change.Prev == nil || change.Prev.Status == lead.Status {
			return
		}
		label := pipeline.LeadStages.LabelFor(lead.Status)
		b.center.Add(entity.NotificationLead,
			"Lead Movido",
			fmt.Sprintf("%s foi movido para %s.", lead.Name, label),
			"/leads")
		b.publish(ctx, queue.EventLeadStageChanged, map[string]any{
			"lead_id":    lead.ID,
			"name":       lead.Name,
			"from_stage": change.Prev.Status,
			"to_stage":   lead.Status,
		})
		if lead.Status == pipeline.LeadStageWon {
			b.center.Add(entity.NotificationSuccess,
				"Negócio Fechado! 🎉",
				fmt.Sprintf("%s fechou — R$ %.2f.", lead.Name, lead.Value),
				"/leads")
			b.publish(ctx, queue.EventLeadWon, map[string]any{
				"lead_id": lead.ID,
				"name":    lead.Name,
				"value":   lead.Value,
			})
			if b.mailer != nil {
				if err := b.mailer.SendLeadWon(lead.Name, lead.Value); err != nil {
					log.Printf("⚠️ [notify] email de lead fechado falhou: %v", err)
				}
			}
		}
	}
}

// WatchAppointments roda como goroutine drenando a agenda.
func (b *Bridge) WatchAppointments(ctx context.Context, ch <-chan cache.Change[entity.Appointment]) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-ch:
			if !ok {
				return
			}
			if change.Kind != cache.Inserted {
				continue
			}
			a := change.Entity
			b.center.Add(entity.NotificationAppointment,
				"Novo Agendamento",
				fmt.Sprintf("%s — %s às %s.", a.ClientName, a.Date.Format("02/01/2006"), a.Time),
				"/agenda")
			b.publish(ctx, queue.EventAppointmentCreated, map[string]any{
				"appointment_id": a.ID,
				"client_name":    a.ClientName,
				"date":           a.Date.Format("2006-01-02"),
				"time":           a.Time,
			})
		}
	}
}

// WatchTickets roda como goroutine drenando os atendimentos. Dois
// gatilhos: ticket resolvido e mensagem nova de cliente (detectada
// pelo crescimento da conversa entre Prev e a versão nova).
func (b *Bridge) WatchTickets(ctx context.Context, ch <-chan cache.Change[entity.Ticket]) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-ch:
			if !ok {
				return
			}
			b.onTicket(ctx, change)
		}
	}
}

func (b *Bridge) onTicket(ctx context.Context, change cache.Change[entity.Ticket]) {
	if change.Kind != cache.Updated || change.Prev == nil {
		return
	}
	t := change.Entity
	prev := *change.Prev

	if prev.Status != t.Status && t.Status == pipeline.TicketStageSolved {
		b.center.Add(entity.NotificationSuccess,
			"Atendimento Resolvido",
			fmt.Sprintf("O atendimento de %s foi resolvido.", t.ClientName),
			"/atendimentos")
		b.publish(ctx, queue.EventTicketResolved, map[string]any{
			"ticket_id":   t.ID,
			"client_name": t.ClientName,
		})
	}

	// Só mensagens de cliente geram alerta; as do atendente são eco da
	// própria equipe.
	for _, m := range t.Messages[min(len(prev.Messages), len(t.Messages)):] {
		if m.Sender != entity.SenderClient {
			continue
		}
		b.center.Add(entity.NotificationInfo,
			"Mensagem Recebida",
			fmt.Sprintf("%s: %s", t.ClientName, truncate(m.Text, 50)),
			"/atendimentos")
		b.publish(ctx, queue.EventMessageReceived, map[string]any{
			"ticket_id":   t.ID,
			"client_name": t.ClientName,
			"message_id":  m.ID,
		})
	}
}

func (b *Bridge) publish(ctx context.Context, event string, payload map[string]any) {
	if b.producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err := b.producer.PublishEvent(pubCtx, queue.DomainEvent{
		Event:      event,
		OccurredAt: time.Now(),
		Payload:    payload,
	})
	if err != nil {
		log.Printf("⚠️ [notify] falha ao publicar %s: %v", event, err)
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}
