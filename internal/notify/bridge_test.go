package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/imobi-backoffice/internal/cache"
	"github.com/xavierca1/imobi-backoffice/internal/entity"
	"github.com/xavierca1/imobi-backoffice/internal/infra/queue"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishEvent(ctx context.Context, ev queue.DomainEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendLeadWon(leadName string, value float64) error {
	args := m.Called(leadName, value)
	return args.Error(0)
}

func eventNamed(name string) any {
	return mock.MatchedBy(func(ev queue.DomainEvent) bool { return ev.Event == name })
}

func TestLeadInsertSynthesizesNotification(t *testing.T) {
	producer := new(MockProducer)
	producer.On("PublishEvent", mock.Anything, eventNamed(queue.EventLeadCreated)).Return(nil)

	center := NewCenter()
	b := NewBridge(center, producer, nil)

	b.onLead(context.Background(), cache.Change[entity.Lead]{
		Kind:   cache.Inserted,
		Entity: entity.Lead{ID: "1", Name: "Maria", Source: "Instagram", Status: "novo"},
	})

	items := center.Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, "Novo Lead Detectado", items[0].Title)
	assert.Contains(t, items[0].Message, "Maria")
	assert.Contains(t, items[0].Message, "Instagram")
	producer.AssertExpectations(t)
}

func TestLeadStageChangeUsesColumnLabel(t *testing.T) {
	producer := new(MockProducer)
	producer.On("PublishEvent", mock.Anything, eventNamed(queue.EventLeadStageChanged)).Return(nil)

	center := NewCenter()
	b := NewBridge(center, producer, nil)

	prev := entity.Lead{ID: "1", Name: "Maria", Status: "contato"}
	b.onLead(context.Background(), cache.Change[entity.Lead]{
		Kind:   cache.Updated,
		Entity: entity.Lead{ID: "1", Name: "Maria", Status: "negociacao"},
		Prev:   &prev,
	})

	items := center.Snapshot()
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Message, "Negociação")
}

func TestLeadUpdateWithoutStageChangeIsSilent(t *testing.T) {
	center := NewCenter()
	b := NewBridge(center, nil, nil)

	prev := entity.Lead{ID: "1", Name: "Maria", Status: "contato", Value: 100}
	b.onLead(context.Background(), cache.Change[entity.Lead]{
		Kind:   cache.Updated,
		Entity: entity.Lead{ID: "1", Name: "Maria", Status: "contato", Value: 500},
		Prev:   &prev,
	})

	assert.Empty(t, center.Snapshot())
}

func TestLeadWonTriggersEmailAndEvent(t *testing.T) {
	producer := new(MockProducer)
	producer.On("PublishEvent", mock.Anything, eventNamed(queue.EventLeadStageChanged)).Return(nil)
	producer.On("PublishEvent", mock.Anything, eventNamed(queue.EventLeadWon)).Return(nil)

	mailer := new(MockMailer)
	mailer.On("SendLeadWon", "Maria", 500000.0).Return(nil)

	center := NewCenter()
	b := NewBridge(center, producer, mailer)

	prev := entity.Lead{ID: "1", Name: "Maria", Status: "negociacao", Value: 500000}
	b.onLead(context.Background(), cache.Change[entity.Lead]{
		Kind:   cache.Updated,
		Entity: entity.Lead{ID: "1", Name: "Maria", Status: "ganho", Value: 500000},
		Prev:   &prev,
	})

	assert.Len(t, center.Snapshot(), 2, "movido + fechado")
	producer.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestTicketResolvedNotifies(t *testing.T) {
	producer := new(MockProducer)
	producer.On("PublishEvent", mock.Anything, eventNamed(queue.EventTicketResolved)).Return(nil)

	center := NewCenter()
	b := NewBridge(center, producer, nil)

	prev := entity.Ticket{ID: "t1", ClientName: "Carlos", Status: "em_andamento"}
	b.onTicket(context.Background(), cache.Change[entity.Ticket]{
		Kind:   cache.Updated,
		Entity: entity.Ticket{ID: "t1", ClientName: "Carlos", Status: "resolvido"},
		Prev:   &prev,
	})

	items := center.Snapshot()
	require.Len(t, items, 1)
	assert.Equal(t, "Atendimento Resolvido", items[0].Title)
}

func TestClientMessageNotifiesTruncated(t *testing.T) {
	producer := new(MockProducer)
	producer.On("PublishEvent", mock.Anything, eventNamed(queue.EventMessageReceived)).Return(nil)

	center := NewCenter()
	b := NewBridge(center, producer, nil)

	long := "quero visitar o apartamento do anúncio amanhã de manhã, pode ser às nove horas?"
	prev := entity.Ticket{ID: "t1", ClientName: "Carlos", Status: "aberto"}
	b.onTicket(context.Background(), cache.Change[entity.Ticket]{
		Kind: cache.Updated,
		Entity: entity.Ticket{ID: "t1", ClientName: "Carlos", Status: "aberto",
			Messages: []entity.Message{{ID: "m1", Text: long, Sender: entity.SenderClient}}},
		Prev: &prev,
	})

	items := center.Snapshot()
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Message, "…")
	assert.Less(t, len([]rune(items[0].Message)), len([]rune(long)))
}

func TestAgentMessageIsSilent(t *testing.T) {
	center := NewCenter()
	b := NewBridge(center, nil, nil)

	prev := entity.Ticket{ID: "t1", ClientName: "Carlos", Status: "aberto"}
	b.onTicket(context.Background(), cache.Change[entity.Ticket]{
		Kind: cache.Updated,
		Entity: entity.Ticket{ID: "t1", ClientName: "Carlos", Status: "aberto",
			Messages: []entity.Message{{ID: "m1", Text: "já respondo", Sender: entity.SenderAgent}}},
		Prev: &prev,
	})

	assert.Empty(t, center.Snapshot())
}

func TestWatchAppointmentsOnInsertOnly(t *testing.T) {
	producer := new(MockProducer)
	producer.On("PublishEvent", mock.Anything, eventNamed(queue.EventAppointmentCreated)).Return(nil)

	center := NewCenter()
	b := NewBridge(center, producer, nil)

	ch := make(chan cache.Change[entity.Appointment], 2)
	ch <- cache.Change[entity.Appointment]{
		Kind: cache.Inserted,
		Entity: entity.Appointment{ID: "a1", ClientName: "Ana",
			Date: time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC), Time: "10:00"},
	}
	ch <- cache.Change[entity.Appointment]{
		Kind:   cache.Updated,
		Entity: entity.Appointment{ID: "a1", ClientName: "Ana", Status: "confirmado"},
	}
	close(ch)

	b.WatchAppointments(context.Background(), ch)

	items := center.Snapshot()
	require.Len(t, items, 1, "update não gera alerta")
	assert.Equal(t, "Novo Agendamento", items[0].Title)
	assert.Contains(t, items[0].Message, "15/04/2026")
}
