package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
	"github.com/xavierca1/imobi-backoffice/internal/infra/realtime"
)

type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) FetchAll(ctx context.Context) ([]entity.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Insert(ctx context.Context, t entity.Ticket) (entity.Ticket, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(entity.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Update(ctx context.Context, id string, upd entity.TicketUpdate) (entity.Ticket, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(entity.Ticket), args.Error(1)
}

func (m *MockTicketRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTicketRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTicketRepository) InsertMessage(ctx context.Context, ticketID, text, sender string) (entity.Message, error) {
	args := m.Called(ctx, ticketID, text, sender)
	return args.Get(0).(entity.Message), args.Error(1)
}

func ticketInsertEvent(id, name string) realtime.Event {
	record, _ := json.Marshal(map[string]any{"id": id, "cliente_nome": name, "status": "aberto"})
	return realtime.Event{Table: "atendimentos", Action: realtime.ActionInsert, Record: record}
}

func messageInsertEvent(msgID, ticketID, text, sender string) realtime.Event {
	record, _ := json.Marshal(map[string]any{
		"id":             msgID,
		"atendimento_id": ticketID,
		"texto":          text,
		"remetente":      sender,
	})
	return realtime.Event{Table: "mensagens", Action: realtime.ActionInsert, Record: record}
}

func TestTicketFeedInsert(t *testing.T) {
	svc := NewTicketService(new(MockTicketRepository))
	svc.applyTicket(ticketInsertEvent("t1", "Carlos"))

	snap := svc.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "Carlos", snap[0].ClientName)
	assert.Equal(t, "aberto", snap[0].Status)
}

func TestTicketFeedQuarantinesInvalidRow(t *testing.T) {
	svc := NewTicketService(new(MockTicketRepository))
	// Sem cliente_nome: linha inválida, cache intacto.
	record, _ := json.Marshal(map[string]any{"id": "t1"})
	svc.applyTicket(realtime.Event{Table: "atendimentos", Action: realtime.ActionInsert, Record: record})

	assert.Empty(t, svc.Snapshot())
}

func TestTicketFeedUpdatePreservesConversation(t *testing.T) {
	svc := NewTicketService(new(MockTicketRepository))
	svc.applyTicket(ticketInsertEvent("t1", "Carlos"))
	svc.applyMessage(messageInsertEvent("m1", "t1", "olá", entity.SenderClient))

	// O payload de update da tabela atendimentos não traz a conversa.
	record, _ := json.Marshal(map[string]any{"id": "t1", "cliente_nome": "Carlos", "status": "em_andamento"})
	svc.applyTicket(realtime.Event{Table: "atendimentos", Action: realtime.ActionUpdate, Record: record})

	got, ok := svc.cache.Get("t1")
	require.True(t, ok)
	assert.Equal(t, "em_andamento", got.Status)
	require.Len(t, got.Messages, 1, "conversa sobrevive ao update do pai")
}

func TestMessageAppendIsIdempotent(t *testing.T) {
	svc := NewTicketService(new(MockTicketRepository))
	svc.applyTicket(ticketInsertEvent("t1", "Carlos"))

	ev := messageInsertEvent("m1", "t1", "olá", entity.SenderClient)
	svc.applyMessage(ev)
	svc.applyMessage(ev) // feed entregou duplicado

	got, _ := svc.cache.Get("t1")
	assert.Len(t, got.Messages, 1)
}

func TestMessageForUnknownTicketIsDropped(t *testing.T) {
	svc := NewTicketService(new(MockTicketRepository))
	svc.applyMessage(messageInsertEvent("m1", "fantasma", "olá", entity.SenderClient))
	assert.Empty(t, svc.Snapshot())
}

func TestTicketAddDefaults(t *testing.T) {
	repo := new(MockTicketRepository)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(tk entity.Ticket) bool {
		return tk.Status == "aberto" && tk.Priority == "media"
	})).Return(entity.Ticket{ID: "t1", ClientName: "Carlos", Status: "aberto"}, nil)

	svc := NewTicketService(repo)
	_, err := svc.Add(context.Background(), TicketInput{ClientName: "Carlos"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAddMessageValidatesSender(t *testing.T) {
	svc := NewTicketService(new(MockTicketRepository))

	_, err := svc.AddMessage(context.Background(), "t1", "olá", "robô")
	require.Error(t, err)
	assert.True(t, IsDomainError(err))

	_, err = svc.AddMessage(context.Background(), "t1", "  ", entity.SenderAgent)
	require.Error(t, err)
	assert.True(t, IsDomainError(err))
}

func TestTicketTransitionValidatesStage(t *testing.T) {
	repo := new(MockTicketRepository)
	svc := NewTicketService(repo)

	err := svc.Transition(context.Background(), "t1", "arquivado")
	require.Error(t, err)
	assert.True(t, IsDomainError(err))
}
