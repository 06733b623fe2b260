package usecase

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/xavierca1/imobi-backoffice/internal/cache"
	"github.com/xavierca1/imobi-backoffice/internal/entity"
	"github.com/xavierca1/imobi-backoffice/internal/infra/database"
	"github.com/xavierca1/imobi-backoffice/internal/infra/http/middleware"
	"github.com/xavierca1/imobi-backoffice/internal/infra/realtime"
	"github.com/xavierca1/imobi-backoffice/internal/pipeline"
	"github.com/xavierca1/imobi-backoffice/internal/stats"
)

// TicketService cuida dos atendimentos e das conversas. Escuta dois
// feeds: o da tabela atendimentos (patch normal) e o da tabela
// mensagens (insert vira append na conversa do ticket pai).
type TicketService struct {
	repo   TicketRepository
	cache  *cache.Cache[entity.Ticket]
	stages pipeline.StageSet
}

func NewTicketService(repo TicketRepository) *TicketService {
	return &TicketService{
		repo:   repo,
		cache:  cache.New[entity.Ticket]("atendimentos", nil),
		stages: pipeline.TicketStages,
	}
}

func (s *TicketService) Load(ctx context.Context) error {
	if err := s.cache.Load(ctx, s.repo.FetchAll); err != nil {
		return &TechnicalError{Code: "load_failed", Message: "Erro ao carregar atendimentos."}
	}
	return nil
}

// Run drena os feeds de atendimentos e de mensagens.
func (s *TicketService) Run(ctx context.Context, tickets, messages <-chan realtime.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-tickets:
			if !ok {
				return
			}
			s.applyTicket(ev)
		case ev, ok := <-messages:
			if !ok {
				return
			}
			s.applyMessage(ev)
		}
	}
}

func (s *TicketService) applyTicket(ev realtime.Event) {
	middleware.RecordFeedEvent("atendimentos", string(ev.Action))
	switch ev.Action {
	case realtime.ActionInsert, realtime.ActionUpdate:
		var row database.TicketRow
		if err := json.Unmarshal(ev.Record, &row); err != nil {
			log.Printf("⚠️ [tickets] linha do feed ilegível: %v", err)
			return
		}
		t, err := row.ToEntity()
		if err != nil {
			log.Printf("⚠️ [tickets] linha do feed rejeitada: %v", err)
			return
		}
		if ev.Action == realtime.ActionInsert {
			s.cache.ApplyInsert(t)
			return
		}
		// O payload do feed não carrega a conversa; preserva a que
		// já está no cache.
		if prev, ok := s.cache.Get(t.ID); ok {
			t.Messages = prev.Messages
		}
		s.cache.ApplyUpdate(t)
	case realtime.ActionDelete:
		if id := ev.OldID(); id != "" {
			s.cache.ApplyDelete(id)
		}
	}
}

// applyMessage anexa mensagens novas à conversa do ticket pai.
// Append-only: update/delete de mensagem não existem no produto.
func (s *TicketService) applyMessage(ev realtime.Event) {
	if ev.Action != realtime.ActionInsert {
		return
	}
	middleware.RecordFeedEvent("mensagens", string(ev.Action))

	var row database.MessageRow
	if err := json.Unmarshal(ev.Record, &row); err != nil {
		log.Printf("⚠️ [tickets] mensagem do feed ilegível: %v", err)
		return
	}
	m, err := row.ToEntity()
	if err != nil {
		log.Printf("⚠️ [tickets] mensagem do feed rejeitada: %v", err)
		return
	}

	ticket, ok := s.cache.Get(row.AtendimentoID)
	if !ok {
		log.Printf("⚠️ [tickets] mensagem para atendimento desconhecido: %s", row.AtendimentoID)
		return
	}
	for _, existing := range ticket.Messages {
		if existing.ID == m.ID {
			return // feed entregou duplicado
		}
	}
	ticket.Messages = append(ticket.Messages, m)
	s.cache.ApplyUpdate(ticket)
}

func (s *TicketService) Snapshot() []entity.Ticket { return s.cache.Snapshot() }
func (s *TicketService) Loading() bool             { return s.cache.Loading() }

func (s *TicketService) Stats() stats.TicketStats {
	return stats.ComputeTicketStats(s.cache.Snapshot())
}

func (s *TicketService) Stages() []pipeline.Stage { return s.stages.All() }

func (s *TicketService) ByClient(clientID string) []entity.Ticket {
	var out []entity.Ticket
	for _, t := range s.cache.Snapshot() {
		if t.ClientID == clientID {
			out = append(out, t)
		}
	}
	return out
}

func (s *TicketService) Subscribe(buffer int) (<-chan cache.Change[entity.Ticket], func()) {
	return s.cache.Subscribe(buffer)
}

type TicketInput struct {
	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone"`
	Subject     string `json:"subject"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Agent       string `json:"agent"`
	Channel     string `json:"channel"`
}

func (s *TicketService) Add(ctx context.Context, input TicketInput) (entity.Ticket, error) {
	if strings.TrimSpace(input.ClientName) == "" {
		return entity.Ticket{}, &DomainError{Code: "client_required", Message: "Nome do cliente é obrigatório."}
	}
	if input.Status == "" {
		input.Status = s.stages.First().ID
	}
	if !s.stages.Contains(input.Status) {
		return entity.Ticket{}, &DomainError{Code: "unknown_stage", Message: "Status desconhecido: " + input.Status}
	}
	if input.Priority == "" {
		input.Priority = "media"
	}

	t, err := s.repo.Insert(ctx, entity.Ticket{
		ClientID:    input.ClientID,
		ClientName:  input.ClientName,
		ClientEmail: input.ClientEmail,
		ClientPhone: input.ClientPhone,
		Subject:     input.Subject,
		Status:      input.Status,
		Priority:    input.Priority,
		Agent:       input.Agent,
		Channel:     input.Channel,
	})
	if err != nil {
		return entity.Ticket{}, &TechnicalError{Code: "insert_failed", Message: "Erro ao salvar atendimento."}
	}
	return t, nil
}

func (s *TicketService) Update(ctx context.Context, id string, upd entity.TicketUpdate) (entity.Ticket, error) {
	if upd.Status != nil && !s.stages.Contains(*upd.Status) {
		return entity.Ticket{}, &DomainError{Code: "unknown_stage", Message: "Status desconhecido: " + *upd.Status}
	}
	t, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return entity.Ticket{}, &TechnicalError{Code: "update_failed", Message: "Erro ao salvar alterações."}
	}
	return t, nil
}

func (s *TicketService) Remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return &TechnicalError{Code: "delete_failed", Message: "Erro ao excluir atendimento."}
	}
	return nil
}

func (s *TicketService) Transition(ctx context.Context, id, toStage string) error {
	if !s.stages.Contains(toStage) {
		return &DomainError{Code: "unknown_stage", Message: "Status desconhecido: " + toStage}
	}
	if err := s.repo.UpdateStatus(ctx, id, toStage); err != nil {
		return &TechnicalError{Code: "transition_failed", Message: "Erro ao atualizar status."}
	}
	return nil
}

func (s *TicketService) AddMessage(ctx context.Context, ticketID, text, sender string) (entity.Message, error) {
	if strings.TrimSpace(text) == "" {
		return entity.Message{}, &DomainError{Code: "empty_message", Message: "Mensagem vazia."}
	}
	if sender != entity.SenderClient && sender != entity.SenderAgent {
		return entity.Message{}, &DomainError{Code: "bad_sender", Message: "Remetente deve ser cliente ou atendente."}
	}
	m, err := s.repo.InsertMessage(ctx, ticketID, text, sender)
	if err != nil {
		return entity.Message{}, &TechnicalError{Code: "insert_failed", Message: "Erro ao enviar mensagem."}
	}
	return m, nil
}
