package usecase

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/xavierca1/imobi-backoffice/internal/cache"
	"github.com/xavierca1/imobi-backoffice/internal/entity"
	"github.com/xavierca1/imobi-backoffice/internal/infra/database"
	"github.com/xavierca1/imobi-backoffice/internal/infra/http/middleware"
	"github.com/xavierca1/imobi-backoffice/internal/infra/realtime"
	"github.com/xavierca1/imobi-backoffice/internal/pipeline"
	"github.com/xavierca1/imobi-backoffice/internal/stats"
)

// AgendaService cuida dos agendamentos. Diferente dos leads, aqui a
// escrita aplica o resultado no cache na hora (a volta do feed é
// idempotente e só confirma) — era assim no painel antigo e evita o
// vão visual no calendário.
type AgendaService struct {
	repo   AppointmentRepository
	cache  *cache.Cache[entity.Appointment]
	stages pipeline.StageSet
	loc    *time.Location
}

func NewAgendaService(repo AppointmentRepository, loc *time.Location) *AgendaService {
	if loc == nil {
		loc = time.UTC
	}
	return &AgendaService{
		repo: repo,
		cache: cache.New[entity.Appointment]("agendamentos", func(a, b entity.Appointment) bool {
			if !a.Date.Equal(b.Date) {
				return a.Date.Before(b.Date)
			}
			return a.Time < b.Time
		}),
		stages: pipeline.AppointmentStages,
		loc:    loc,
	}
}

func (s *AgendaService) Load(ctx context.Context) error {
	if err := s.cache.Load(ctx, s.repo.FetchAll); err != nil {
		return &TechnicalError{Code: "load_failed", Message: "Erro ao carregar agendamentos."}
	}
	return nil
}

func (s *AgendaService) Run(ctx context.Context, feed <-chan realtime.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-feed:
			if !ok {
				return
			}
			s.apply(ev)
		}
	}
}

func (s *AgendaService) apply(ev realtime.Event) {
	middleware.RecordFeedEvent("agendamentos", string(ev.Action))
	switch ev.Action {
	case realtime.ActionInsert, realtime.ActionUpdate:
		var row database.AppointmentRow
		if err := json.Unmarshal(ev.Record, &row); err != nil {
			log.Printf("⚠️ [agenda] linha do feed ilegível: %v", err)
			return
		}
		a, err := row.ToEntity()
		if err != nil {
			log.Printf("⚠️ [agenda] linha do feed rejeitada: %v", err)
			return
		}
		if ev.Action == realtime.ActionInsert {
			s.cache.ApplyInsert(a)
		} else {
			s.cache.ApplyUpdate(a)
		}
	case realtime.ActionDelete:
		if id := ev.OldID(); id != "" {
			s.cache.ApplyDelete(id)
		}
	}
}

func (s *AgendaService) Snapshot() []entity.Appointment { return s.cache.Snapshot() }
func (s *AgendaService) Loading() bool                  { return s.cache.Loading() }

func (s *AgendaService) Stats() stats.AppointmentStats {
	return stats.ComputeAppointmentStats(s.cache.Snapshot(), time.Now().In(s.loc))
}

func (s *AgendaService) Stages() []pipeline.Stage { return s.stages.All() }

func (s *AgendaService) ForDay(day time.Time) []entity.Appointment {
	return stats.ForDay(s.cache.Snapshot(), day)
}

// Upcoming são os próximos 5 compromissos ainda em aberto.
func (s *AgendaService) Upcoming() []entity.Appointment {
	return stats.Upcoming(s.cache.Snapshot(), time.Now().In(s.loc), 5)
}

func (s *AgendaService) Subscribe(buffer int) (<-chan cache.Change[entity.Appointment], func()) {
	return s.cache.Subscribe(buffer)
}

type AppointmentInput struct {
	ClientName      string `json:"client_name"`
	ClientPhone     string `json:"client_phone"`
	CollaboratorID  string `json:"collaborator_id"`
	Date            string `json:"date"` // YYYY-MM-DD
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
	Service         string `json:"service"`
	Notes           string `json:"notes"`
	Status          string `json:"status"`
}

func (s *AgendaService) Add(ctx context.Context, input AppointmentInput) (entity.Appointment, error) {
	if strings.TrimSpace(input.ClientName) == "" {
		return entity.Appointment{}, &DomainError{Code: "client_required", Message: "Nome do cliente é obrigatório."}
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return entity.Appointment{}, &DomainError{Code: "bad_date", Message: "Data inválida (use YYYY-MM-DD)."}
	}
	if input.Status == "" {
		input.Status = s.stages.First().ID
	}
	if !s.stages.Contains(input.Status) {
		return entity.Appointment{}, &DomainError{Code: "unknown_stage", Message: "Status desconhecido: " + input.Status}
	}
	if input.DurationMinutes <= 0 {
		input.DurationMinutes = 60
	}

	a, err := s.repo.Insert(ctx, entity.Appointment{
		ClientName:      input.ClientName,
		ClientPhone:     input.ClientPhone,
		CollaboratorID:  input.CollaboratorID,
		Date:            date,
		Time:            input.Time,
		DurationMinutes: input.DurationMinutes,
		Service:         input.Service,
		Notes:           input.Notes,
		Status:          input.Status,
	})
	if err != nil {
		return entity.Appointment{}, &TechnicalError{Code: "insert_failed", Message: "Erro ao salvar agendamento."}
	}
	s.cache.ApplyInsert(a) // otimista; o feed confirma
	return a, nil
}

func (s *AgendaService) Update(ctx context.Context, id string, upd entity.AppointmentUpdate) (entity.Appointment, error) {
	if upd.Status != nil && !s.stages.Contains(*upd.Status) {
		return entity.Appointment{}, &DomainError{Code: "unknown_stage", Message: "Status desconhecido: " + *upd.Status}
	}
	a, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return entity.Appointment{}, &TechnicalError{Code: "update_failed", Message: "Erro ao salvar alterações."}
	}
	s.cache.ApplyUpdate(a)
	return a, nil
}

func (s *AgendaService) Remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return &TechnicalError{Code: "delete_failed", Message: "Erro ao excluir agendamento."}
	}
	s.cache.ApplyDelete(id)
	return nil
}

func (s *AgendaService) Transition(ctx context.Context, id, toStage string) error {
	if !s.stages.Contains(toStage) {
		return &DomainError{Code: "unknown_stage", Message: "Status desconhecido: " + toStage}
	}
	if err := s.repo.UpdateStatus(ctx, id, toStage); err != nil {
		return &TechnicalError{Code: "transition_failed", Message: "Erro ao atualizar status."}
	}
	return nil
}
