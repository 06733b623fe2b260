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

// LeadService é o dono do funil: cache espelho da tabela leads,
// escritas passando pelo repositório e leituras derivadas do snapshot.
// Escritas NÃO mexem no cache — a volta do feed é quem aplica (há uma
// janela curta em que o painel ainda mostra o estado antigo).
type LeadService struct {
	repo   LeadRepository
	cache  *cache.Cache[entity.Lead]
	stages pipeline.StageSet
}

func NewLeadService(repo LeadRepository) *LeadService {
	return &LeadService{
		repo: repo,
		// Mais novo na frente, como o kanban mostra.
		cache:  cache.New[entity.Lead]("leads", nil),
		stages: pipeline.LeadStages,
	}
}

func (s *LeadService) Load(ctx context.Context) error {
	if err := s.cache.Load(ctx, s.repo.FetchAll); err != nil {
		return &TechnicalError{Code: "load_failed", Message: "Erro ao carregar dados do banco."}
	}
	return nil
}

// Run drena o feed da tabela leads até o contexto encerrar.
func (s *LeadService) Run(ctx context.Context, feed <-chan realtime.Event) {
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

func (s *LeadService) apply(ev realtime.Event) {
	middleware.RecordFeedEvent("leads", string(ev.Action))
	switch ev.Action {
	case realtime.ActionInsert, realtime.ActionUpdate:
		var row database.LeadRow
		if err := json.Unmarshal(ev.Record, &row); err != nil {
			log.Printf("⚠️ [leads] linha do feed ilegível: %v", err)
			return
		}
		lead, err := row.ToEntity()
		if err != nil {
			// Quarentena: linha inválida não entra no cache.
			log.Printf("⚠️ [leads] linha do feed rejeitada: %v", err)
			return
		}
		if ev.Action == realtime.ActionInsert {
			s.cache.ApplyInsert(lead)
		} else {
			s.cache.ApplyUpdate(lead)
		}
	case realtime.ActionDelete:
		if id := ev.OldID(); id != "" {
			s.cache.ApplyDelete(id)
		}
	}
}

func (s *LeadService) Snapshot() []entity.Lead { return s.cache.Snapshot() }
func (s *LeadService) Loading() bool           { return s.cache.Loading() }

func (s *LeadService) Stats() stats.LeadStats {
	return stats.ComputeLeadStats(s.cache.Snapshot())
}

func (s *LeadService) Stages() []pipeline.Stage { return s.stages.All() }

// ByStage agrupa o snapshot pelas colunas do funil.
func (s *LeadService) ByStage() map[string][]entity.Lead {
	return stats.LeadsByStage(s.cache.Snapshot(), s.stages)
}

// BySource filtra por canal; "todos" devolve tudo.
func (s *LeadService) BySource(source string) []entity.Lead {
	snapshot := s.cache.Snapshot()
	if source == "todos" {
		return snapshot
	}
	var out []entity.Lead
	for _, l := range snapshot {
		if l.Source == source {
			out = append(out, l)
		}
	}
	return out
}

func (s *LeadService) ByDateRange(from, to time.Time) []entity.Lead {
	var out []entity.Lead
	for _, l := range s.cache.Snapshot() {
		d, err := time.Parse("2006-01-02", l.Date)
		if err != nil {
			continue
		}
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func (s *LeadService) UniqueSources() []string {
	seen := map[string]bool{}
	var out []string
	for _, l := range s.cache.Snapshot() {
		if !seen[l.Source] {
			seen[l.Source] = true
			out = append(out, l.Source)
		}
	}
	return out
}

// Subscribe expõe o canal de mudanças do cache (para o bridge de
// notificações).
func (s *LeadService) Subscribe(buffer int) (<-chan cache.Change[entity.Lead], func()) {
	return s.cache.Subscribe(buffer)
}

type LeadInput struct {
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Value       float64  `json:"value"`
	PaidValue   float64  `json:"paid_value"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Source      string   `json:"source"`
	Status      string   `json:"status"`
	IsPaid      bool     `json:"is_paid"`
	Tags        []string `json:"tags"`
}

func (s *LeadService) Add(ctx context.Context, input LeadInput) (entity.Lead, error) {
	if strings.TrimSpace(input.Name) == "" {
		return entity.Lead{}, &DomainError{Code: "name_required", Message: "Nome do lead é obrigatório."}
	}
	if input.Value < 0 {
		return entity.Lead{}, &DomainError{Code: "negative_value", Message: "Valor estimado não pode ser negativo."}
	}
	if input.Status == "" {
		input.Status = s.stages.First().ID
	}
	if !s.stages.Contains(input.Status) {
		return entity.Lead{}, &DomainError{Code: "unknown_stage", Message: "Etapa desconhecida: " + input.Status}
	}
	if input.Source == "" {
		input.Source = "Outro"
	}
	if input.Date == "" {
		input.Date = time.Now().Format("2006-01-02")
	}

	lead, err := s.repo.Insert(ctx, entity.Lead{
		Name:        input.Name,
		Phone:       input.Phone,
		Email:       input.Email,
		Value:       input.Value,
		PaidValue:   input.PaidValue,
		Description: input.Description,
		Date:        input.Date,
		Source:      input.Source,
		Status:      input.Status,
		IsPaid:      input.IsPaid,
		Tags:        input.Tags,
	})
	if err != nil {
		return entity.Lead{}, &TechnicalError{Code: "insert_failed", Message: "Falha ao salvar lead."}
	}
	// O cache é atualizado pela volta do feed, não aqui.
	return lead, nil
}

func (s *LeadService) Update(ctx context.Context, id string, upd entity.LeadUpdate) (entity.Lead, error) {
	if upd.Status != nil && !s.stages.Contains(*upd.Status) {
		return entity.Lead{}, &DomainError{Code: "unknown_stage", Message: "Etapa desconhecida: " + *upd.Status}
	}
	lead, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return entity.Lead{}, &TechnicalError{Code: "update_failed", Message: "Erro ao salvar alterações."}
	}
	return lead, nil
}

func (s *LeadService) Remove(ctx context.Context, id string) error {
	// Sem cascata: tickets e agendamentos que apontam para o lead
	// ficam com a referência órfã, de propósito.
	if err := s.repo.Delete(ctx, id); err != nil {
		return &TechnicalError{Code: "delete_failed", Message: "Erro ao excluir lead."}
	}
	return nil
}

// Transition é a única transição de máquina de estados do sistema:
// valida que a etapa destino existe e emite o update remoto. Qualquer
// etapa pode ir para qualquer etapa — inclusive sair de "ganho".
func (s *LeadService) Transition(ctx context.Context, id, toStage string) error {
	if !s.stages.Contains(toStage) {
		return &DomainError{Code: "unknown_stage", Message: "Etapa desconhecida: " + toStage}
	}
	if err := s.repo.UpdateStatus(ctx, id, toStage); err != nil {
		return &TechnicalError{Code: "transition_failed", Message: "Erro ao atualizar status."}
	}
	middleware.RecordLeadTransition(toStage)
	return nil
}
