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
)

// CollaboratorService cuida da equipe. Como a agenda, escreve no cache
// na hora e deixa a volta do feed confirmar.
type CollaboratorService struct {
	repo   CollaboratorRepository
	cache  *cache.Cache[entity.Collaborator]
	stages pipeline.StageSet
}

func NewCollaboratorService(repo CollaboratorRepository) *CollaboratorService {
	return &CollaboratorService{
		repo: repo,
		cache: cache.New[entity.Collaborator]("colaboradores", func(a, b entity.Collaborator) bool {
			return a.Name < b.Name
		}),
		stages: pipeline.CollaboratorStages,
	}
}

func (s *CollaboratorService) Load(ctx context.Context) error {
	if err := s.cache.Load(ctx, s.repo.FetchAll); err != nil {
		return &TechnicalError{Code: "load_failed", Message: "Erro ao carregar colaboradores."}
	}
	return nil
}

func (s *CollaboratorService) Run(ctx context.Context, feed <-chan realtime.Event) {
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

func (s *CollaboratorService) apply(ev realtime.Event) {
	middleware.RecordFeedEvent("colaboradores", string(ev.Action))
	switch ev.Action {
	case realtime.ActionInsert, realtime.ActionUpdate:
		var row database.CollaboratorRow
		if err := json.Unmarshal(ev.Record, &row); err != nil {
			log.Printf("⚠️ [equipe] linha do feed ilegível: %v", err)
			return
		}
		c, err := row.ToEntity()
		if err != nil {
			log.Printf("⚠️ [equipe] linha do feed rejeitada: %v", err)
			return
		}
		if ev.Action == realtime.ActionInsert {
			s.cache.ApplyInsert(c)
		} else {
			s.cache.ApplyUpdate(c)
		}
	case realtime.ActionDelete:
		if id := ev.OldID(); id != "" {
			s.cache.ApplyDelete(id)
		}
	}
}

func (s *CollaboratorService) Snapshot() []entity.Collaborator { return s.cache.Snapshot() }
func (s *CollaboratorService) Loading() bool                   { return s.cache.Loading() }

func (s *CollaboratorService) Get(id string) (entity.Collaborator, bool) {
	return s.cache.Get(id)
}

// Active devolve só quem está com status ativo (seletor de corretor
// no formulário de agendamento).
func (s *CollaboratorService) Active() []entity.Collaborator {
	var out []entity.Collaborator
	for _, c := range s.cache.Snapshot() {
		if c.Status == "ativo" {
			out = append(out, c)
		}
	}
	return out
}

func (s *CollaboratorService) Subscribe(buffer int) (<-chan cache.Change[entity.Collaborator], func()) {
	return s.cache.Subscribe(buffer)
}

type CollaboratorInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func (s *CollaboratorService) Add(ctx context.Context, input CollaboratorInput) (entity.Collaborator, error) {
	if strings.TrimSpace(input.Name) == "" {
		return entity.Collaborator{}, &DomainError{Code: "name_required", Message: "Nome é obrigatório."}
	}
	c, err := s.repo.Insert(ctx, entity.Collaborator{
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		Role:   input.Role,
		Status: "ativo",
	})
	if err != nil {
		return entity.Collaborator{}, &TechnicalError{Code: "insert_failed", Message: "Erro ao salvar colaborador."}
	}
	s.cache.ApplyInsert(c)
	return c, nil
}

func (s *CollaboratorService) Update(ctx context.Context, id string, upd entity.CollaboratorUpdate) (entity.Collaborator, error) {
	if upd.Status != nil && !s.stages.Contains(*upd.Status) {
		return entity.Collaborator{}, &DomainError{Code: "unknown_stage", Message: "Status desconhecido: " + *upd.Status}
	}
	c, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return entity.Collaborator{}, &TechnicalError{Code: "update_failed", Message: "Erro ao salvar alterações."}
	}
	s.cache.ApplyUpdate(c)
	return c, nil
}

func (s *CollaboratorService) Remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return &TechnicalError{Code: "delete_failed", Message: "Erro ao excluir colaborador."}
	}
	s.cache.ApplyDelete(id)
	return nil
}

// ToggleStatus alterna ativo/inativo.
func (s *CollaboratorService) ToggleStatus(ctx context.Context, id string) (entity.Collaborator, error) {
	c, ok := s.cache.Get(id)
	if !ok {
		return entity.Collaborator{}, &DomainError{Code: "not_found", Message: "Colaborador não encontrado."}
	}
	next := "ativo"
	if c.Status == "ativo" {
		next = "inativo"
	}
	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return entity.Collaborator{}, &TechnicalError{Code: "update_failed", Message: "Erro ao atualizar status."}
	}
	c.Status = next
	s.cache.ApplyUpdate(c)
	return c, nil
}
