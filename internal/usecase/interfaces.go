package usecase

import (
	"context"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
)

// Interfaces declaradas do lado consumidor; internal/infra/database
// implementa contra o Postgres do Supabase.

type LeadRepository interface {
	FetchAll(ctx context.Context) ([]entity.Lead, error)
	Insert(ctx context.Context, lead entity.Lead) (entity.Lead, error)
	Update(ctx context.Context, id string, upd entity.LeadUpdate) (entity.Lead, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type AppointmentRepository interface {
	FetchAll(ctx context.Context) ([]entity.Appointment, error)
	Insert(ctx context.Context, a entity.Appointment) (entity.Appointment, error)
	Update(ctx context.Context, id string, upd entity.AppointmentUpdate) (entity.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type TicketRepository interface {
	FetchAll(ctx context.Context) ([]entity.Ticket, error)
	Insert(ctx context.Context, t entity.Ticket) (entity.Ticket, error)
	Update(ctx context.Context, id string, upd entity.TicketUpdate) (entity.Ticket, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	InsertMessage(ctx context.Context, ticketID, text, sender string) (entity.Message, error)
}

type CollaboratorRepository interface {
	FetchAll(ctx context.Context) ([]entity.Collaborator, error)
	Insert(ctx context.Context, c entity.Collaborator) (entity.Collaborator, error)
	Update(ctx context.Context, id string, upd entity.CollaboratorUpdate) (entity.Collaborator, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
