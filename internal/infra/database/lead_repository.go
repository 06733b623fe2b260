package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
)

// LeadRow é a forma crua da linha, tanto no SELECT quanto no payload
// JSON do feed de mudanças. ToEntity é o único ponto onde defaults e
// validação acontecem — linha inválida não entra no cache.
type LeadRow struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Phone       *string    `json:"phone"`
	Email       *string    `json:"email"`
	Value       *float64   `json:"value"`
	PaidValue   *float64   `json:"paid_value"`
	Description *string    `json:"description"`
	Date        *string    `json:"date"`
	Source      *string    `json:"source"`
	Status      *string    `json:"status"`
	IsPaid      *bool      `json:"is_paid"`
	Tags        []string   `json:"tags"`
	CreatedAt   *time.Time `json:"created_at"`
}

func (r LeadRow) ToEntity() (entity.Lead, error) {
	if r.ID == "" {
		return entity.Lead{}, fmt.Errorf("lead sem id")
	}
	if strings.TrimSpace(r.Name) == "" {
		return entity.Lead{}, fmt.Errorf("lead %s sem nome", r.ID)
	}

	source := deref(r.Source)
	// Legado: leads capturados pelo formulário antigo chegavam com
	// source "formulário"; hoje esse canal é o WhatsApp.
	if source == "" || source == "formulário" {
		source = "WhatsApp"
	}
	status := deref(r.Status)
	if status == "" {
		status = "novo"
	}

	l := entity.Lead{
		ID:          r.ID,
		Name:        r.Name,
		Phone:       deref(r.Phone),
		Email:       deref(r.Email),
		Value:       derefF(r.Value),
		PaidValue:   derefF(r.PaidValue),
		Description: deref(r.Description),
		Date:        deref(r.Date),
		Source:      source,
		Status:      status,
		IsPaid:      derefB(r.IsPaid),
		Tags:        r.Tags,
	}
	if r.CreatedAt != nil {
		l.CreatedAt = *r.CreatedAt
	}
	return l, nil
}

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, name, phone, email, value, paid_value, description, date::text, source, status, is_paid, tags, created_at`

func (r *LeadRepository) FetchAll(ctx context.Context) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar leads: %w", err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		row, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		lead, err := row.ToEntity()
		if err != nil {
			// Linha podre não derruba a carga: pula.
			continue
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) Insert(ctx context.Context, lead entity.Lead) (entity.Lead, error) {
	query := `
		INSERT INTO leads (name, phone, email, value, paid_value, description, date, source, status, is_paid, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + leadColumns

	row := r.DB.QueryRowContext(ctx, query,
		lead.Name,
		nullString(lead.Phone),
		nullString(lead.Email),
		lead.Value,
		lead.PaidValue,
		nullString(lead.Description),
		lead.Date,
		lead.Source,
		lead.Status,
		lead.IsPaid,
		pq.Array(lead.Tags),
	)

	stored, err := scanLead(row)
	if err != nil {
		return entity.Lead{}, fmt.Errorf("falha ao inserir lead: %w", err)
	}
	return stored.ToEntity()
}

func (r *LeadRepository) Update(ctx context.Context, id string, upd entity.LeadUpdate) (entity.Lead, error) {
	var b setBuilder
	if upd.Name != nil {
		b.add("name", *upd.Name)
	}
	if upd.Phone != nil {
		b.add("phone", *upd.Phone)
	}
	if upd.Email != nil {
		b.add("email", *upd.Email)
	}
	if upd.Value != nil {
		b.add("value", *upd.Value)
	}
	if upd.PaidValue != nil {
		b.add("paid_value", *upd.PaidValue)
	}
	if upd.Description != nil {
		b.add("description", *upd.Description)
	}
	if upd.Date != nil {
		b.add("date", *upd.Date)
	}
	if upd.Source != nil {
		b.add("source", *upd.Source)
	}
	if upd.Status != nil {
		b.add("status", *upd.Status)
	}
	if upd.IsPaid != nil {
		b.add("is_paid", *upd.IsPaid)
	}
	if upd.Tags != nil {
		b.add("tags", pq.Array(*upd.Tags))
	}
	if len(b.cols) == 0 {
		return entity.Lead{}, fmt.Errorf("nenhum campo para atualizar")
	}

	query, args := b.update("leads", leadColumns, id)
	stored, err := scanLead(r.DB.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return entity.Lead{}, err
	}
	if err != nil {
		return entity.Lead{}, fmt.Errorf("falha ao atualizar lead %s: %w", id, err)
	}
	return stored.ToEntity()
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE leads SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("falha ao mover lead %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("falha ao excluir lead %s: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(s rowScanner) (LeadRow, error) {
	var r LeadRow
	err := s.Scan(
		&r.ID,
		&r.Name,
		&r.Phone,
		&r.Email,
		&r.Value,
		&r.PaidValue,
		&r.Description,
		&r.Date,
		&r.Source,
		&r.Status,
		&r.IsPaid,
		pq.Array(&r.Tags),
		&r.CreatedAt,
	)
	return r, err
}
