package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
)

type CollaboratorRow struct {
	ID        string     `json:"id"`
	Nome      string     `json:"nome"`
	Email     *string    `json:"email"`
	Telefone  *string    `json:"telefone"`
	Cargo     *string    `json:"cargo"`
	Status    *string    `json:"status"`
	CreatedAt *time.Time `json:"created_at"`
}

func (r CollaboratorRow) ToEntity() (entity.Collaborator, error) {
	if r.ID == "" {
		return entity.Collaborator{}, fmt.Errorf("colaborador sem id")
	}
	if strings.TrimSpace(r.Nome) == "" {
		return entity.Collaborator{}, fmt.Errorf("colaborador %s sem nome", r.ID)
	}

	status := deref(r.Status)
	if status == "" {
		status = "ativo"
	}

	c := entity.Collaborator{
		ID:     r.ID,
		Name:   r.Nome,
		Email:  deref(r.Email),
		Phone:  deref(r.Telefone),
		Role:   deref(r.Cargo),
		Status: status,
	}
	if r.CreatedAt != nil {
		c.CreatedAt = *r.CreatedAt
	}
	return c, nil
}

type CollaboratorRepository struct {
	DB *sql.DB
}

func NewCollaboratorRepository(db *sql.DB) *CollaboratorRepository {
	return &CollaboratorRepository{DB: db}
}

const collaboratorColumns = `id, nome, email, telefone, cargo, status, created_at`

func (r *CollaboratorRepository) FetchAll(ctx context.Context) ([]entity.Collaborator, error) {
	query := `SELECT ` + collaboratorColumns + ` FROM colaboradores ORDER BY nome ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar colaboradores: %w", err)
	}
	defer rows.Close()

	var out []entity.Collaborator
	for rows.Next() {
		row, err := scanCollaborator(rows)
		if err != nil {
			return nil, err
		}
		c, err := row.ToEntity()
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CollaboratorRepository) Insert(ctx context.Context, c entity.Collaborator) (entity.Collaborator, error) {
	query := `
		INSERT INTO colaboradores (nome, email, telefone, cargo, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + collaboratorColumns

	row := r.DB.QueryRowContext(ctx, query,
		c.Name,
		nullString(c.Email),
		nullString(c.Phone),
		nullString(c.Role),
		c.Status,
	)

	stored, err := scanCollaborator(row)
	if err != nil {
		return entity.Collaborator{}, fmt.Errorf("falha ao criar colaborador: %w", err)
	}
	return stored.ToEntity()
}

func (r *CollaboratorRepository) Update(ctx context.Context, id string, upd entity.CollaboratorUpdate) (entity.Collaborator, error) {
	var b setBuilder
	if upd.Name != nil {
		b.add("nome", *upd.Name)
	}
	if upd.Email != nil {
		b.add("email", nullString(*upd.Email))
	}
	if upd.Phone != nil {
		b.add("telefone", nullString(*upd.Phone))
	}
	if upd.Role != nil {
		b.add("cargo", nullString(*upd.Role))
	}
	if upd.Status != nil {
		b.add("status", *upd.Status)
	}
	if len(b.cols) == 0 {
		return entity.Collaborator{}, fmt.Errorf("nenhum campo para atualizar")
	}

	query, args := b.update("colaboradores", collaboratorColumns, id)
	stored, err := scanCollaborator(r.DB.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return entity.Collaborator{}, err
	}
	if err != nil {
		return entity.Collaborator{}, fmt.Errorf("falha ao atualizar colaborador %s: %w", id, err)
	}
	return stored.ToEntity()
}

func (r *CollaboratorRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE colaboradores SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("falha ao mudar status do colaborador %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *CollaboratorRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM colaboradores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("falha ao excluir colaborador %s: %w", id, err)
	}
	return nil
}

func scanCollaborator(s rowScanner) (CollaboratorRow, error) {
	var r CollaboratorRow
	err := s.Scan(
		&r.ID,
		&r.Nome,
		&r.Email,
		&r.Telefone,
		&r.Cargo,
		&r.Status,
		&r.CreatedAt,
	)
	return r, err
}
