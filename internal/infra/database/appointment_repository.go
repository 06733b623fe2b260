package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
)

// AppointmentRow espelha a tabela agendamentos (colunas em pt-BR,
// como vieram do schema original).
type AppointmentRow struct {
	ID              string  `json:"id"`
	ClienteNome     string  `json:"cliente_nome"`
	ClienteTelefone *string `json:"cliente_telefone"`
	ColaboradorID   *string `json:"colaborador_id"`
	Data            *string `json:"data"`
	Horario         *string `json:"horario"`
	Duracao         *string `json:"duracao"`
	Servico         *string `json:"servico"`
	Observacoes     *string `json:"observacoes"`
	Status          *string `json:"status"`
}

func (r AppointmentRow) ToEntity() (entity.Appointment, error) {
	if r.ID == "" {
		return entity.Appointment{}, fmt.Errorf("agendamento sem id")
	}
	if strings.TrimSpace(r.ClienteNome) == "" {
		return entity.Appointment{}, fmt.Errorf("agendamento %s sem cliente", r.ID)
	}

	date, err := time.Parse("2006-01-02", deref(r.Data))
	if err != nil {
		return entity.Appointment{}, fmt.Errorf("agendamento %s com data inválida %q", r.ID, deref(r.Data))
	}

	// duracao é texto no schema legado; default 60 minutos.
	duration := 60
	if d := deref(r.Duracao); d != "" {
		if n, err := strconv.Atoi(d); err == nil && n > 0 {
			duration = n
		}
	}

	status := deref(r.Status)
	if status == "" {
		status = "agendado"
	}

	return entity.Appointment{
		ID:              r.ID,
		ClientName:      r.ClienteNome,
		ClientPhone:     deref(r.ClienteTelefone),
		CollaboratorID:  deref(r.ColaboradorID),
		Date:            date,
		Time:            deref(r.Horario),
		DurationMinutes: duration,
		Service:         deref(r.Servico),
		Notes:           deref(r.Observacoes),
		Status:          status,
	}, nil
}

type AppointmentRepository struct {
	DB *sql.DB
}

func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: db}
}

const appointmentColumns = `id, cliente_nome, cliente_telefone, colaborador_id, data::text, horario, duracao, servico, observacoes, status`

func (r *AppointmentRepository) FetchAll(ctx context.Context) ([]entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM agendamentos ORDER BY data ASC, horario ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar agendamentos: %w", err)
	}
	defer rows.Close()

	var appts []entity.Appointment
	for rows.Next() {
		row, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		a, err := row.ToEntity()
		if err != nil {
			continue
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}

func (r *AppointmentRepository) Insert(ctx context.Context, a entity.Appointment) (entity.Appointment, error) {
	query := `
		INSERT INTO agendamentos (cliente_nome, cliente_telefone, colaborador_id, data, horario, duracao, servico, observacoes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + appointmentColumns

	row := r.DB.QueryRowContext(ctx, query,
		a.ClientName,
		nullString(a.ClientPhone),
		nullString(a.CollaboratorID),
		a.Date.Format("2006-01-02"),
		a.Time,
		strconv.Itoa(a.DurationMinutes),
		nullString(a.Service),
		nullString(a.Notes),
		a.Status,
	)

	stored, err := scanAppointment(row)
	if err != nil {
		return entity.Appointment{}, fmt.Errorf("falha ao criar agendamento: %w", err)
	}
	return stored.ToEntity()
}

func (r *AppointmentRepository) Update(ctx context.Context, id string, upd entity.AppointmentUpdate) (entity.Appointment, error) {
	var b setBuilder
	if upd.ClientName != nil {
		b.add("cliente_nome", *upd.ClientName)
	}
	if upd.ClientPhone != nil {
		b.add("cliente_telefone", *upd.ClientPhone)
	}
	if upd.CollaboratorID != nil {
		b.add("colaborador_id", nullString(*upd.CollaboratorID))
	}
	if upd.Date != nil {
		b.add("data", upd.Date.Format("2006-01-02"))
	}
	if upd.Time != nil {
		b.add("horario", *upd.Time)
	}
	if upd.DurationMinutes != nil {
		b.add("duracao", strconv.Itoa(*upd.DurationMinutes))
	}
	if upd.Service != nil {
		b.add("servico", *upd.Service)
	}
	if upd.Notes != nil {
		b.add("observacoes", *upd.Notes)
	}
	if upd.Status != nil {
		b.add("status", *upd.Status)
	}
	if len(b.cols) == 0 {
		return entity.Appointment{}, fmt.Errorf("nenhum campo para atualizar")
	}

	query, args := b.update("agendamentos", appointmentColumns, id)
	stored, err := scanAppointment(r.DB.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return entity.Appointment{}, err
	}
	if err != nil {
		return entity.Appointment{}, fmt.Errorf("falha ao atualizar agendamento %s: %w", id, err)
	}
	return stored.ToEntity()
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE agendamentos SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("falha ao mudar status do agendamento %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM agendamentos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("falha ao excluir agendamento %s: %w", id, err)
	}
	return nil
}

func scanAppointment(s rowScanner) (AppointmentRow, error) {
	var r AppointmentRow
	err := s.Scan(
		&r.ID,
		&r.ClienteNome,
		&r.ClienteTelefone,
		&r.ColaboradorID,
		&r.Data,
		&r.Horario,
		&r.Duracao,
		&r.Servico,
		&r.Observacoes,
		&r.Status,
	)
	return r, err
}
