package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
)

// TicketRow espelha a tabela atendimentos.
type TicketRow struct {
	ID           string     `json:"id"`
	ClienteID    *string    `json:"cliente_id"`
	ClienteNome  string     `json:"cliente_nome"`
	ClienteEmail *string    `json:"cliente_email"`
	ClienteFone  *string    `json:"cliente_telefone"`
	Assunto      *string    `json:"assunto"`
	Status       *string    `json:"status"`
	Prioridade   *string    `json:"prioridade"`
	Colaborador  *string    `json:"colaborador"`
	Origem       *string    `json:"origem"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

func (r TicketRow) ToEntity() (entity.Ticket, error) {
	if r.ID == "" {
		return entity.Ticket{}, fmt.Errorf("atendimento sem id")
	}
	if strings.TrimSpace(r.ClienteNome) == "" {
		return entity.Ticket{}, fmt.Errorf("atendimento %s sem cliente", r.ID)
	}

	status := deref(r.Status)
	if status == "" {
		status = "aberto"
	}
	priority := deref(r.Prioridade)
	if priority == "" {
		priority = "media"
	}

	t := entity.Ticket{
		ID:          r.ID,
		ClientID:    deref(r.ClienteID),
		ClientName:  r.ClienteNome,
		ClientEmail: deref(r.ClienteEmail),
		ClientPhone: deref(r.ClienteFone),
		Subject:     deref(r.Assunto),
		Status:      status,
		Priority:    priority,
		Agent:       deref(r.Colaborador),
		Channel:     deref(r.Origem),
		Messages:    []entity.Message{},
	}
	if r.CreatedAt != nil {
		t.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		t.UpdatedAt = *r.UpdatedAt
	}
	return t, nil
}

// MessageRow espelha a tabela mensagens (filha de atendimentos).
type MessageRow struct {
	ID            string     `json:"id"`
	AtendimentoID string     `json:"atendimento_id"`
	Texto         string     `json:"texto"`
	Remetente     string     `json:"remetente"`
	CreatedAt     *time.Time `json:"created_at"`
}

func (r MessageRow) ToEntity() (entity.Message, error) {
	if r.ID == "" || r.AtendimentoID == "" {
		return entity.Message{}, fmt.Errorf("mensagem sem id ou sem atendimento")
	}
	m := entity.Message{
		ID:     r.ID,
		Text:   r.Texto,
		Sender: r.Remetente,
	}
	if m.Sender == "" {
		m.Sender = entity.SenderClient
	}
	if r.CreatedAt != nil {
		m.Timestamp = *r.CreatedAt
	}
	return m, nil
}

type TicketRepository struct {
	DB *sql.DB
}

func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{DB: db}
}

const ticketColumns = `id, cliente_id, cliente_nome, cliente_email, cliente_telefone, assunto, status, prioridade, colaborador, origem, created_at, updated_at`

// FetchAll carrega os atendimentos com as conversas já anexadas
// (duas queries; o volume é de painel).
func (r *TicketRepository) FetchAll(ctx context.Context) ([]entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM atendimentos ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar atendimentos: %w", err)
	}
	defer rows.Close()

	var tickets []entity.Ticket
	index := map[string]int{}
	for rows.Next() {
		row, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		t, err := row.ToEntity()
		if err != nil {
			continue
		}
		index[t.ID] = len(tickets)
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	msgs, err := r.fetchMessages(ctx)
	if err != nil {
		return nil, err
	}
	for ticketID, list := range msgs {
		if i, ok := index[ticketID]; ok {
			tickets[i].Messages = list
		}
	}
	return tickets, nil
}

func (r *TicketRepository) fetchMessages(ctx context.Context) (map[string][]entity.Message, error) {
	query := `SELECT id, atendimento_id, texto, remetente, created_at FROM mensagens ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar mensagens: %w", err)
	}
	defer rows.Close()

	out := map[string][]entity.Message{}
	for rows.Next() {
		var row MessageRow
		if err := rows.Scan(&row.ID, &row.AtendimentoID, &row.Texto, &row.Remetente, &row.CreatedAt); err != nil {
			return nil, err
		}
		m, err := row.ToEntity()
		if err != nil {
			continue
		}
		out[row.AtendimentoID] = append(out[row.AtendimentoID], m)
	}
	return out, rows.Err()
}

func (r *TicketRepository) Insert(ctx context.Context, t entity.Ticket) (entity.Ticket, error) {
	query := `
		INSERT INTO atendimentos (cliente_id, cliente_nome, cliente_email, cliente_telefone, assunto, status, prioridade, colaborador, origem)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + ticketColumns

	row := r.DB.QueryRowContext(ctx, query,
		nullString(t.ClientID),
		t.ClientName,
		nullString(t.ClientEmail),
		nullString(t.ClientPhone),
		t.Subject,
		t.Status,
		t.Priority,
		nullString(t.Agent),
		nullString(t.Channel),
	)

	stored, err := scanTicket(row)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("falha ao criar atendimento: %w", err)
	}
	return stored.ToEntity()
}

func (r *TicketRepository) Update(ctx context.Context, id string, upd entity.TicketUpdate) (entity.Ticket, error) {
	var b setBuilder
	if upd.Subject != nil {
		b.add("assunto", *upd.Subject)
	}
	if upd.Status != nil {
		b.add("status", *upd.Status)
	}
	if upd.Priority != nil {
		b.add("prioridade", *upd.Priority)
	}
	if upd.Agent != nil {
		b.add("colaborador", nullString(*upd.Agent))
	}
	if upd.Channel != nil {
		b.add("origem", nullString(*upd.Channel))
	}
	if len(b.cols) == 0 {
		return entity.Ticket{}, fmt.Errorf("nenhum campo para atualizar")
	}
	b.add("updated_at", time.Now())

	query, args := b.update("atendimentos", ticketColumns, id)
	stored, err := scanTicket(r.DB.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return entity.Ticket{}, err
	}
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("falha ao atualizar atendimento %s: %w", id, err)
	}
	return stored.ToEntity()
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE atendimentos SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("falha ao mudar status do atendimento %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM atendimentos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("falha ao excluir atendimento %s: %w", id, err)
	}
	return nil
}

// InsertMessage anexa uma mensagem à conversa; o append no cache chega
// pelo feed da tabela mensagens.
func (r *TicketRepository) InsertMessage(ctx context.Context, ticketID, text, sender string) (entity.Message, error) {
	query := `
		INSERT INTO mensagens (atendimento_id, texto, remetente)
		VALUES ($1, $2, $3)
		RETURNING id, atendimento_id, texto, remetente, created_at`

	var row MessageRow
	err := r.DB.QueryRowContext(ctx, query, ticketID, text, sender).
		Scan(&row.ID, &row.AtendimentoID, &row.Texto, &row.Remetente, &row.CreatedAt)
	if err != nil {
		return entity.Message{}, fmt.Errorf("falha ao enviar mensagem: %w", err)
	}
	return row.ToEntity()
}

func scanTicket(s rowScanner) (TicketRow, error) {
	var r TicketRow
	err := s.Scan(
		&r.ID,
		&r.ClienteID,
		&r.ClienteNome,
		&r.ClienteEmail,
		&r.ClienteFone,
		&r.Assunto,
		&r.Status,
		&r.Prioridade,
		&r.Colaborador,
		&r.Origem,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}
