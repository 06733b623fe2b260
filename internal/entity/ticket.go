package entity

import "time"

// Message é uma mensagem da conversa de um atendimento.
// Append-only: nunca é editada nem apagada individualmente.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"` // "cliente" | "atendente"
	Timestamp time.Time `json:"timestamp"`
}

const (
	SenderClient = "cliente"
	SenderAgent  = "atendente"
)

// Ticket é um atendimento de suporte. ClientID pode apontar para um
// cliente apagado — referências órfãs são mantidas de propósito.
type Ticket struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id,omitempty"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email,omitempty"`
	ClientPhone string    `json:"client_phone,omitempty"`
	Subject     string    `json:"subject"`
	Status      string    `json:"status"`   // aberto | em_andamento | resolvido
	Priority    string    `json:"priority"` // alta | media | baixa
	Agent       string    `json:"agent,omitempty"`
	Channel     string    `json:"channel,omitempty"` // whatsapp | email | telefone | presencial | crm
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Messages    []Message `json:"messages"`
}

func (t Ticket) EntityID() string { return t.ID }

type TicketUpdate struct {
	Subject  *string `json:"subject,omitempty"`
	Status   *string `json:"status,omitempty"`
	Priority *string `json:"priority,omitempty"`
	Agent    *string `json:"agent,omitempty"`
	Channel  *string `json:"channel,omitempty"`
}
