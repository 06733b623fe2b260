package entity

import "time"

// Webhook é um destino de automação cadastrado no console: quando o
// evento configurado acontece, o payload é entregue via POST na URL.
// Event = "*" assina todos os eventos.
type Webhook struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	Event         string     `json:"event"`
	Description   string     `json:"description,omitempty"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"created_at"`
	LastRunAt     *time.Time `json:"last_run_at,omitempty"`
	TotalEvents   int        `json:"total_events"`
	SuccessEvents int        `json:"success_events"`
}

func (w Webhook) EntityID() string { return w.ID }

const (
	DeliverySuccess = "sucesso"
	DeliveryFailure = "falha"
)

// WebhookDelivery é o registro de uma tentativa de entrega.
type WebhookDelivery struct {
	ID             string    `json:"id"`
	WebhookID      string    `json:"webhook_id"`
	Event          string    `json:"event"`
	Status         string    `json:"status"` // sucesso | falha
	StatusCode     int       `json:"status_code,omitempty"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	Error          string    `json:"error,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

type WebhookUpdate struct {
	Name        *string `json:"name,omitempty"`
	URL         *string `json:"url,omitempty"`
	Event       *string `json:"event,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}
