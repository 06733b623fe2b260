package entity

import "time"

type NotificationType string

const (
	NotificationSuccess     NotificationType = "success"
	NotificationInfo        NotificationType = "info"
	NotificationLead        NotificationType = "lead"
	NotificationAppointment NotificationType = "appointment"
	NotificationFinancial   NotificationType = "financial"
	NotificationWebhook     NotificationType = "webhook"
)

// Notification é o alerta exibido no sininho do painel.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Link      string           `json:"link,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
}
