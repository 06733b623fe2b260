package entity

import "time"

// Lead é o card do funil de vendas. O campo Status guarda o id da coluna
// do kanban (ver pipeline.LeadStages); qualquer valor fora do conjunto
// conhecido continua contando nos totais, só não aparece em coluna nenhuma.
type Lead struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Value       float64   `json:"value"`
	PaidValue   float64   `json:"paid_value,omitempty"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Source      string    `json:"source"`
	Status      string    `json:"status"`
	IsPaid      bool      `json:"is_paid"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (l Lead) EntityID() string { return l.ID }

// Canais de origem aceitos no cadastro manual.
var LeadSources = []string{
	"Instagram",
	"WhatsApp",
	"Facebook",
	"Google Ads",
	"Indicação",
	"Site",
	"LinkedIn",
	"Outro",
}

// LeadUpdate carrega alterações parciais; campo nil = não mexe.
type LeadUpdate struct {
	Name        *string   `json:"name,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Value       *float64  `json:"value,omitempty"`
	PaidValue   *float64  `json:"paid_value,omitempty"`
	Description *string   `json:"description,omitempty"`
	Date        *string   `json:"date,omitempty"`
	Source      *string   `json:"source,omitempty"`
	Status      *string   `json:"status,omitempty"`
	IsPaid      *bool     `json:"is_paid,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}
