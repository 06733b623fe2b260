package entity

import "time"

// Collaborator é um membro da equipe (corretor, gestor, etc).
type Collaborator struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role,omitempty"`
	Status    string    `json:"status"` // ativo | inativo
	CreatedAt time.Time `json:"created_at"`
}

func (c Collaborator) EntityID() string { return c.ID }

type CollaboratorUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Role   *string `json:"role,omitempty"`
	Status *string `json:"status,omitempty"`
}
