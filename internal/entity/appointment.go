package entity

import "time"

// Appointment é um agendamento da agenda da imobiliária.
// Não existe trava de conflito de horário por colaborador: dois
// agendamentos no mesmo slot são aceitos (decisão de produto).
type Appointment struct {
	ID              string    `json:"id"`
	ClientName      string    `json:"client_name"`
	ClientPhone     string    `json:"client_phone,omitempty"`
	CollaboratorID  string    `json:"collaborator_id,omitempty"`
	Date            time.Time `json:"date"` // só a parte de data importa
	Time            string    `json:"time"` // HH:MM
	DurationMinutes int       `json:"duration_minutes"`
	Service         string    `json:"service,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Status          string    `json:"status"`
}

func (a Appointment) EntityID() string { return a.ID }

type AppointmentUpdate struct {
	ClientName      *string    `json:"client_name,omitempty"`
	ClientPhone     *string    `json:"client_phone,omitempty"`
	CollaboratorID  *string    `json:"collaborator_id,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
	Time            *string    `json:"time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Service         *string    `json:"service,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	Status          *string    `json:"status,omitempty"`
}
