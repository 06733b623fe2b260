package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
)

func resolvedTicket(id string, openFor time.Duration) entity.Ticket {
	created := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	return entity.Ticket{
		ID:        id,
		Status:    "resolvido",
		CreatedAt: created,
		UpdatedAt: created.Add(openFor),
	}
}

func TestComputeTicketStatsCounts(t *testing.T) {
	tickets := []entity.Ticket{
		{ID: "1", Status: "aberto"},
		{ID: "2", Status: "em_andamento"},
		{ID: "3", Status: "em_andamento"},
		resolvedTicket("4", 30*time.Minute),
	}
	s := ComputeTicketStats(tickets)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Open)
	assert.Equal(t, 2, s.InProgress)
	assert.Equal(t, 1, s.Resolved)
}

func TestAvgTimeNoResolved(t *testing.T) {
	s := ComputeTicketStats([]entity.Ticket{{ID: "1", Status: "aberto"}})
	assert.Equal(t, "N/A", s.AvgTime)
}

func TestAvgTimeUnderAnHourShowsMinutes(t *testing.T) {
	tickets := []entity.Ticket{
		resolvedTicket("1", 30*time.Minute),
		resolvedTicket("2", 60*time.Minute),
	}
	s := ComputeTicketStats(tickets)
	assert.Equal(t, "45min", s.AvgTime)
}

func TestAvgTimeAnHourOrMoreRoundsToHours(t *testing.T) {
	tickets := []entity.Ticket{
		resolvedTicket("1", 60*time.Minute),
		resolvedTicket("2", 120*time.Minute),
	}
	s := ComputeTicketStats(tickets)
	// média de 90min arredonda para 2h
	assert.Equal(t, "2h", s.AvgTime)
}

func TestAvgTimeIgnoresUnresolved(t *testing.T) {
	tickets := []entity.Ticket{
		resolvedTicket("1", 40*time.Minute),
		{ID: "2", Status: "aberto", CreatedAt: time.Now().Add(-100 * time.Hour), UpdatedAt: time.Now()},
	}
	s := ComputeTicketStats(tickets)
	assert.Equal(t, "40min", s.AvgTime)
}
