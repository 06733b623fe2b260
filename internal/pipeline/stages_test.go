package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadStagesOrder(t *testing.T) {
	all := LeadStages.All()
	assert.Len(t, all, 6)
	assert.Equal(t, "novo", all[0].ID)
	assert.Equal(t, "perdido", all[5].ID)
}

func TestContains(t *testing.T) {
	assert.True(t, LeadStages.Contains("negociacao"))
	assert.False(t, LeadStages.Contains("inexistente"))
	assert.False(t, LeadStages.Contains(""))
}

func TestLabelForFallsBackToRawID(t *testing.T) {
	assert.Equal(t, "Fechado Ganho", LeadStages.LabelFor("ganho"))
	assert.Equal(t, "limbo", LeadStages.LabelFor("limbo"))
}

func TestFirst(t *testing.T) {
	assert.Equal(t, "novo", LeadStages.First().ID)
	assert.Equal(t, "agendado", AppointmentStages.First().ID)
	assert.Equal(t, "aberto", TicketStages.First().ID)
	assert.Equal(t, Stage{}, NewStageSet().First())
}

func TestAllReturnsACopy(t *testing.T) {
	all := LeadStages.All()
	all[0].ID = "mexido"
	assert.Equal(t, "novo", LeadStages.All()[0].ID)
}
