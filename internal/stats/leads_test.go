package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
	"github.com/xavierca1/imobi-backoffice/internal/pipeline"
)

func TestComputeLeadStatsEmpty(t *testing.T) {
	s := ComputeLeadStats(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.ConversionRate, "sem leads a conversão é 0, não NaN")
}

func TestComputeLeadStatsConversionRounds(t *testing.T) {
	leads := []entity.Lead{
		{ID: "1", Status: "ganho"},
		{ID: "2", Status: "perdido"},
		{ID: "3", Status: "novo"},
	}
	s := ComputeLeadStats(leads)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.WonCount)
	assert.Equal(t, 1, s.LostCount)
	// 1/3 = 33,33% arredonda para 33
	assert.Equal(t, 33, s.ConversionRate)
}

func TestComputeLeadStatsSums(t *testing.T) {
	leads := []entity.Lead{
		{ID: "1", Status: "ganho", Value: 500000, IsPaid: true, PaidValue: 15000},
		{ID: "2", Status: "novo", Value: 300000},
		{ID: "3", Status: "alienigena", Value: 100},
	}
	s := ComputeLeadStats(leads)
	assert.Equal(t, 3, s.Total, "status fora do funil continua nos totais")
	assert.Equal(t, 800100.0, s.TotalEstimated)
	assert.Equal(t, 1, s.PaidCount)
	assert.Equal(t, 15000.0, s.TotalPaid)
}

func TestLeadsByStageIgnoresUnknownStatus(t *testing.T) {
	leads := []entity.Lead{
		{ID: "1", Status: "novo"},
		{ID: "2", Status: "novo"},
		{ID: "3", Status: "alienigena"},
	}
	cols := LeadsByStage(leads, pipeline.LeadStages)

	assert.Len(t, cols, 6, "toda coluna existe mesmo vazia")
	assert.Len(t, cols["novo"], 2)
	assert.Empty(t, cols["ganho"])
	_, ok := cols["alienigena"]
	assert.False(t, ok, "status desconhecido não vira coluna")
}
