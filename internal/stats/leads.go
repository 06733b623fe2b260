// Package stats calcula as estatísticas derivadas dos snapshots de
// cache. Tudo aqui é função pura recalculada do zero a cada consulta —
// os volumes são de painel, não de data warehouse, então a
// simplicidade ganha da eficiência.
package stats

import (
	"math"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
	"github.com/xavierca1/imobi-backoffice/internal/pipeline"
)

type LeadStats struct {
	Total          int     `json:"total"`
	PaidCount      int     `json:"paid_count"`
	TotalPaid      float64 `json:"total_paid"`
	TotalEstimated float64 `json:"total_estimated"`
	WonCount       int     `json:"won_count"`
	LostCount      int     `json:"lost_count"`
	ConversionRate int     `json:"conversion_rate"` // % inteiro, 0..100
}

// ComputeLeadStats soma sobre o snapshot inteiro: leads com status fora
// do funil conhecido continuam entrando em Total e nos somatórios.
func ComputeLeadStats(leads []entity.Lead) LeadStats {
	s := LeadStats{Total: len(leads)}
	for _, l := range leads {
		s.TotalEstimated += l.Value
		if l.IsPaid {
			s.PaidCount++
			s.TotalPaid += l.PaidValue
		}
		switch l.Status {
		case pipeline.LeadStageWon:
			s.WonCount++
		case pipeline.LeadStageLost:
			s.LostCount++
		}
	}
	if s.Total > 0 {
		s.ConversionRate = int(math.Round(float64(s.WonCount) / float64(s.Total) * 100))
	}
	return s
}

// LeadsByStage agrupa o snapshot por coluna do funil. Status
// desconhecido não cai em coluna nenhuma (mas segue nos totais).
func LeadsByStage(leads []entity.Lead, stages pipeline.StageSet) map[string][]entity.Lead {
	out := make(map[string][]entity.Lead, len(stages.All()))
	for _, st := range stages.All() {
		out[st.ID] = []entity.Lead{}
	}
	for _, l := range leads {
		if _, ok := out[l.Status]; ok {
			out[l.Status] = append(out[l.Status], l)
		}
	}
	return out
}
