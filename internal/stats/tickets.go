package stats

import (
	"fmt"
	"math"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
	"github.com/xavierca1/imobi-backoffice/internal/pipeline"
)

type TicketStats struct {
	Total      int    `json:"total"`
	Open       int    `json:"open"`
	InProgress int    `json:"in_progress"`
	Resolved   int    `json:"resolved"`
	AvgTime    string `json:"avg_resolution_time"` // "42min", "3h" ou "N/A"
}

// ComputeTicketStats conta por status e tira o tempo médio de resolução
// sobre os tickets resolvidos (UpdatedAt - CreatedAt). Sem resolvidos,
// a média é "N/A".
func ComputeTicketStats(tickets []entity.Ticket) TicketStats {
	s := TicketStats{Total: len(tickets), AvgTime: "N/A"}
	var resolvedMinutes float64
	for _, t := range tickets {
		switch t.Status {
		case "aberto":
			s.Open++
		case "em_andamento":
			s.InProgress++
		case pipeline.TicketStageSolved:
			s.Resolved++
			resolvedMinutes += t.UpdatedAt.Sub(t.CreatedAt).Minutes()
		}
	}
	if s.Resolved > 0 {
		s.AvgTime = formatMinutes(resolvedMinutes / float64(s.Resolved))
	}
	return s
}

// Abaixo de uma hora mostra minutos; daí pra cima arredonda em horas.
func formatMinutes(m float64) string {
	rounded := math.Round(m)
	if rounded < 60 {
		return fmt.Sprintf("%.0fmin", rounded)
	}
	return fmt.Sprintf("%.0fh", math.Round(rounded/60))
}
