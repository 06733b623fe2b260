package stats

import (
	"time"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
)

type FinanceStats struct {
	Income        float64 `json:"income"`
	Expense       float64 `json:"expense"`
	Profit        float64 `json:"profit"`
	IncomeCount   int     `json:"income_count"`
	ExpenseCount  int     `json:"expense_count"`
	AverageTicket float64 `json:"average_ticket"`
	// CAC aqui é despesa / nº de receitas na janela — aproxima custo
	// por evento de receita, não custo real de aquisição de cliente.
	// Mantido assim de propósito; não "corrigir" em silêncio.
	AcquisitionCost float64 `json:"acquisition_cost"`
}

// ComputeFinanceStats soma apenas lançamentos confirmados cuja data cai
// na janela [from, to] (inclusiva). Lançamentos com data ilegível ficam
// de fora da janela.
func ComputeFinanceStats(txs []entity.Transaction, from, to time.Time) FinanceStats {
	var s FinanceStats
	lo := civilDate(from)
	hi := civilDate(to)
	for _, t := range txs {
		if t.Status != "confirmado" {
			continue
		}
		d, err := time.Parse("2006-01-02", t.Date)
		if err != nil {
			continue
		}
		if d.Before(lo) || d.After(hi) {
			continue
		}
		switch t.Kind {
		case entity.TransactionIncome:
			s.Income += t.Amount
			s.IncomeCount++
		case entity.TransactionExpense:
			s.Expense += t.Amount
			s.ExpenseCount++
		}
	}
	s.Profit = s.Income - s.Expense
	if s.IncomeCount > 0 {
		s.AverageTicket = s.Income / float64(s.IncomeCount)
		s.AcquisitionCost = s.Expense / float64(s.IncomeCount)
	}
	return s
}

// civilDate ignora o fuso do instante: só ano/mês/dia contam para a
// janela, casando com o formato YYYY-MM-DD dos lançamentos.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
