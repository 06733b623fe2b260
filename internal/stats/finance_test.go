package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
)

func TestComputeFinanceStatsConfirmedOnly(t *testing.T) {
	from := day(2026, time.April, 1)
	to := day(2026, time.April, 30)
	txs := []entity.Transaction{
		{ID: "1", Kind: "receita", Amount: 15000, Date: "2026-04-10", Status: "confirmado"},
		{ID: "2", Kind: "receita", Amount: 9000, Date: "2026-04-12", Status: "pendente"},
		{ID: "3", Kind: "despesa", Amount: 4000, Date: "2026-04-15", Status: "confirmado"},
		{ID: "4", Kind: "despesa", Amount: 1000, Date: "2026-04-20", Status: "cancelado"},
	}

	s := ComputeFinanceStats(txs, from, to)
	assert.Equal(t, 15000.0, s.Income)
	assert.Equal(t, 4000.0, s.Expense)
	assert.Equal(t, 11000.0, s.Profit)
	assert.Equal(t, 1, s.IncomeCount)
	assert.Equal(t, 1, s.ExpenseCount)
}

func TestComputeFinanceStatsWindowIsInclusive(t *testing.T) {
	from := day(2026, time.April, 1)
	to := day(2026, time.April, 30)
	txs := []entity.Transaction{
		{ID: "1", Kind: "receita", Amount: 100, Date: "2026-04-01", Status: "confirmado"},
		{ID: "2", Kind: "receita", Amount: 200, Date: "2026-04-30", Status: "confirmado"},
		{ID: "3", Kind: "receita", Amount: 400, Date: "2026-03-31", Status: "confirmado"},
		{ID: "4", Kind: "receita", Amount: 800, Date: "2026-05-01", Status: "confirmado"},
	}
	s := ComputeFinanceStats(txs, from, to)
	assert.Equal(t, 300.0, s.Income)
}

func TestComputeFinanceStatsRatiosGuardZero(t *testing.T) {
	s := ComputeFinanceStats([]entity.Transaction{
		{ID: "1", Kind: "despesa", Amount: 500, Date: "2026-04-10", Status: "confirmado"},
	}, day(2026, time.April, 1), day(2026, time.April, 30))

	assert.Equal(t, 0.0, s.AverageTicket, "sem receitas não há divisão")
	assert.Equal(t, 0.0, s.AcquisitionCost)
}

func TestComputeFinanceStatsRatios(t *testing.T) {
	s := ComputeFinanceStats([]entity.Transaction{
		{ID: "1", Kind: "receita", Amount: 10000, Date: "2026-04-05", Status: "confirmado"},
		{ID: "2", Kind: "receita", Amount: 20000, Date: "2026-04-06", Status: "confirmado"},
		{ID: "3", Kind: "despesa", Amount: 3000, Date: "2026-04-07", Status: "confirmado"},
	}, day(2026, time.April, 1), day(2026, time.April, 30))

	assert.Equal(t, 15000.0, s.AverageTicket)
	assert.Equal(t, 1500.0, s.AcquisitionCost)
}

func TestComputeFinanceStatsSkipsBadDates(t *testing.T) {
	s := ComputeFinanceStats([]entity.Transaction{
		{ID: "1", Kind: "receita", Amount: 100, Date: "ontem", Status: "confirmado"},
	}, day(2026, time.April, 1), day(2026, time.April, 30))
	assert.Equal(t, 0.0, s.Income)
}
