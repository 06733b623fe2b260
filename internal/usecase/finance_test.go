package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
)

func TestFinanceAddValidates(t *testing.T) {
	svc := NewFinanceService(time.UTC)

	_, err := svc.Add(TransactionInput{Kind: "empréstimo", Description: "x", Amount: 10})
	assert.True(t, IsDomainError(err))

	_, err = svc.Add(TransactionInput{Kind: "receita", Description: " ", Amount: 10})
	assert.True(t, IsDomainError(err))

	_, err = svc.Add(TransactionInput{Kind: "receita", Description: "venda", Amount: 0})
	assert.True(t, IsDomainError(err))

	_, err = svc.Add(TransactionInput{Kind: "receita", Description: "venda", Amount: 10, Date: "amanhã"})
	assert.True(t, IsDomainError(err))
}

func TestFinanceAddDefaults(t *testing.T) {
	svc := NewFinanceService(time.UTC)

	tx, err := svc.Add(TransactionInput{Kind: "receita", Description: "venda", Amount: 15000})
	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "confirmado", tx.Status)
	assert.NotEmpty(t, tx.Date)
}

func TestFinanceUpdateAndDelete(t *testing.T) {
	svc := NewFinanceService(time.UTC)
	tx, err := svc.Add(TransactionInput{Kind: "receita", Description: "venda", Amount: 100, Date: "2026-04-10"})
	require.NoError(t, err)

	newAmount := 250.0
	updated, err := svc.Update(tx.ID, entity.TransactionUpdate{Amount: &newAmount})
	require.NoError(t, err)
	assert.Equal(t, 250.0, updated.Amount)

	_, err = svc.Update("fantasma", entity.TransactionUpdate{Amount: &newAmount})
	assert.True(t, IsDomainError(err))

	require.NoError(t, svc.Delete(tx.ID))
	assert.Error(t, svc.Delete(tx.ID))
	assert.Empty(t, svc.Snapshot())
}

func TestFinanceRecentLimitsToFive(t *testing.T) {
	svc := NewFinanceService(time.UTC)
	dates := []string{"2026-04-01", "2026-04-03", "2026-04-02", "2026-04-07", "2026-04-05", "2026-04-06"}
	for _, d := range dates {
		_, err := svc.Add(TransactionInput{Kind: "despesa", Description: "anúncio", Amount: 10, Date: d})
		require.NoError(t, err)
	}

	recent := svc.Recent()
	require.Len(t, recent, 5)
	assert.Equal(t, "2026-04-07", recent[0].Date, "mais recente primeiro")
	assert.Equal(t, "2026-04-02", recent[4].Date, "a mais antiga fica de fora")
}

func TestFinanceStatsWindow(t *testing.T) {
	svc := NewFinanceService(time.UTC)
	_, err := svc.Add(TransactionInput{Kind: "receita", Description: "comissão", Amount: 12000, Date: "2026-04-10"})
	require.NoError(t, err)
	_, err = svc.Add(TransactionInput{Kind: "despesa", Description: "portal", Amount: 2000, Date: "2026-04-11"})
	require.NoError(t, err)
	_, err = svc.Add(TransactionInput{Kind: "receita", Description: "fora da janela", Amount: 999, Date: "2026-05-02"})
	require.NoError(t, err)

	s := svc.StatsWindow(
		time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC),
	)
	assert.Equal(t, 12000.0, s.Income)
	assert.Equal(t, 2000.0, s.Expense)
	assert.Equal(t, 10000.0, s.Profit)
}
