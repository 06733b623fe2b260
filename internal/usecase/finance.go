package usecase

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
	"github.com/xavierca1/imobi-backoffice/internal/stats"
)

// FinanceService é o livro-caixa em memória: sem tabela, sem feed.
// Reiniciou o processo, zera — comportamento herdado do painel antigo
// e mantido até o financeiro ganhar persistência própria.
type FinanceService struct {
	mu  sync.RWMutex
	txs []entity.Transaction
	loc *time.Location
}

func NewFinanceService(loc *time.Location) *FinanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &FinanceService{loc: loc}
}

type TransactionInput struct {
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Status      string  `json:"status"`
	Note        string  `json:"note"`
}

func (s *FinanceService) Add(input TransactionInput) (entity.Transaction, error) {
	if input.Kind != entity.TransactionIncome && input.Kind != entity.TransactionExpense {
		return entity.Transaction{}, &DomainError{Code: "bad_kind", Message: "Tipo deve ser receita ou despesa."}
	}
	if strings.TrimSpace(input.Description) == "" {
		return entity.Transaction{}, &DomainError{Code: "description_required", Message: "Descrição é obrigatória."}
	}
	if input.Amount <= 0 {
		return entity.Transaction{}, &DomainError{Code: "bad_amount", Message: "Valor deve ser maior que zero."}
	}
	if input.Date == "" {
		input.Date = time.Now().In(s.loc).Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return entity.Transaction{}, &DomainError{Code: "bad_date", Message: "Data inválida (use YYYY-MM-DD)."}
	}
	if input.Status == "" {
		input.Status = "confirmado"
	}

	t := entity.Transaction{
		ID:          uuid.New().String(),
		Kind:        input.Kind,
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        input.Date,
		Status:      input.Status,
		Note:        input.Note,
	}

	s.mu.Lock()
	s.txs = append(s.txs, t)
	s.mu.Unlock()
	return t, nil
}

func (s *FinanceService) Update(id string, upd entity.TransactionUpdate) (entity.Transaction, error) {
	if upd.Date != nil {
		if _, err := time.Parse("2006-01-02", *upd.Date); err != nil {
			return entity.Transaction{}, &DomainError{Code: "bad_date", Message: "Data inválida (use YYYY-MM-DD)."}
		}
	}
	if upd.Kind != nil && *upd.Kind != entity.TransactionIncome && *upd.Kind != entity.TransactionExpense {
		return entity.Transaction{}, &DomainError{Code: "bad_kind", Message: "Tipo deve ser receita ou despesa."}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txs {
		if s.txs[i].ID != id {
			continue
		}
		t := &s.txs[i]
		if upd.Kind != nil {
			t.Kind = *upd.Kind
		}
		if upd.Description != nil {
			t.Description = *upd.Description
		}
		if upd.Amount != nil {
			t.Amount = *upd.Amount
		}
		if upd.Category != nil {
			t.Category = *upd.Category
		}
		if upd.Date != nil {
			t.Date = *upd.Date
		}
		if upd.Status != nil {
			t.Status = *upd.Status
		}
		if upd.Note != nil {
			t.Note = *upd.Note
		}
		return *t, nil
	}
	return entity.Transaction{}, &DomainError{Code: "not_found", Message: "Lançamento não encontrado."}
}

func (s *FinanceService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.txs {
		if s.txs[i].ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return nil
		}
	}
	return &DomainError{Code: "not_found", Message: "Lançamento não encontrado."}
}

func (s *FinanceService) Snapshot() []entity.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

// Recent são os últimos 5 lançamentos por data (desempate pela ordem
// de inserção, mais novo primeiro).
func (s *FinanceService) Recent() []entity.Transaction {
	all := s.Snapshot()
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date > all[j].Date })
	if len(all) > 5 {
		all = all[:5]
	}
	return all
}

// Stats cobre o mês corrente no fuso configurado.
func (s *FinanceService) Stats() stats.FinanceStats {
	now := time.Now().In(s.loc)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, -1)
	return stats.ComputeFinanceStats(s.Snapshot(), from, to)
}

func (s *FinanceService) StatsWindow(from, to time.Time) stats.FinanceStats {
	return stats.ComputeFinanceStats(s.Snapshot(), from, to)
}
