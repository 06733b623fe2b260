package entity

// Transaction é um lançamento do livro-caixa. Diferente das outras
// entidades, o financeiro vive só na memória do processo — não há
// tabela nem feed de mudanças para ele.
type Transaction struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"` // receita | despesa
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`   // YYYY-MM-DD
	Status      string  `json:"status"` // confirmado | pendente | cancelado
	Note        string  `json:"note,omitempty"`
}

func (t Transaction) EntityID() string { return t.ID }

const (
	TransactionIncome  = "receita"
	TransactionExpense = "despesa"
)

var IncomeCategories = []string{
	"Venda de Imóvel",
	"Aluguel (Comissão)",
	"Taxa de Administração",
	"Consultoria Imobiliária",
	"Avaliação de Imóvel",
	"Outros / Diversos",
}

var ExpenseCategories = []string{
	"Folha de Pagamento / Corretores",
	"Anúncios (Meta / Google Ads)",
	"Portais Imobiliários",
	"Software e Serviços",
	"Outros / Diversos",
}

type TransactionUpdate struct {
	Kind        *string  `json:"kind,omitempty"`
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Note        *string  `json:"note,omitempty"`
}
