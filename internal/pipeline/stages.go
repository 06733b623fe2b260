// Package pipeline define os conjuntos fixos de etapas (colunas do
// kanban, status de agenda, de atendimento, etc). As etapas são
// configuração estática, nunca derivadas dos dados.
package pipeline

type Stage struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// StageSet é uma lista ordenada de etapas de um tipo de entidade.
type StageSet struct {
	stages []Stage
}

func NewStageSet(stages ...Stage) StageSet {
	return StageSet{stages: stages}
}

// All devolve as etapas na ordem do funil.
func (s StageSet) All() []Stage {
	out := make([]Stage, len(s.stages))
	copy(out, s.stages)
	return out
}

func (s StageSet) Contains(id string) bool {
	for _, st := range s.stages {
		if st.ID == id {
			return true
		}
	}
	return false
}

// LabelFor devolve o rótulo da etapa; se o id não for conhecido,
// devolve o próprio id cru — nunca estoura.
func (s StageSet) LabelFor(id string) string {
	for _, st := range s.stages {
		if st.ID == id {
			return st.Label
		}
	}
	return id
}

// First é a etapa inicial, usada como default de status ausente.
func (s StageSet) First() Stage {
	if len(s.stages) == 0 {
		return Stage{}
	}
	return s.stages[0]
}

// Funil de leads. Qualquer transição entre quaisquer duas etapas é
// permitida — "ganho"/"perdido" são terminais só no conceito, não há
// grafo de transições legais (simplificação deliberada do produto).
var LeadStages = NewStageSet(
	Stage{ID: "novo", Label: "Novo Lead", Color: "blue"},
	Stage{ID: "contato", Label: "Contato Inicial", Color: "orange"},
	Stage{ID: "proposta", Label: "Proposta Enviada", Color: "purple"},
	Stage{ID: "negociacao", Label: "Negociação", Color: "yellow"},
	Stage{ID: "ganho", Label: "Fechado Ganho", Color: "green"},
	Stage{ID: "perdido", Label: "Fechado Perdido", Color: "red"},
)

var AppointmentStages = NewStageSet(
	Stage{ID: "agendado", Label: "Agendado", Color: "blue"},
	Stage{ID: "confirmado", Label: "Confirmado", Color: "cyan"},
	Stage{ID: "realizado", Label: "Realizado", Color: "green"},
	Stage{ID: "cancelado", Label: "Cancelado", Color: "red"},
)

var TicketStages = NewStageSet(
	Stage{ID: "aberto", Label: "Aberto", Color: "orange"},
	Stage{ID: "em_andamento", Label: "Em Andamento", Color: "blue"},
	Stage{ID: "resolvido", Label: "Resolvido", Color: "green"},
)

var CollaboratorStages = NewStageSet(
	Stage{ID: "ativo", Label: "Ativo", Color: "green"},
	Stage{ID: "inativo", Label: "Inativo", Color: "gray"},
)

var TransactionStages = NewStageSet(
	Stage{ID: "confirmado", Label: "Confirmado", Color: "green"},
	Stage{ID: "pendente", Label: "Pendente", Color: "yellow"},
	Stage{ID: "cancelado", Label: "Cancelado", Color: "red"},
)

// Etapas terminais que disparam alerta de negócio quando atingidas.
const (
	LeadStageWon       = "ganho"
	LeadStageLost      = "perdido"
	TicketStageSolved  = "resolvido"
	AppointmentEnded   = "realizado"
	AppointmentDropped = "cancelado"
)
