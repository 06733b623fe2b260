package usecase

// DomainError é erro de regra de negócio (etapa inexistente, campo
// obrigatório faltando). Vira 4xx na borda HTTP.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError é falha de transporte ou de infraestrutura (banco,
// fila). O estado local fica intacto; o chamador decide quando tentar
// de novo.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
