package entity

import "time"

// LotStatus status de um lote de validade (máquina de estados finita,
// persistido como string).
//
//	ATIVO ──sweep──▶ VENCIDO ──baixa──▶ BAIXADO (terminal)
//	ATIVO / PENDENTE_BAIXA ──baixa manual──▶ BAIXADO
type LotStatus string

const (
	LotStatusAtivo         LotStatus = "ATIVO"          // validade ainda ativa
	LotStatusVencido       LotStatus = "VENCIDO"        // data de validade já passou
	LotStatusBaixado       LotStatus = "BAIXADO"        // baixado do estoque (terminal)
	LotStatusPendenteBaixa LotStatus = "PENDENTE_BAIXA" // marcado para baixa, ainda não processado
)

// Valid informa se o status pertence ao conjunto fechado.
func (s LotStatus) Valid() bool {
	switch s {
	case LotStatusAtivo, LotStatusVencido, LotStatusBaixado, LotStatusPendenteBaixa:
		return true
	}
	return false
}

// CanWriteOff informa se um lote neste status aceita baixa manual.
// VENCIDO fica de fora: um lote preso em VENCIDO após uma baixa automática
// falha exige intervenção manual.
func (s LotStatus) CanWriteOff() bool {
	switch s {
	case LotStatusAtivo, LotStatusPendenteBaixa:
		return true
	case LotStatusVencido, LotStatusBaixado:
		return false
	}
	return false
}

// Motivos de baixa de lote; determinam o tipo de saída no estoque.
const (
	WriteOffReasonManual      = "PERDA_MANUAL"
	WriteOffReasonAutoExpired = "VENCIMENTO_AUTOMATICO"
)

// ExpirationLot lote de validade de um produto. Mutado apenas pelo
// gerenciador de ciclo de vida; BAIXADO é terminal.
type ExpirationLot struct {
	ID           string
	ProductID    string
	LotEntryDate time.Time // data de entrada do lote no estoque (só a data importa)
	ExpiryDate   time.Time // data de validade (só a data importa)
	Quantity     int
	Status       LotStatus
	RegisteredAt time.Time
	Note         string
}
