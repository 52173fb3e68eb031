package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de saída de estoque (conjunto fechado, persistido como string).
const (
	ExitKindVenda     = "VENDA"     // saída por venda de produto
	ExitKindPerda     = "PERDA"     // produto danificado, extraviado ou vencido
	ExitKindConsumo   = "CONSUMO"   // consumo interno (ex: insumos)
	ExitKindAjuste    = "AJUSTE"    // ajuste de inventário
	ExitKindDevolucao = "DEVOLUCAO" // devolução ao fornecedor
)

// ValidExitKind informa se o tipo de saída pertence ao conjunto fechado.
func ValidExitKind(kind string) bool {
	switch kind {
	case ExitKindVenda, ExitKindPerda, ExitKindConsumo, ExitKindAjuste, ExitKindDevolucao:
		return true
	}
	return false
}

// StockEntry registro imutável de entrada de estoque (append-only).
type StockEntry struct {
	ID         string
	ProductID  string
	Quantity   int
	UnitCost   decimal.Decimal
	OccurredAt time.Time
	Note       string
}

// StockExit registro imutável de saída de estoque (append-only).
type StockExit struct {
	ID         string
	ProductID  string
	Quantity   int
	ExitKind   string
	OccurredAt time.Time
	Note       string
}
