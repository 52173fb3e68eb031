package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venda registrada pelo orquestrador. Nunca é mutada após criada
// (não existe caminho de update/cancelamento neste core).
type Sale struct {
	ID         string
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal // Quantity × UnitPrice
	OccurredAt time.Time
	Note       string
}
