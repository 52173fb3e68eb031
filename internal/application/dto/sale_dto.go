package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterSaleRequest body para POST /v1/vendas.
type RegisterSaleRequest struct {
	ProductID  string           `json:"produto_id"`
	Quantity   int              `json:"quantidade"`
	UnitPrice  *decimal.Decimal `json:"valor_unitario,omitempty"` // ausente -> cero (gap conocido)
	OccurredAt *time.Time       `json:"data_venda,omitempty"`
	Note       string           `json:"observacao,omitempty"`
}

// SaleResponse representación HTTP de una venta.
type SaleResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"produto_id"`
	Quantity   int             `json:"quantidade"`
	UnitPrice  decimal.Decimal `json:"valor_unitario"`
	TotalPrice decimal.Decimal `json:"valor_total"`
	OccurredAt time.Time       `json:"data_venda"`
	Note       string          `json:"observacao,omitempty"`
}
