package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterEntryRequest body para POST /estoque/entrada.
type RegisterEntryRequest struct {
	ProductID  string          `json:"produto_id"`
	Quantity   int             `json:"quantidade"`
	UnitCost   decimal.Decimal `json:"custo_unitario"`
	OccurredAt *time.Time      `json:"data_entrada,omitempty"` // default: now
	Note       string          `json:"observacao,omitempty"`
}

// RegisterExitRequest body para POST /estoque/saida. Es también el contrato
// remoto que consumen vendas y validade para la baja de estoque.
type RegisterExitRequest struct {
	ProductID  string     `json:"produto_id"`
	Quantity   int        `json:"quantidade"`
	ExitKind   string     `json:"tipo_saida"`
	OccurredAt *time.Time `json:"data_saida,omitempty"` // default: now
	Note       string     `json:"observacao,omitempty"`
}

// StockEntryResponse representación HTTP de una entrada registrada.
type StockEntryResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"produto_id"`
	Quantity   int             `json:"quantidade"`
	UnitCost   decimal.Decimal `json:"custo_unitario"`
	OccurredAt time.Time       `json:"data_entrada"`
	Note       string          `json:"observacao,omitempty"`
}

// StockExitResponse representación HTTP de una salida registrada.
type StockExitResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"produto_id"`
	Quantity   int       `json:"quantidade"`
	ExitKind   string    `json:"tipo_saida"`
	OccurredAt time.Time `json:"data_saida"`
	Note       string    `json:"observacao,omitempty"`
}

// BalanceResponse saldo actual de un producto.
type BalanceResponse struct {
	ProductID string `json:"produto_id"`
	Balance   int    `json:"saldo"`
}
