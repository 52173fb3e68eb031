package sales

import (
	"context"

	"github.com/mercadotech/mercado-api/internal/application/dto"
	"github.com/mercadotech/mercado-api/internal/domain/repository"
)

// StockGateway puerto hacia la operación remota de salida del ledger de estoque.
// Cualquier respuesta no-2xx o falla de transporte se devuelve como error.
type StockGateway interface {
	RegisterExit(ctx context.Context, in dto.RegisterExitRequest) error
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando un repositorio
// de ventas atado a esa tx. Si fn devuelve error, la venta local se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(saleRepo repository.SaleRepository) error) error
}
