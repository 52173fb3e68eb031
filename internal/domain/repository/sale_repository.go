package repository

import (
	"context"
	"time"

	"github.com/mercadotech/mercado-api/internal/domain/entity"
)

// SaleRepository porta para persistência de vendas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	ListByPeriod(ctx context.Context, start, end time.Time) ([]*entity.Sale, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Sale, error)
}
