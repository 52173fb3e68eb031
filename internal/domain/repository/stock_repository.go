package repository

import (
	"context"

	"github.com/mercadotech/mercado-api/internal/domain/entity"
)

// StockEntryRepository porta para o registro append-only de entradas de estoque.
type StockEntryRepository interface {
	Create(ctx context.Context, entry *entity.StockEntry) error
	// SumQuantityByProduct soma as quantidades de todas as entradas do produto (0 se não houver).
	SumQuantityByProduct(ctx context.Context, productID string) (int, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockEntry, error)
}

// StockExitRepository porta para o registro append-only de saídas de estoque.
type StockExitRepository interface {
	Create(ctx context.Context, exit *entity.StockExit) error
	// SumQuantityByProduct soma as quantidades de todas as saídas do produto (0 se não houver).
	SumQuantityByProduct(ctx context.Context, productID string) (int, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockExit, error)
}
