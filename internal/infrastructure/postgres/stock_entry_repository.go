package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mercadotech/mercado-api/internal/domain/entity"
	"github.com/mercadotech/mercado-api/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo implementación append-only sobre PostgreSQL (usable con pool o tx).
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

// Create persiste una entrada de estoque. No existe update ni delete.
func (r *StockEntryRepo) Create(ctx context.Context, entry *entity.StockEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO entradas_estoque (id, produto_id, quantidade, custo_unitario, data_entrada, observacao)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.ProductID, entry.Quantity, entry.UnitCost, entry.OccurredAt, nullable(entry.Note),
	)
	if err != nil {
		return fmt.Errorf("create stock entry: %w", err)
	}
	return nil
}

// SumQuantityByProduct suma las cantidades de todas las entradas del producto (0 si no hay filas).
func (r *StockEntryRepo) SumQuantityByProduct(ctx context.Context, productID string) (int, error) {
	query := `SELECT COALESCE(SUM(quantidade), 0) FROM entradas_estoque WHERE produto_id = $1`
	var total int
	if err := r.q.QueryRow(ctx, query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum stock entries: %w", err)
	}
	return total, nil
}

// ListByProduct lista las entradas de un producto ordenadas por fecha.
func (r *StockEntryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockEntry, error) {
	query := `
		SELECT id, produto_id, quantidade, custo_unitario, data_entrada, observacao
		FROM entradas_estoque WHERE produto_id = $1 ORDER BY data_entrada ASC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		var note *string
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Quantity, &e.UnitCost, &e.OccurredAt, &note); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		if note != nil {
			e.Note = *note
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
