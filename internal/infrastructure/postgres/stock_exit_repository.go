package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mercadotech/mercado-api/internal/domain/entity"
	"github.com/mercadotech/mercado-api/internal/domain/repository"
)

var _ repository.StockExitRepository = (*StockExitRepo)(nil)

// StockExitRepo implementación append-only sobre PostgreSQL (usable con pool o tx).
type StockExitRepo struct {
	q Querier
}

// NewStockExitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockExitRepository(q Querier) *StockExitRepo {
	return &StockExitRepo{q: q}
}

// Create persiste una salida de estoque. No existe update ni delete.
func (r *StockExitRepo) Create(ctx context.Context, exit *entity.StockExit) error {
	if exit.ID == "" {
		exit.ID = uuid.New().String()
	}
	query := `
		INSERT INTO saidas_estoque (id, produto_id, quantidade, tipo_saida, data_saida, observacao)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		exit.ID, exit.ProductID, exit.Quantity, exit.ExitKind, exit.OccurredAt, nullable(exit.Note),
	)
	if err != nil {
		return fmt.Errorf("create stock exit: %w", err)
	}
	return nil
}

// SumQuantityByProduct suma las cantidades de todas las salidas del producto (0 si no hay filas).
func (r *StockExitRepo) SumQuantityByProduct(ctx context.Context, productID string) (int, error) {
	query := `SELECT COALESCE(SUM(quantidade), 0) FROM saidas_estoque WHERE produto_id = $1`
	var total int
	if err := r.q.QueryRow(ctx, query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum stock exits: %w", err)
	}
	return total, nil
}

// ListByProduct lista las salidas de un producto ordenadas por fecha.
func (r *StockExitRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockExit, error) {
	query := `
		SELECT id, produto_id, quantidade, tipo_saida, data_saida, observacao
		FROM saidas_estoque WHERE produto_id = $1 ORDER BY data_saida ASC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock exits: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockExit
	for rows.Next() {
		var e entity.StockExit
		var note *string
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Quantity, &e.ExitKind, &e.OccurredAt, &note); err != nil {
			return nil, fmt.Errorf("scan stock exit: %w", err)
		}
		if note != nil {
			e.Note = *note
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
