package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mercadotech/mercado-api/internal/domain/entity"
	"github.com/mercadotech/mercado-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO vendas (id, produto_id, quantidade, valor_unitario, valor_total, data_venda, observacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.ProductID, sale.Quantity, sale.UnitPrice, sale.TotalPrice,
		sale.OccurredAt, nullable(sale.Note),
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// ListByPeriod lista ventas con data_venda dentro de [start, end].
func (r *SaleRepo) ListByPeriod(ctx context.Context, start, end time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT id, produto_id, quantidade, valor_unitario, valor_total, data_venda, observacao
		FROM vendas WHERE data_venda >= $1 AND data_venda <= $2`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list sales by period: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var note *string
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.UnitPrice, &s.TotalPrice, &s.OccurredAt, &note); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if note != nil {
			s.Note = *note
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListByProduct histórico de ventas de un producto.
func (r *SaleRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Sale, error) {
	query := `
		SELECT id, produto_id, quantidade, valor_unitario, valor_total, data_venda, observacao
		FROM vendas WHERE produto_id = $1`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list sales by product: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var note *string
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.UnitPrice, &s.TotalPrice, &s.OccurredAt, &note); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if note != nil {
			s.Note = *note
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
