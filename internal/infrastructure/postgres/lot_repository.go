package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mercadotech/mercado-api/internal/domain/entity"
	"github.com/mercadotech/mercado-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create persiste un lote de validade.
func (r *LotRepo) Create(ctx context.Context, lot *entity.ExpirationLot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	query := `
		INSERT INTO lotes_validade (id, produto_id, data_entrada_lote, data_validade, quantidade, status, data_registro, observacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.ProductID, lot.LotEntryDate, lot.ExpiryDate, lot.Quantity,
		string(lot.Status), lot.RegisteredAt, nullable(lot.Note),
	)
	if err != nil {
		return fmt.Errorf("create lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID; (nil, nil) si no existe.
func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.ExpirationLot, error) {
	query := `
		SELECT id, produto_id, data_entrada_lote, data_validade, quantidade, status, data_registro, observacao
		FROM lotes_validade WHERE id = $1`
	lot, err := scanLot(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return lot, nil
}

// ListByStatusExpiringBefore lotes en el status dado con data_validade <= limit.
func (r *LotRepo) ListByStatusExpiringBefore(ctx context.Context, status entity.LotStatus, limit time.Time) ([]*entity.ExpirationLot, error) {
	query := `
		SELECT id, produto_id, data_entrada_lote, data_validade, quantidade, status, data_registro, observacao
		FROM lotes_validade WHERE status = $1 AND data_validade <= $2
		ORDER BY data_validade ASC`
	rows, err := r.q.Query(ctx, query, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var list []*entity.ExpirationLot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, lot)
	}
	return list, rows.Err()
}

// UpdateStatus persiste status y observação de un lote existente.
func (r *LotRepo) UpdateStatus(ctx context.Context, lot *entity.ExpirationLot) error {
	query := `UPDATE lotes_validade SET status = $1, observacao = $2 WHERE id = $3`
	tag, err := r.q.Exec(ctx, query, string(lot.Status), nullable(lot.Note), lot.ID)
	if err != nil {
		return fmt.Errorf("update lot status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update lot status: lote %s não existe", lot.ID)
	}
	return nil
}

// TransitionStatus compare-and-set de status: solo transiciona si el lote
// sigue en from. Dos barridos concurrentes no pueden reclamar el mismo lote.
func (r *LotRepo) TransitionStatus(ctx context.Context, id string, from, to entity.LotStatus) (bool, error) {
	query := `UPDATE lotes_validade SET status = $1 WHERE id = $2 AND status = $3`
	tag, err := r.q.Exec(ctx, query, string(to), id, string(from))
	if err != nil {
		return false, fmt.Errorf("transition lot status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanLot(row pgx.Row) (*entity.ExpirationLot, error) {
	var l entity.ExpirationLot
	var status string
	var note *string
	err := row.Scan(&l.ID, &l.ProductID, &l.LotEntryDate, &l.ExpiryDate, &l.Quantity, &status, &l.RegisteredAt, &note)
	if err != nil {
		return nil, err
	}
	l.Status = entity.LotStatus(status)
	if note != nil {
		l.Note = *note
	}
	return &l, nil
}
