package repository

import (
	"context"
	"time"

	"github.com/mercadotech/mercado-api/internal/domain/entity"
)

// LotRepository porta para persistência de lotes de validade.
type LotRepository interface {
	Create(ctx context.Context, lot *entity.ExpirationLot) error
	GetByID(ctx context.Context, id string) (*entity.ExpirationLot, error)
	// ListByStatusExpiringBefore lista lotes no status dado com validade <= limit.
	ListByStatusExpiringBefore(ctx context.Context, status entity.LotStatus, limit time.Time) ([]*entity.ExpirationLot, error)
	// UpdateStatus persiste status e observação de um lote existente.
	UpdateStatus(ctx context.Context, lot *entity.ExpirationLot) error
	// TransitionStatus muda o status apenas se o lote ainda estiver em from
	// (compare-and-set). Devolve false se outro processo já o transicionou.
	TransitionStatus(ctx context.Context, id string, from, to entity.LotStatus) (bool, error)
}
