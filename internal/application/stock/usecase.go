package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mercadotech/mercado-api/internal/application/dto"
	"github.com/mercadotech/mercado-api/internal/domain"
	"github.com/mercadotech/mercado-api/internal/domain/entity"
	"github.com/mercadotech/mercado-api/internal/domain/repository"
	"github.com/mercadotech/mercado-api/pkg/logger"
)

// LedgerUseCase es la única autoridad de escritura sobre el ledger de estoque
// (entradas y salidas append-only). El saldo nunca se almacena: se recalcula
// sumando el ledger completo del producto en cada lectura.
type LedgerUseCase struct {
	entries  repository.StockEntryRepository
	exits    repository.StockExitRepository
	products ProductDirectory
	log      *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	entries repository.StockEntryRepository,
	exits repository.StockExitRepository,
	products ProductDirectory,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{entries: entries, exits: exits, products: products, log: log}
}

// EntryInput entrada para RegisterEntry.
type EntryInput struct {
	ProductID  string
	Quantity   int
	UnitCost   decimal.Decimal
	OccurredAt *time.Time
	Note       string
}

// ExitInput entrada para RegisterExit.
type ExitInput struct {
	ProductID  string
	Quantity   int
	ExitKind   string
	OccurredAt *time.Time
	Note       string
}

// RegisterEntry valida el producto contra el product-service y agrega una
// entrada al ledger. OccurredAt ausente -> ahora.
func (uc *LedgerUseCase) RegisterEntry(ctx context.Context, in EntryInput) (*entity.StockEntry, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		uc.log.Warn().Str("produto_id", in.ProductID).Msg("produto não encontrado no product-service")
		return nil, domain.ErrProductNotFound
	}

	occurredAt := time.Now()
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}
	entry := &entity.StockEntry{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		OccurredAt: occurredAt,
		Note:       in.Note,
	}
	if err := uc.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("produto_id", in.ProductID).
		Str("produto", product.Name).
		Int("quantidade", in.Quantity).
		Msg("entrada de estoque registrada")
	return entry, nil
}

// RegisterExit valida el producto, recalcula el saldo y agrega una salida.
// La verificación saldo>=cantidad y el insert NO están serializados entre
// escritores concurrentes del mismo producto: dos salidas simultáneas pueden
// leer el mismo saldo y ambas pasar.
func (uc *LedgerUseCase) RegisterExit(ctx context.Context, in ExitInput) (*entity.StockExit, error) {
	if in.ProductID == "" || in.Quantity <= 0 || !entity.ValidExitKind(in.ExitKind) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		uc.log.Warn().Str("produto_id", in.ProductID).Msg("produto não encontrado no product-service")
		return nil, domain.ErrProductNotFound
	}

	balance, err := uc.Balance(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if balance < in.Quantity {
		uc.log.Warn().
			Str("produto_id", in.ProductID).
			Int("saldo", balance).
			Int("quantidade", in.Quantity).
			Msg("saldo insuficiente para saída")
		return nil, domain.ErrInsufficientStock
	}

	occurredAt := time.Now()
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}
	exit := &entity.StockExit{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		ExitKind:   in.ExitKind,
		OccurredAt: occurredAt,
		Note:       in.Note,
	}
	if err := uc.exits.Create(ctx, exit); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("produto_id", in.ProductID).
		Str("tipo_saida", in.ExitKind).
		Int("quantidade", in.Quantity).
		Msg("saída de estoque registrada")
	return exit, nil
}

// Balance saldo actual del producto: Σ entradas − Σ salidas. Lectura pura,
// 0 si no hay registros; no exige que el producto exista.
func (uc *LedgerUseCase) Balance(ctx context.Context, productID string) (int, error) {
	totalIn, err := uc.entries.SumQuantityByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	totalOut, err := uc.exits.SumQuantityByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	return totalIn - totalOut, nil
}

// ProductByID expone la consulta al product-service para los handlers
// (el endpoint de saldo responde 404 si el producto no existe).
func (uc *LedgerUseCase) ProductByID(ctx context.Context, productID string) (*dto.ProductResponse, error) {
	return uc.products.GetByID(ctx, productID)
}
