package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mercadotech/mercado-api/internal/application/dto"
	"github.com/mercadotech/mercado-api/internal/domain"
	"github.com/mercadotech/mercado-api/internal/domain/entity"
	"github.com/mercadotech/mercado-api/internal/domain/repository"
	"github.com/mercadotech/mercado-api/pkg/logger"
)

// OrchestratorUseCase registra ventas y orquesta la baja remota de estoque.
// La venta se persiste dentro de una transacción local; la llamada remota
// ocurre dentro del mismo callback, de modo que una falla remota revierte la
// venta. Si la respuesta remota se pierde después de aplicada la saída, el
// estoque queda debitado con la venta revertida: compensación best-effort,
// no saga garantizada.
type OrchestratorUseCase struct {
	txRunner TxRunner
	sales    repository.SaleRepository // lecturas fuera de transacción
	stock    StockGateway
	log      *logger.Logger
}

// NewOrchestratorUseCase construye el caso de uso.
func NewOrchestratorUseCase(
	txRunner TxRunner,
	sales repository.SaleRepository,
	stock StockGateway,
	log *logger.Logger,
) *OrchestratorUseCase {
	return &OrchestratorUseCase{txRunner: txRunner, sales: sales, stock: stock, log: log}
}

// SaleInput entrada para RegisterSale.
type SaleInput struct {
	ProductID  string
	Quantity   int
	UnitPrice  *decimal.Decimal
	OccurredAt *time.Time
	Note       string
}

// RegisterSale persiste la venta y dispara la saída remota (tipo VENDA).
// UnitPrice ausente -> cero: placeholder explícito de la consulta de precios
// al product-service, que aún no existe.
func (uc *OrchestratorUseCase) RegisterSale(ctx context.Context, in SaleInput) (*entity.Sale, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	unitPrice := decimal.Zero
	if in.UnitPrice != nil {
		unitPrice = *in.UnitPrice
	} else {
		uc.log.Warn().
			Str("produto_id", in.ProductID).
			Msg("valor unitário ausente na venda, usando zero")
	}

	occurredAt := time.Now()
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
		OccurredAt: occurredAt,
		Note:       in.Note,
	}

	err := uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository) error {
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		uc.log.Info().Str("venda_id", sale.ID).Msg("venda registrada, acionando baixa de estoque")

		now := time.Now()
		exitReq := dto.RegisterExitRequest{
			ProductID:  sale.ProductID,
			Quantity:   sale.Quantity,
			ExitKind:   entity.ExitKindVenda,
			OccurredAt: &now,
			Note:       "Baixa automática via vendas para Venda ID: " + sale.ID,
		}
		if err := uc.stock.RegisterExit(ctx, exitReq); err != nil {
			uc.log.Error().Err(err).Str("venda_id", sale.ID).Msg("baixa de estoque falhou, revertendo venda")
			return fmt.Errorf("%w: %w", domain.ErrSaleRollback, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("venda_id", sale.ID).
		Str("valor_total", sale.TotalPrice.String()).
		Msg("venda concluída com baixa de estoque")
	return sale, nil
}

// SalesInPeriod lista las ventas con OccurredAt dentro de [start, end].
func (uc *OrchestratorUseCase) SalesInPeriod(ctx context.Context, start, end time.Time) ([]*entity.Sale, error) {
	return uc.sales.ListByPeriod(ctx, start, end)
}

// SalesForProduct histórico de ventas de un producto.
func (uc *OrchestratorUseCase) SalesForProduct(ctx context.Context, productID string) ([]*entity.Sale, error) {
	return uc.sales.ListByProduct(ctx, productID)
}
