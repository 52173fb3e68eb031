package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadotech/mercado-api/internal/application/dto"
	"github.com/mercadotech/mercado-api/internal/application/sales"
	"github.com/mercadotech/mercado-api/internal/domain"
	"github.com/mercadotech/mercado-api/internal/domain/entity"
	"github.com/mercadotech/mercado-api/internal/domain/repository"
	"github.com/mercadotech/mercado-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeSaleRepo repo de ventas con semántica de staging: Create escribe en
// pending y solo el commit del fakeTxRunner lo promueve a committed.
type fakeSaleRepo struct {
	committed []*entity.Sale
	pending   []*entity.Sale
}

func (r *fakeSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.pending = append(r.pending, sale)
	return nil
}

func (r *fakeSaleRepo) ListByPeriod(_ context.Context, start, end time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.committed {
		if !s.OccurredAt.Before(start) && !s.OccurredAt.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.committed {
		if s.ProductID == productID {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeTxRunner reproduce el contrato transaccional: si fn devuelve error, los
// Create hechos dentro del callback se descartan (rollback).
type fakeTxRunner struct {
	repo *fakeSaleRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(saleRepo repository.SaleRepository) error) error {
	r.repo.pending = nil
	if err := fn(r.repo); err != nil {
		r.repo.pending = nil
		return err
	}
	r.repo.committed = append(r.repo.committed, r.repo.pending...)
	r.repo.pending = nil
	return nil
}

type fakeStockGateway struct {
	calls []dto.RegisterExitRequest
	err   error
}

func (g *fakeStockGateway) RegisterExit(_ context.Context, in dto.RegisterExitRequest) error {
	g.calls = append(g.calls, in)
	return g.err
}

func buildOrchestrator(repo *fakeSaleRepo, gw *fakeStockGateway) *sales.OrchestratorUseCase {
	return sales.NewOrchestratorUseCase(
		&fakeTxRunner{repo: repo},
		repo,
		gw,
		logger.New(logger.Config{Level: "error"}),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterSale_PersisteEDisparaBaixa(t *testing.T) {
	repo := &fakeSaleRepo{}
	gw := &fakeStockGateway{}
	uc := buildOrchestrator(repo, gw)

	price := decimal.RequireFromString("4.90")
	sale, err := uc.RegisterSale(context.Background(), sales.SaleInput{
		ProductID: "produto-1",
		Quantity:  3,
		UnitPrice: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "14.70", sale.TotalPrice.StringFixed(2))

	require.Len(t, repo.committed, 1, "a venda deve estar persistida")
	require.Len(t, gw.calls, 1, "exatamente uma saída remota")
	exit := gw.calls[0]
	assert.Equal(t, "produto-1", exit.ProductID)
	assert.Equal(t, 3, exit.Quantity)
	assert.Equal(t, entity.ExitKindVenda, exit.ExitKind)
	assert.Contains(t, exit.Note, sale.ID)
}

// Falha na baixa remota: a venda local é revertida e o erro envolve
// ErrSaleRollback mais a causa original.
func TestRegisterSale_FalhaRemotaReverteVenda(t *testing.T) {
	repo := &fakeSaleRepo{}
	cause := errors.New("stock-service fora do ar")
	gw := &fakeStockGateway{err: cause}
	uc := buildOrchestrator(repo, gw)

	price := decimal.RequireFromString("4.90")
	_, err := uc.RegisterSale(context.Background(), sales.SaleInput{
		ProductID: "produto-1",
		Quantity:  3,
		UnitPrice: &price,
	})
	assert.ErrorIs(t, err, domain.ErrSaleRollback)
	assert.ErrorIs(t, err, cause)
	assert.Empty(t, repo.committed, "nenhuma venda deve sobreviver ao rollback")
}

// Preço ausente vira zero: a venda passa com total zero em vez de ser
// rejeitada (placeholder até existir consulta de preço ao product-service).
func TestRegisterSale_PrecoAusenteViraZero(t *testing.T) {
	repo := &fakeSaleRepo{}
	gw := &fakeStockGateway{}
	uc := buildOrchestrator(repo, gw)

	sale, err := uc.RegisterSale(context.Background(), sales.SaleInput{
		ProductID: "produto-1",
		Quantity:  2,
	})
	require.NoError(t, err)
	assert.True(t, sale.UnitPrice.IsZero())
	assert.True(t, sale.TotalPrice.IsZero())
	require.Len(t, repo.committed, 1)
}

func TestRegisterSale_EntradaInvalida(t *testing.T) {
	uc := buildOrchestrator(&fakeSaleRepo{}, &fakeStockGateway{})

	_, err := uc.RegisterSale(context.Background(), sales.SaleInput{ProductID: "", Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterSale(context.Background(), sales.SaleInput{ProductID: "produto-1", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSalesInPeriod_FiltraPorIntervalo(t *testing.T) {
	repo := &fakeSaleRepo{}
	uc := buildOrchestrator(repo, &fakeStockGateway{})

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	repo.committed = []*entity.Sale{
		{ID: "dentro", ProductID: "produto-1", OccurredAt: base},
		{ID: "fora", ProductID: "produto-1", OccurredAt: base.AddDate(0, 0, 10)},
	}

	list, err := uc.SalesInPeriod(context.Background(), base.AddDate(0, 0, -1), base.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "dentro", list[0].ID)
}
