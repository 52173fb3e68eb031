package httpclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mercadotech/mercado-api/internal/application/dto"
	"github.com/mercadotech/mercado-api/internal/application/sales"
	"github.com/mercadotech/mercado-api/internal/application/validity"
	"github.com/mercadotech/mercado-api/internal/domain"
)

var _ sales.StockGateway = (*StockClient)(nil)
var _ validity.StockGateway = (*StockClient)(nil)

// StockClient cliente HTTP de la operación remota de salida del ledger.
// Vendas y validade lo usan para la baja de estoque: cualquier status no-2xx
// o falla de transporte cuenta como saída no aplicada, salvo respuesta
// perdida después del commit remoto, que este cliente no puede distinguir.
type StockClient struct {
	rc *resty.Client
}

// NewStockClient construye el cliente con base URL, timeout y reintentos.
// Una vez emitida la request no hay camino de cancelación del efecto remoto:
// reintentos > 0 pueden duplicar la saída si la respuesta se perdió.
func NewStockClient(baseURL string, timeout time.Duration, retries int) *StockClient {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retries)
	return &StockClient{rc: rc}
}

// RegisterExit dispara POST /estoque/saida.
func (c *StockClient) RegisterExit(ctx context.Context, in dto.RegisterExitRequest) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(in).
		Post("/estoque/saida")
	if err != nil {
		return fmt.Errorf("%w: stock-service: %w", domain.ErrRemoteUnavailable, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("stock-service recusou a saída: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
