package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mercadotech/mercado-api/internal/application/dto"
	"github.com/mercadotech/mercado-api/internal/application/stock"
	"github.com/mercadotech/mercado-api/internal/domain"
)

var _ stock.ProductDirectory = (*ProductClient)(nil)

// ProductClient cliente HTTP del product-service (chequeo de existencia).
type ProductClient struct {
	rc *resty.Client
}

// NewProductClient construye el cliente con base URL, timeout y reintentos.
func NewProductClient(baseURL string, timeout time.Duration, retries int) *ProductClient {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(retries)
	return &ProductClient{rc: rc}
}

// GetByID consulta GET /products/{id}. Devuelve (nil, nil) en 404;
// ErrRemoteUnavailable en falla de transporte o timeout.
func (c *ProductClient) GetByID(ctx context.Context, productID string) (*dto.ProductResponse, error) {
	var out dto.ProductResponse
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&out).
		SetPathParam("id", productID).
		Get("/products/{id}")
	if err != nil {
		return nil, fmt.Errorf("%w: product-service: %w", domain.ErrRemoteUnavailable, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: product-service status %d", domain.ErrRemoteUnavailable, resp.StatusCode())
	}
	return &out, nil
}
