package stock

import (
	"context"

	"github.com/mercadotech/mercado-api/internal/application/dto"
)

// ProductDirectory puerto hacia el product-service: solo chequeo de existencia
// y datos de presentación. Devuelve (nil, nil) cuando el producto no existe.
type ProductDirectory interface {
	GetByID(ctx context.Context, productID string) (*dto.ProductResponse, error)
}
