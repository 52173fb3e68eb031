package validity

import (
	"context"

	"github.com/mercadotech/mercado-api/internal/application/dto"
)

// StockGateway puerto hacia la operación remota de salida del ledger de estoque.
type StockGateway interface {
	RegisterExit(ctx context.Context, in dto.RegisterExitRequest) error
}

// Notifier puerto hacia el notification-service. La entrega y los reintentos
// son responsabilidad del colaborador; acá solo importa el despacho.
type Notifier interface {
	Send(ctx context.Context, in dto.NotificationRequest) error
}
