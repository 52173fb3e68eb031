package httpclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mercadotech/mercado-api/internal/application/dto"
	"github.com/mercadotech/mercado-api/internal/application/validity"
	"github.com/mercadotech/mercado-api/internal/domain"
)

var _ validity.Notifier = (*NotificationClient)(nil)

// NotificationClient cliente HTTP del notification-service. La entrega en sí
// (reintentos, canales) es responsabilidad del colaborador remoto.
type NotificationClient struct {
	rc *resty.Client
}

// NewNotificationClient construye el cliente con base URL y timeout.
func NewNotificationClient(baseURL string, timeout time.Duration) *NotificationClient {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	return &NotificationClient{rc: rc}
}

// Send despacha POST /notifications.
func (c *NotificationClient) Send(ctx context.Context, in dto.NotificationRequest) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(in).
		Post("/notifications")
	if err != nil {
		return fmt.Errorf("%w: notification-service: %w", domain.ErrRemoteUnavailable, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("notification-service recusou o envio: status %d", resp.StatusCode())
	}
	return nil
}
