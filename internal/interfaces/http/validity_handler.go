package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mercadotech/mercado-api/internal/application/dto"
	"github.com/mercadotech/mercado-api/internal/application/validity"
	"github.com/mercadotech/mercado-api/internal/domain"
	"github.com/mercadotech/mercado-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// ValidityHandler maneja las peticiones HTTP de lotes de validade (protegido).
type ValidityHandler struct {
	uc              *validity.LifecycleUseCase
	alertWindowDays int
}

// NewValidityHandler construye el handler.
func NewValidityHandler(uc *validity.LifecycleUseCase, alertWindowDays int) *ValidityHandler {
	return &ValidityHandler{uc: uc, alertWindowDays: alertWindowDays}
}

// RegisterLot godoc
// @Summary      Registrar lote de validade
// @Tags         validade
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterLotRequest  true  "produto_id, data_entrada_lote, data_validade, quantidade"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /validade/registro [post]
func (h *ValidityHandler) RegisterLot(c *fiber.Ctx) error {
	var in dto.RegisterLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	entryDate, err1 := time.Parse(dateLayout, in.LotEntryDate)
	expiryDate, err2 := time.Parse(dateLayout, in.ExpiryDate)
	if err1 != nil || err2 != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datas devem ser YYYY-MM-DD"})
	}
	lot, err := h.uc.RegisterLot(c.Context(), validity.LotInput{
		ProductID:    in.ProductID,
		LotEntryDate: entryDate,
		ExpiryDate:   expiryDate,
		Quantity:     in.Quantity,
		Status:       entity.LotStatus(in.Status),
		Note:         in.Note,
	})
	if err != nil {
		return validityError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLotResponse(lot))
}

// LotsExpiring godoc
// @Summary      Lotes ativos vencendo nos próximos dias
// @Tags         validade
// @Security     Bearer
// @Produce      json
// @Param        dias  query  int  false  "janela em dias (default 7)"
// @Success      200  {array}  dto.LotResponse
// @Router       /validade/vencendo [get]
func (h *ValidityHandler) LotsExpiring(c *fiber.Ctx) error {
	days := c.QueryInt("dias", h.alertWindowDays)
	lots, err := h.uc.LotsExpiring(c.Context(), days)
	if err != nil {
		return validityError(c, err)
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, lot := range lots {
		out = append(out, toLotResponse(lot))
	}
	return c.JSON(out)
}

// WriteOffManual godoc
// @Summary      Perda manual de um lote
// @Description  Dá baixa no estoque e transiciona o lote para BAIXADO.
// @Tags         validade
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WriteOffRequest  true  "lote_id"
// @Success      200   {object}  dto.LotResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /validade/perda [post]
func (h *ValidityHandler) WriteOffManual(c *fiber.Ctx) error {
	var in dto.WriteOffRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	lot, err := h.uc.WriteOff(c.Context(), in.LotID, entity.WriteOffReasonManual, in.Note)
	if err != nil {
		return validityError(c, err)
	}
	return c.JSON(toLotResponse(lot))
}

// SweepExpiredManual godoc
// @Summary      Disparo manual do barrido de lotes vencidos
// @Tags         validade
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /validade/checar-vencidos-manual [post]
func (h *ValidityHandler) SweepExpiredManual(c *fiber.Ctx) error {
	count, err := h.uc.SweepExpired(c.Context())
	if err != nil {
		return validityError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "barrido de lotes vencidos concluído", Count: count})
}

// SweepNearExpiryManual godoc
// @Summary      Disparo manual do barrido de alertas de vencimento
// @Tags         validade
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /validade/checar-alertas-manual [post]
func (h *ValidityHandler) SweepNearExpiryManual(c *fiber.Ctx) error {
	count, err := h.uc.SweepNearExpiry(c.Context(), h.alertWindowDays)
	if err != nil {
		return validityError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "barrido de alertas concluído", Count: count})
}

// validityError mapea errores del ciclo de vida de lotes a HTTP.
func validityError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	case errors.Is(err, domain.ErrLotNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LOT_NOT_FOUND", Message: "lote não encontrado"})
	case errors.Is(err, domain.ErrInvalidLotState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_LOT_STATE", Message: "lote em status inválido para a operação"})
	case errors.Is(err, domain.ErrWriteOffFailed), errors.Is(err, domain.ErrRemoteUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "WRITE_OFF_FAILED", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toLotResponse(l *entity.ExpirationLot) dto.LotResponse {
	return dto.LotResponse{
		ID:           l.ID,
		ProductID:    l.ProductID,
		LotEntryDate: l.LotEntryDate.Format(dateLayout),
		ExpiryDate:   l.ExpiryDate.Format(dateLayout),
		Quantity:     l.Quantity,
		Status:       string(l.Status),
		RegisteredAt: l.RegisteredAt,
		Note:         l.Note,
	}
}
