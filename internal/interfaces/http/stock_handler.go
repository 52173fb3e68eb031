package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mercadotech/mercado-api/internal/application/dto"
	"github.com/mercadotech/mercado-api/internal/application/stock"
	"github.com/mercadotech/mercado-api/internal/domain"
	"github.com/mercadotech/mercado-api/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del ledger de estoque (protegido).
type StockHandler struct {
	uc *stock.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.LedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// RegisterEntry godoc
// @Summary      Registrar entrada de estoque
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterEntryRequest  true  "produto_id, quantidade, custo_unitario"
// @Success      201   {object}  dto.StockEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /estoque/entrada [post]
func (h *StockHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.RegisterEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	entry, err := h.uc.RegisterEntry(c.Context(), stock.EntryInput{
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		OccurredAt: in.OccurredAt,
		Note:       in.Note,
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toEntryResponse(entry))
}

// RegisterExit godoc
// @Summary      Registrar saída de estoque
// @Description  Também é a operação remota consumida por vendas e validade.
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterExitRequest  true  "produto_id, quantidade, tipo_saida"
// @Success      201   {object}  dto.StockExitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /estoque/saida [post]
func (h *StockHandler) RegisterExit(c *fiber.Ctx) error {
	var in dto.RegisterExitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	exit, err := h.uc.RegisterExit(c.Context(), stock.ExitInput{
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		ExitKind:   in.ExitKind,
		OccurredAt: in.OccurredAt,
		Note:       in.Note,
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toExitResponse(exit))
}

// GetBalance godoc
// @Summary      Saldo atual de um produto
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        produtoId  path  string  true  "ID do produto"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /estoque/{produtoId} [get]
func (h *StockHandler) GetBalance(c *fiber.Ctx) error {
	productID := c.Params("produtoId")
	product, err := h.uc.ProductByID(c.Context(), productID)
	if err != nil {
		return stockError(c, err)
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "produto não encontrado"})
	}
	balance, err := h.uc.Balance(c.Context(), productID)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(dto.BalanceResponse{ProductID: productID, Balance: balance})
}

// stockError mapea errores del ledger a HTTP.
func stockError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "produto não encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "saldo insuficiente"})
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "REMOTE_UNAVAILABLE", Message: "serviço remoto indisponível"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toEntryResponse(e *entity.StockEntry) dto.StockEntryResponse {
	return dto.StockEntryResponse{
		ID:         e.ID,
		ProductID:  e.ProductID,
		Quantity:   e.Quantity,
		UnitCost:   e.UnitCost,
		OccurredAt: e.OccurredAt,
		Note:       e.Note,
	}
}

func toExitResponse(e *entity.StockExit) dto.StockExitResponse {
	return dto.StockExitResponse{
		ID:         e.ID,
		ProductID:  e.ProductID,
		Quantity:   e.Quantity,
		ExitKind:   e.ExitKind,
		OccurredAt: e.OccurredAt,
		Note:       e.Note,
	}
}
