package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mercadotech/mercado-api/internal/application/dto"
	"github.com/mercadotech/mercado-api/internal/application/sales"
	"github.com/mercadotech/mercado-api/internal/domain"
	"github.com/mercadotech/mercado-api/internal/domain/entity"
)

// SalesHandler maneja las peticiones HTTP de ventas (protegido).
type SalesHandler struct {
	uc *sales.OrchestratorUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.OrchestratorUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// RegisterSale godoc
// @Summary      Registrar venda com baixa automática de estoque
// @Tags         vendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "produto_id, quantidade, valor_unitario"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /v1/vendas [post]
func (h *SalesHandler) RegisterSale(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	sale, err := h.uc.RegisterSale(c.Context(), sales.SaleInput{
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		OccurredAt: in.OccurredAt,
		Note:       in.Note,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
		}
		if errors.Is(err, domain.ErrSaleRollback) {
			// A venda local foi revertida; o caller precisa saber que a venda NÃO existe.
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SALE_ROLLBACK", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// SalesInPeriod godoc
// @Summary      Relatório de vendas por período
// @Tags         vendas
// @Security     Bearer
// @Produce      json
// @Param        data_inicio  query  string  true  "RFC 3339"
// @Param        data_fim     query  string  true  "RFC 3339"
// @Success      200  {array}   dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /v1/vendas [get]
func (h *SalesHandler) SalesInPeriod(c *fiber.Ctx) error {
	start, err1 := time.Parse(time.RFC3339, c.Query("data_inicio"))
	end, err2 := time.Parse(time.RFC3339, c.Query("data_fim"))
	if err1 != nil || err2 != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "data_inicio e data_fim devem ser RFC 3339"})
	}
	list, err := h.uc.SalesInPeriod(c.Context(), start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toSaleResponses(list))
}

// SalesForProduct godoc
// @Summary      Histórico de vendas de um produto
// @Tags         vendas
// @Security     Bearer
// @Produce      json
// @Param        produtoId  path  string  true  "ID do produto"
// @Success      200  {array}  dto.SaleResponse
// @Router       /v1/vendas/produto/{produtoId} [get]
func (h *SalesHandler) SalesForProduct(c *fiber.Ctx) error {
	list, err := h.uc.SalesForProduct(c.Context(), c.Params("produtoId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toSaleResponses(list))
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:         s.ID,
		ProductID:  s.ProductID,
		Quantity:   s.Quantity,
		UnitPrice:  s.UnitPrice,
		TotalPrice: s.TotalPrice,
		OccurredAt: s.OccurredAt,
		Note:       s.Note,
	}
}

func toSaleResponses(list []*entity.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out
}
