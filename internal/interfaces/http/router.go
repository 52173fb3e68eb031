package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mercadotech/mercado-api/internal/application/sales"
	"github.com/mercadotech/mercado-api/internal/application/stock"
	"github.com/mercadotech/mercado-api/internal/application/validity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC         *stock.LedgerUseCase
	SalesUC         *sales.OrchestratorUseCase
	ValidityUC      *validity.LifecycleUseCase
	AlertWindowDays int
	JWTSecret       string
}

// Router registra las rutas de la API. Todo llega autenticado: detrás del
// gateway vía headers X-Auth-*, o con Bearer JWT en despliegues sin gateway.
func Router(app *fiber.App, deps RouterDeps) {
	protected := app.Group("/", GatewayAuth(deps.JWTSecret))

	// Ledger de estoque
	estoque := protected.Group("/estoque")
	stockHandler := NewStockHandler(deps.StockUC)
	estoque.Post("/entrada", RequireRole("ADMIN", "ESTOQUISTA"), stockHandler.RegisterEntry)
	estoque.Post("/saida", RequireRole("ADMIN", "ESTOQUISTA", "VENDEDOR"), stockHandler.RegisterExit)
	estoque.Get("/:produtoId", stockHandler.GetBalance)

	// Vendas
	vendas := protected.Group("/v1/vendas")
	salesHandler := NewSalesHandler(deps.SalesUC)
	vendas.Post("/", RequireRole("ADMIN", "VENDEDOR"), salesHandler.RegisterSale)
	vendas.Get("/", salesHandler.SalesInPeriod)
	vendas.Get("/produto/:produtoId", salesHandler.SalesForProduct)

	// Lotes de validade
	validade := protected.Group("/validade")
	validityHandler := NewValidityHandler(deps.ValidityUC, deps.AlertWindowDays)
	validade.Post("/registro", RequireRole("ADMIN", "ESTOQUISTA"), validityHandler.RegisterLot)
	validade.Get("/vencendo", validityHandler.LotsExpiring)
	validade.Post("/perda", RequireRole("ADMIN", "ESTOQUISTA"), validityHandler.WriteOffManual)
	validade.Post("/checar-vencidos-manual", RequireRole("ADMIN"), validityHandler.SweepExpiredManual)
	validade.Post("/checar-alertas-manual", RequireRole("ADMIN"), validityHandler.SweepNearExpiryManual)
}
