package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-inventario/internal/application/auth"
	"github.com/tu-usuario/pos-inventario/internal/application/authz"
	"github.com/tu-usuario/pos-inventario/internal/application/reports"
	"github.com/tu-usuario/pos-inventario/internal/application/sales"
	"github.com/tu-usuario/pos-inventario/internal/application/usecase"
	"github.com/tu-usuario/pos-inventario/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ProductUC *usecase.ProductUseCase
	SaleUC    *sales.SaleUseCase
	ReportUC  *reports.ReportUseCase
	ReportPDF ReportPDFGenerator
	AuthCfg   config.AuthConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público; logout es idempotente y no requiere sesión vigente)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.AuthCfg)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (requieren cookie de sesión válida)
	protected := api.Group("/", SessionMiddleware(deps.AuthUC, deps.AuthCfg.SessionCookie))

	protected.Get("/auth/me", authHandler.Me)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.SaleUC)
	products.Get("/", RequirePermission(authz.ProductRead), productHandler.List)
	products.Get("/:id", RequirePermission(authz.ProductRead), productHandler.Get)
	products.Post("/", RequirePermission(authz.ProductWrite), productHandler.Create)
	products.Put("/:id", RequirePermission(authz.ProductWrite), productHandler.Update)
	products.Delete("/:id", RequirePermission(authz.ProductWrite), productHandler.Delete)
	products.Post("/:id/deduct", RequirePermission(authz.StockDeduct), productHandler.Deduct)

	// Sales
	salesHandler := NewSalesHandler(deps.SaleUC)
	protected.Post("/sales", RequirePermission(authz.SaleCreate), salesHandler.Create)

	// Reports
	reportHandler := NewReportHandler(deps.ReportUC, deps.ReportPDF)
	reportsGroup := protected.Group("/reports", RequirePermission(authz.ReportRead))
	reportsGroup.Get("/:period", reportHandler.Get)
	reportsGroup.Get("/:period/pdf", reportHandler.GetPDF)
}
