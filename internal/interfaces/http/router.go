package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/salmichou-pos/internal/application/auth"
	"github.com/jhoicas/salmichou-pos/internal/application/exchange"
	"github.com/jhoicas/salmichou-pos/internal/application/usecase"
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	CategoryUC    *usecase.CategoryUseCase
	SaleUC        *usecase.SaleUseCase
	ReceiptUC     *usecase.ReceiptUseCase
	StatisticsUC  *usecase.StatisticsUseCase
	PreferencesUC *usecase.PreferencesUseCase
	MaintenanceUC *usecase.MaintenanceUseCase
	Exchange      *exchange.Manager
	Scheduler     *exchange.Scheduler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	maintenanceHandler := NewMaintenanceHandler(deps.MaintenanceUC)
	app.Get("/health", maintenanceHandler.Health)

	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y sesión vigente)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	adminOnly := RequireRole(entity.RoleAdmin)

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequirePermission(entity.PermViewUsers), userHandler.List)
	users.Get("/roles", RequirePermission(entity.PermViewUsers), userHandler.Roles)
	users.Get("/:id", RequirePermission(entity.PermViewUsers), userHandler.GetByID)
	users.Post("/", RequirePermission(entity.PermManageUsers), userHandler.Create)
	users.Put("/:id", RequirePermission(entity.PermManageUsers), userHandler.Update)
	users.Delete("/:id", RequirePermission(entity.PermManageUsers), userHandler.Delete)
	users.Post("/:id/toggle", RequirePermission(entity.PermManageUsers), userHandler.ToggleStatus)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", RequirePermission(entity.PermViewProducts), productHandler.List)
	products.Get("/:id", RequirePermission(entity.PermViewProducts), productHandler.GetByID)
	products.Post("/", RequirePermission(entity.PermManageProducts), productHandler.Create)
	products.Put("/:id", RequirePermission(entity.PermManageProducts), productHandler.Update)
	products.Post("/:id/stock", RequirePermission(entity.PermManageProducts), productHandler.AdjustStock)
	products.Delete("/:id", RequirePermission(entity.PermManageProducts), productHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", RequirePermission(entity.PermViewProducts), categoryHandler.List)
	categories.Post("/", RequirePermission(entity.PermManageCategories), categoryHandler.Create)
	categories.Put("/:id", RequirePermission(entity.PermManageCategories), categoryHandler.Update)
	categories.Delete("/:id", RequirePermission(entity.PermManageCategories), categoryHandler.Delete)

	// Sales
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC)
	sales.Get("/", RequirePermission(entity.PermViewSales), saleHandler.List)
	sales.Get("/:id", RequirePermission(entity.PermViewSales), saleHandler.GetByID)
	sales.Get("/:id/receipt", RequirePermission(entity.PermViewSales), saleHandler.Receipt)
	sales.Post("/", RequirePermission(entity.PermCreateSales), saleHandler.Create)

	// Statistics
	statisticsHandler := NewStatisticsHandler(deps.StatisticsUC)
	protected.Get("/statistics", RequirePermission(entity.PermViewStats), statisticsHandler.Get)

	// Preferences (lectura para cualquier sesión, escritura solo admin)
	prefs := protected.Group("/preferences")
	prefsHandler := NewPreferencesHandler(deps.PreferencesUC)
	prefs.Get("/", prefsHandler.Get)
	prefs.Put("/", adminOnly, prefsHandler.Update)
	prefs.Get("/export", adminOnly, prefsHandler.Export)
	prefs.Post("/import", adminOnly, prefsHandler.Import)

	// Export / import / respaldos / reset (solo admin)
	exchangeHandler := NewExchangeHandler(deps.Exchange, deps.Scheduler)
	protected.Get("/export/:type", adminOnly, exchangeHandler.Export)
	protected.Post("/import", adminOnly, exchangeHandler.Import)
	protected.Get("/backups", adminOnly, exchangeHandler.BackupStatus)
	protected.Post("/backups", adminOnly, exchangeHandler.BackupNow)
	protected.Post("/reset", adminOnly, maintenanceHandler.Reset)
}
