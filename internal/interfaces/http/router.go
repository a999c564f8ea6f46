package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/sales"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	UserUC       *usecase.UserUseCase
	AuthUC       *auth.AuthUseCase
	CreateSaleUC *sales.CreateSaleUseCase
	ReceiptUC    *sales.ReceiptUseCase
	LoginLimiter *RateLimiter // nil desactiva el límite de login
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.AuthUC)

	// Login (público, con límite por IP)
	authHandler := NewAuthHandler(deps.AuthUC)
	if deps.LoginLimiter != nil {
		api.Post("/login", deps.LoginLimiter.Middleware(), authHandler.Login)
	} else {
		api.Post("/login", authHandler.Login)
	}

	// Catálogo (público)
	products := api.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Usuarios
	users := api.Group("/usuarios")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Ventas: crear y descargar comprobante requieren Bearer Token
	ventas := api.Group("/ventas")
	saleHandler := NewSaleHandler(deps.CreateSaleUC, deps.ReceiptUC)
	ventas.Get("/", saleHandler.List)
	ventas.Post("/", requireAuth, saleHandler.Create)
	ventas.Get("/:id", saleHandler.GetByID)
	ventas.Get("/:id/comprobante", requireAuth, saleHandler.Receipt)
}
