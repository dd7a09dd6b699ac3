package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ruanmp/livraria-pos/internal/application/auth"
	"github.com/ruanmp/livraria-pos/internal/application/checkout"
	"github.com/ruanmp/livraria-pos/internal/application/stock"
	"github.com/ruanmp/livraria-pos/internal/domain/entity"
	"github.com/ruanmp/livraria-pos/internal/domain/repository"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Carts        *checkout.CartRegistry
	FinalizeSale *checkout.FinalizeSaleUseCase
	Receipt      *checkout.ReceiptUseCase
	StockUC      *stock.UseCase
	BookRepo     repository.BookRepository
	CustomerRepo repository.CustomerRepository
	JWTSecret    string
	MovementPage int
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/logout", authHandler.Logout)

	// Catálogo (protegido)
	books := protected.Group("/books")
	bookHandler := NewBookHandler(deps.BookRepo)
	books.Post("/", bookHandler.Create)
	books.Get("/", bookHandler.List)
	books.Get("/:id", bookHandler.GetByID)

	// Clientes (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerRepo)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)

	// Carrinho da sessão (protegido)
	cart := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.Carts, deps.BookRepo, deps.CustomerRepo)
	cart.Get("/", cartHandler.Get)
	cart.Delete("/", cartHandler.Clear)
	cart.Post("/items", cartHandler.AddItem)
	cart.Delete("/items/:bookId", cartHandler.RemoveItem)
	cart.Put("/items/:bookId/quantity", cartHandler.UpdateQuantity)
	cart.Put("/items/:bookId/discount", cartHandler.UpdateDiscount)
	cart.Put("/customer", cartHandler.SetCustomer)

	// Checkout e vendas (protegido)
	checkoutHandler := NewCheckoutHandler(deps.FinalizeSale, deps.Receipt, deps.Carts)
	protected.Post("/checkout", checkoutHandler.Finalize)
	protected.Get("/sales/:id", checkoutHandler.GetSale)
	protected.Get("/sales/:id/receipt", checkoutHandler.DownloadReceipt)

	// Estoque (protegido; ajustes exigem admin)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.MovementPage)
	stockGroup.Post("/movements", stockHandler.RegisterMovement)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Post("/adjustments", RequireRole(entity.RoleAdmin), stockHandler.Adjust)
	stockGroup.Post("/restock", stockHandler.Restock)
}
