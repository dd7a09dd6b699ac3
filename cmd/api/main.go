package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/ruanmp/livraria-pos/internal/application/auth"
	"github.com/ruanmp/livraria-pos/internal/application/checkout"
	"github.com/ruanmp/livraria-pos/internal/application/stock"
	infrapdf "github.com/ruanmp/livraria-pos/internal/infrastructure/pdf"
	"github.com/ruanmp/livraria-pos/internal/infrastructure/postgres"
	httpRouter "github.com/ruanmp/livraria-pos/internal/interfaces/http"
	"github.com/ruanmp/livraria-pos/pkg/config"
	"github.com/ruanmp/livraria-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	bookRepo := postgres.NewBookRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	carts := checkout.NewCartRegistry()
	stockUC := stock.NewUseCase(txRunner, bookRepo, movRepo)
	finalizeSaleUC := checkout.NewFinalizeSaleUseCase(txRunner, stockUC, bookRepo, saleRepo, log)

	// Cupom não fiscal em PDF
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.POS.StoreName, cfg.POS.ReceiptFooter)
	receiptUC := checkout.NewReceiptUseCase(saleRepo, customerRepo, receiptGenerator)

	authUC := auth.NewAuthUseCase(userRepo, carts, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Livraria POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Carts:        carts,
		FinalizeSale: finalizeSaleUC,
		Receipt:      receiptUC,
		StockUC:      stockUC,
		BookRepo:     bookRepo,
		CustomerRepo: customerRepo,
		JWTSecret:    cfg.JWT.Secret,
		MovementPage: cfg.POS.MovementPage,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
