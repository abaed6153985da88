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
	appinventory "github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	appmovement "github.com/jhoicas/inventario-tiendas/internal/application/movement"
	"github.com/jhoicas/inventario-tiendas/internal/application/usecase"
	"github.com/jhoicas/inventario-tiendas/internal/domain/store"
	infrapdf "github.com/jhoicas/inventario-tiendas/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-tiendas/internal/interfaces/http"
	"github.com/jhoicas/inventario-tiendas/pkg/config"
	"github.com/jhoicas/inventario-tiendas/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Int("stores", len(cfg.Inventory.StoreIDs)).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	storeDirectory := store.NewDirectory(cfg.Inventory.StoreIDs)
	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool, log)

	productUC := usecase.NewProductUseCase(productRepo)
	inventoryUC := appinventory.NewUseCase(txRunner, inventoryRepo, productRepo, storeDirectory)
	transferUC := appinventory.NewTransferUseCase(txRunner, productRepo, storeDirectory, cfg.Inventory.DefaultMinStock)
	movementUC := appmovement.NewUseCase(movementRepo, storeDirectory)
	reportPDF := infrapdf.NewLowStockReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Tiendas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		InventoryUC: inventoryUC,
		TransferUC:  transferUC,
		MovementUC:  movementUC,
		ReportPDF:   reportPDF,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
