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
	"github.com/spf13/afero"

	"github.com/jhoicas/salmichou-pos/internal/application/auth"
	"github.com/jhoicas/salmichou-pos/internal/application/exchange"
	"github.com/jhoicas/salmichou-pos/internal/application/ports"
	"github.com/jhoicas/salmichou-pos/internal/application/store"
	"github.com/jhoicas/salmichou-pos/internal/application/usecase"
	infrapdf "github.com/jhoicas/salmichou-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/persistence"
	"github.com/jhoicas/salmichou-pos/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/salmichou-pos/internal/interfaces/http"
	"github.com/jhoicas/salmichou-pos/pkg/config"
	"github.com/jhoicas/salmichou-pos/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	backend, err := storage.Open(ctx, cfg, log.Component("storage"), storage.Options{})
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	st := store.New(backend.Gateway, log.Component("store"))
	if err := st.Open(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar documento")
	}
	prefsRepo := persistence.NewPreferencesRepository(backend.Preferences, log.Component("preferences"))

	authUC := auth.NewAuthUseCase(
		backend.SessionStorage,
		auth.NewStoreDirectory(st),
		prefsRepo,
		auth.JWTConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer},
		log.Component("auth"),
		time.Now,
	)

	saleUC := usecase.NewSaleUseCase(st, time.Now)
	receiptUC := usecase.NewReceiptUseCase(saleUC, prefsRepo, infrapdf.NewMarotoReceiptGenerator(), ports.ShopInfo{
		Name:    cfg.Shop.Name,
		Phone:   cfg.Shop.Phone,
		Address: cfg.Shop.Address,
	})

	exchangeMgr := exchange.NewManager(st, log.Component("exchange"), time.Now)
	scheduler := exchange.NewScheduler(exchangeMgr, prefsRepo, afero.NewOsFs(), cfg.Storage.BackupDir, log.Component("backup"))
	go scheduler.Run(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    16 * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "SalmichouLayette API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(st, cfg.Security.PasswordScheme, time.Now),
		ProductUC:     usecase.NewProductUseCase(st, cfg.Shop.LowStockThreshold, time.Now),
		CategoryUC:    usecase.NewCategoryUseCase(st),
		SaleUC:        saleUC,
		ReceiptUC:     receiptUC,
		StatisticsUC:  usecase.NewStatisticsUseCase(st, cfg.Shop.LowStockThreshold),
		PreferencesUC: usecase.NewPreferencesUseCase(prefsRepo),
		MaintenanceUC: usecase.NewMaintenanceUseCase(st, log.Component("maintenance"), time.Now),
		Exchange:      exchangeMgr,
		Scheduler:     scheduler,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := st.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("guardado final del documento")
	}

	log.Info().Msg("aplicación detenida")
}
