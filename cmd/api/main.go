package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gkdnizduru/finans-proje/internal/application/analytics"
	"github.com/gkdnizduru/finans-proje/internal/application/auth"
	"github.com/gkdnizduru/finans-proje/internal/application/billing"
	"github.com/gkdnizduru/finans-proje/internal/application/cached"
	"github.com/gkdnizduru/finans-proje/internal/application/ports"
	"github.com/gkdnizduru/finans-proje/internal/application/travel"
	"github.com/gkdnizduru/finans-proje/internal/application/usecase"
	infracache "github.com/gkdnizduru/finans-proje/internal/infrastructure/cache"
	infrapdf "github.com/gkdnizduru/finans-proje/internal/infrastructure/pdf"
	"github.com/gkdnizduru/finans-proje/internal/infrastructure/postgres"
	"github.com/gkdnizduru/finans-proje/internal/infrastructure/storage"
	httpRouter "github.com/gkdnizduru/finans-proje/internal/interfaces/http"
	"github.com/gkdnizduru/finans-proje/pkg/config"
	"github.com/gkdnizduru/finans-proje/pkg/logger"
	"github.com/gkdnizduru/finans-proje/pkg/metrics"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de consultas: Redis si está configurado, si no se consulta siempre la base.
	var queryCache ports.QueryCache = infracache.NoopQueryCache{}
	if cfg.Redis.Addr != "" {
		rc := infracache.NewRedisQueryCache(cfg.Redis)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, caché deshabilitada")
			_ = rc.Close()
		} else {
			queryCache = rc
			defer rc.Close()
			log.Info().Str("addr", cfg.Redis.Addr).Msg("caché redis activa")
		}
	}
	reader := cached.NewReader(queryCache)

	// Almacenamiento de objetos (logos y adjuntos). nil = deshabilitado.
	var objectStorage ports.ObjectStorage
	if cfg.Storage.Enabled() {
		s3, err := storage.NewS3ObjectStorage(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("configurar almacenamiento S3")
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			log.Fatal().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("crear bucket")
		}
		objectStorage = s3
	} else {
		log.Warn().Msg("almacenamiento no configurado, logos y adjuntos deshabilitados")
	}

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)
	attachmentRepo := postgres.NewAttachmentRepository(pool)
	dealRepo := postgres.NewDealRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	airlineRepo := postgres.NewAirlineRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)
	hotelRepo := postgres.NewHotelReservationRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    10 * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerFile,
			Path:     "docs",
			Title:    "Finans API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CompanyUC:     usecase.NewCompanyUseCase(companyRepo, objectStorage),
		CustomerUC:    usecase.NewCustomerUseCase(customerRepo, noteRepo, attachmentRepo, txRunner, objectStorage, reader),
		DealUC:        usecase.NewDealUseCase(dealRepo, reader),
		ActivityUC:    usecase.NewActivityUseCase(activityRepo, reader),
		ProductUC:     usecase.NewProductUseCase(productRepo, reader),
		CategoryUC:    usecase.NewCategoryUseCase(categoryRepo, reader),
		AirlineUC:     usecase.NewAirlineUseCase(airlineRepo, reader),
		AccountUC:     usecase.NewAccountUseCase(accountRepo, reader),
		TransactionUC: usecase.NewTransactionUseCase(transactionRepo, categoryRepo, reader),
		InvoiceUC:     billing.NewInvoiceUseCase(invoiceRepo, customerRepo, txRunner, reader),
		QuoteUC:       billing.NewQuoteUseCase(quoteRepo, customerRepo, txRunner, reader),
		PDFUC:         billing.NewPDFUseCase(invoiceRepo, quoteRepo, companyRepo, customerRepo, pdfGenerator, cfg.App.PublicURL),
		PublicUC:      billing.NewPublicUseCase(invoiceRepo, quoteRepo, customerRepo, companyRepo, reader),
		TicketUC:      travel.NewTicketUseCase(ticketRepo, customerRepo, txRunner, reader),
		HotelUC:       travel.NewHotelUseCase(hotelRepo, customerRepo, reader),
		PNRUC:         travel.NewPNRUseCase(airlineRepo),
		DashboardUC:   analytics.NewDashboardUseCase(analyticsRepo, reader),
		JWTSecret:     cfg.JWT.Secret,
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
