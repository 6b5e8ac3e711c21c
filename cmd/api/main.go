package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/farmacia-api/internal/application/auth"
	"github.com/jhoicas/farmacia-api/internal/application/billing"
	"github.com/jhoicas/farmacia-api/internal/application/reporting"
	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/internal/infrastructure/memory"
	"github.com/jhoicas/farmacia-api/internal/infrastructure/observability/metrics"
	"github.com/jhoicas/farmacia-api/internal/infrastructure/observability/tracing"
	infrapdf "github.com/jhoicas/farmacia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/farmacia-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/farmacia-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/farmacia-api/internal/interfaces/http"
	"github.com/jhoicas/farmacia-api/pkg/config"
	"github.com/jhoicas/farmacia-api/pkg/logger"

	_ "github.com/jhoicas/farmacia-api/docs"
)

// @title        Farmacia API
// @version      1.0
// @description  Back office de farmacia: usuarios, catálogo de medicamentos, facturación y reportes.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
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

	shutdownTracing, err := tracing.Init(ctx, log, cfg.App, cfg.Telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
	}

	healthChecks := map[string]func(context.Context) error{
		"database": pool.Ping,
	}

	// Lista de revocación: Redis si está configurado (compartida entre réplicas), si no en memoria.
	var revocations auth.TokenRevocationStore
	if cfg.Redis.URL != "" {
		rs, err := infraredis.NewTokenRevocationStore(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rs.Close()
		revocations = rs
		healthChecks["redis"] = rs.Ping
	} else {
		log.Warn().Msg("REDIS_URL vacío: la revocación de tokens es local al proceso")
		revocations = memory.NewTokenRevocationStore()
	}

	userRepo := postgres.NewUserRepository(pool)
	medicineRepo := postgres.NewMedicineRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, revocations, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Bootstrap.Enabled() {
		created, err := authUC.EnsureAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword, cfg.Bootstrap.AdminFullName)
		if err != nil {
			log.Fatal().Err(err).Msg("crear admin inicial")
		}
		if created {
			log.Audit("user.bootstrap").Str("username", cfg.Bootstrap.AdminUsername).Msg("admin inicial creado")
		}
	}

	var recorder billing.SalesRecorder
	if cfg.Telemetry.MetricsEnabled {
		recorder = metrics.SalesRecorder{}
	}
	createBillUC := billing.NewCreateBillUseCase(txRunner, billRepo, userRepo, recorder)

	// PDF: comprobante de venta
	receiptUC := billing.NewReceiptUseCase(billRepo, userRepo, medicineRepo,
		infrapdf.NewMarotoReceiptGenerator(cfg.App.Name))

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:           cfg.App.Name,
		MetricsEnabled: cfg.Telemetry.MetricsEnabled,
		Logger:         log,
		HealthChecks:   healthChecks,
	}, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     usecase.NewUserUseCase(userRepo),
		MedicineUC: usecase.NewMedicineUseCase(medicineRepo),
		BillingUC:  createBillUC,
		ReceiptUC:  receiptUC,
		ReportUC:   reporting.NewReportUseCase(reportRepo),
		JWTSecret:  cfg.JWT.Secret,
		Logger:     log,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Farmacia API",
	}))

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
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
