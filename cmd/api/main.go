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
	appanalytics "github.com/jhoicas/biocol-import-api/internal/application/analytics"
	"github.com/jhoicas/biocol-import-api/internal/application/auth"
	"github.com/jhoicas/biocol-import-api/internal/application/entreposto"
	"github.com/jhoicas/biocol-import-api/internal/application/usecase"
	"github.com/jhoicas/biocol-import-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/biocol-import-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/biocol-import-api/internal/interfaces/http"
	"github.com/jhoicas/biocol-import-api/pkg/clock"
	"github.com/jhoicas/biocol-import-api/pkg/config"
	"github.com/jhoicas/biocol-import-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicação")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("armazenamento")
	}
	defer st.close()

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("fuso de negócio")
	}
	clk := clock.New(loc)
	prom := metrics.NewPrometheus()
	receipts := infrapdf.NewReceiptGenerator("Biocol Importação")

	admissionUC := entreposto.NewAdmissionUseCase(st.tx, st.admissions, st.shipments, st.invoices, prom, log, clk)
	withdrawalUC := entreposto.NewWithdrawalUseCase(st.tx, st.admissions, st.withdrawals, receipts, prom, log, clk)
	shipmentUC := usecase.NewShipmentUseCase(st.tx, st.shipments, st.history, st.invoices, st.references, clk)
	invoiceUC := usecase.NewInvoiceUseCase(st.tx, st.invoices, st.shipments, clk)
	referenceUC := usecase.NewReferenceUseCase(st.references, clk)
	dashboardUC := appanalytics.NewDashboardUseCase(st.dashboard, clk)

	authUC, err := auth.NewAuthUseCase(
		auth.DemoUser{Email: cfg.Auth.DemoEmail, Password: cfg.Auth.DemoPassword, Name: cfg.Auth.DemoName},
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("auth")
	}
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vazio: login vai falhar até ser configurado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Biocol Import API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AdmissionUC:  admissionUC,
		WithdrawalUC: withdrawalUC,
		ShipmentUC:   shipmentUC,
		InvoiceUC:    invoiceUC,
		ReferenceUC:  referenceUC,
		DashboardUC:  dashboardUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log,
		Metrics:      prom.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, fechando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
