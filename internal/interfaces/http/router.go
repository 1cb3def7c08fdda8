package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	appanalytics "github.com/jhoicas/biocol-import-api/internal/application/analytics"
	"github.com/jhoicas/biocol-import-api/internal/application/auth"
	"github.com/jhoicas/biocol-import-api/internal/application/entreposto"
	"github.com/jhoicas/biocol-import-api/internal/application/usecase"
	"github.com/jhoicas/biocol-import-api/internal/domain/entity"
	"github.com/jhoicas/biocol-import-api/pkg/logger"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AdmissionUC  *entreposto.AdmissionUseCase
	WithdrawalUC *entreposto.WithdrawalUseCase
	ShipmentUC   *usecase.ShipmentUseCase
	InvoiceUC    *usecase.InvoiceUseCase
	ReferenceUC  *usecase.ReferenceUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
	Log          *logger.Logger
	Metrics      http.Handler // opcional; nil desliga GET /metrics
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/auth/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Entreposto aduaneiro
	entrepostoHandler := NewEntrepostoHandler(deps.AdmissionUC, deps.WithdrawalUC, log)
	entrepostos := protected.Group("/entrepostos")
	entrepostos.Get("/", entrepostoHandler.List)
	entrepostos.Post("/", entrepostoHandler.Create)
	entrepostos.Get("/:id", entrepostoHandler.Get)
	entrepostos.Get("/:id/saldo", entrepostoHandler.Balance)
	entrepostos.Get("/:id/saldo/disponivel", entrepostoHandler.AvailableBalance)
	entrepostos.Get("/:id/retiradas", entrepostoHandler.Withdrawals)
	entrepostos.Post("/:id/retiradas", entrepostoHandler.Withdraw)
	entrepostos.Get("/:id/retiradas/:retiradaId/comprovante", entrepostoHandler.Receipt)

	// Embarques
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC, log)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, log)
	embarques := protected.Group("/embarques")
	embarques.Get("/", shipmentHandler.List)
	embarques.Post("/", shipmentHandler.Create)
	embarques.Get("/:id", shipmentHandler.Get)
	embarques.Put("/:id", shipmentHandler.Update)
	embarques.Delete("/:id", shipmentHandler.Delete)
	embarques.Patch("/:id/status", shipmentHandler.ChangeStatus)
	embarques.Get("/:id/historico", shipmentHandler.History)
	embarques.Get("/:id/invoices", invoiceHandler.ListByShipment)
	embarques.Post("/:id/invoices", invoiceHandler.Create)
	embarques.Get("/:id/entrepostos", entrepostoHandler.ByShipment)
	protected.Get("/status", shipmentHandler.Statuses)

	// Invoices
	invoices := protected.Group("/invoices")
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/itens", invoiceHandler.ListItems)
	invoices.Post("/:id/itens", invoiceHandler.AddItem)
	invoices.Put("/:invoiceId/itens/:itemId", invoiceHandler.UpdateItem)
	invoices.Delete("/:invoiceId/itens/:itemId", invoiceHandler.DeleteItem)

	// Cadastros: leitura para todos, escrita para admin e coordenador
	referenceHandler := NewReferenceHandler(deps.ReferenceUC, log)
	canEdit := RequireRole(entity.RoleAdmin, entity.RoleCoordinator)
	cadastros := protected.Group("/cadastros")
	cadastros.Get("/:kind", referenceHandler.List)
	cadastros.Post("/:kind", canEdit, referenceHandler.Create)
	cadastros.Put("/:kind/:id", canEdit, referenceHandler.Update)
	cadastros.Delete("/:kind/:id", canEdit, referenceHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/metrics", dashboardHandler.Metrics)
	dashboard.Get("/status-overview", dashboardHandler.StatusOverview)
	dashboard.Get("/proximas-acoes", dashboardHandler.UpcomingActions)
}
