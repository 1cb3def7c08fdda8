package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/biocol-import-api/internal/application/analytics"
	"github.com/jhoicas/biocol-import-api/pkg/logger"
)

// DashboardHandler endpoints do painel inicial.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// Metrics godoc
// @Summary      Indicadores do painel
// @Description  Embarques (total, em andamento, atrasados, frete) e D.A. (ativas, vencidas, finalizadas, valor em entreposto).
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardMetricsDTO
// @Router       /api/dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	out, err := h.uc.Metrics(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// StatusOverview godoc
// @Summary      Embarques por coluna do kanban
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StatusCountDTO
// @Router       /api/dashboard/status-overview [get]
func (h *DashboardHandler) StatusOverview(c *fiber.Ctx) error {
	out, err := h.uc.StatusCounts(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpcomingActions devolve os vencimentos de D.A. (30 dias) e chegadas (7 dias),
// ordenados pelos dias restantes.
// GET /api/dashboard/proximas-acoes
func (h *DashboardHandler) UpcomingActions(c *fiber.Ctx) error {
	out, err := h.uc.UpcomingActions(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
