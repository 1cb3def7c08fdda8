package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	"github.com/jhoicas/biocol-import-api/internal/application/usecase"
	"github.com/jhoicas/biocol-import-api/pkg/logger"
)

// ShipmentHandler embarques, status do kanban e histórico (protegido).
type ShipmentHandler struct {
	uc  *usecase.ShipmentUseCase
	log *logger.Logger
}

// NewShipmentHandler constrói o handler.
func NewShipmentHandler(uc *usecase.ShipmentUseCase, log *logger.Logger) *ShipmentHandler {
	return &ShipmentHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar embarques
// @Tags         embarques
// @Security     Bearer
// @Produce      json
// @Param        business_unit  query  string  false  "CEARA | SANTA_CATARINA"
// @Param        status         query  string  false  "Status do kanban"
// @Param        import_type    query  string  false  "CONTA_PROPRIA | VIA_TRADE"
// @Param        search         query  string  false  "Referência, armador ou exportador"
// @Param        page           query  int     false  "Página"  default(1)
// @Param        limit          query  int     false  "Limite"  default(10)
// @Success      200  {object}  dto.ShipmentListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/embarques [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	var in dto.ShipmentFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar embarque
// @Tags         embarques
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateShipmentRequest  true  "Dados do embarque"
// @Success      201   {object}  dto.ShipmentDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/embarques [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obter embarque com invoices
// @Tags         embarques
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID do embarque"
// @Success      200  {object}  dto.ShipmentDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/embarques/{id} [get]
func (h *ShipmentHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar embarque
// @Description  Atualização parcial; campos ausentes não mudam.
// @Tags         embarques
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID do embarque"
// @Param        body  body      dto.UpdateShipmentRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.ShipmentDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/embarques/{id} [put]
func (h *ShipmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover embarque
// @Description  Bloqueado (409) se o embarque já tiver D.A.
// @Tags         embarques
// @Security     Bearer
// @Param        id   path  string  true  "ID do embarque"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/embarques/{id} [delete]
func (h *ShipmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeStatus godoc
// @Summary      Mover embarque no kanban
// @Tags         embarques
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "ID do embarque"
// @Param        body  body      dto.ChangeStatusRequest  true  "Novo status"
// @Success      200   {object}  dto.ShipmentDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/embarques/{id}/status [patch]
func (h *ShipmentHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Histórico de status do embarque
// @Tags         embarques
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID do embarque"
// @Success      200  {array}   dto.StatusChangeDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/embarques/{id}/historico [get]
func (h *ShipmentHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Statuses godoc
// @Summary      Colunas do kanban
// @Tags         embarques
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StatusOptionDTO
// @Router       /api/status [get]
func (h *ShipmentHandler) Statuses(c *fiber.Ctx) error {
	return c.JSON(h.uc.Statuses())
}
