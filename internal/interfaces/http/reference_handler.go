package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	"github.com/jhoicas/biocol-import-api/internal/application/usecase"
	"github.com/jhoicas/biocol-import-api/pkg/logger"
)

// ReferenceHandler cadastros auxiliares: exportadores, armadores, portos, moedas e unidades.
type ReferenceHandler struct {
	uc  *usecase.ReferenceUseCase
	log *logger.Logger
}

// NewReferenceHandler constrói o handler.
func NewReferenceHandler(uc *usecase.ReferenceUseCase, log *logger.Logger) *ReferenceHandler {
	return &ReferenceHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar cadastro
// @Tags         cadastros
// @Security     Bearer
// @Produce      json
// @Param        kind              path   string  true   "exportadores | armadores | portos | moedas | unidades"
// @Param        include_inactive  query  bool    false  "Incluir inativos"
// @Success      200  {array}   dto.ReferenceDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cadastros/{kind} [get]
func (h *ReferenceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Params("kind"), c.QueryBool("include_inactive"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar item de cadastro
// @Tags         cadastros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path      string                true  "Tipo de cadastro"
// @Param        body  body      dto.ReferenceRequest  true  "code, name"
// @Success      201   {object}  dto.ReferenceDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cadastros/{kind} [post]
func (h *ReferenceHandler) Create(c *fiber.Ctx) error {
	var in dto.ReferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), c.Params("kind"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Atualizar item de cadastro
// @Tags         cadastros
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path      string                true  "Tipo de cadastro"
// @Param        id    path      string                true  "ID do item"
// @Param        body  body      dto.ReferenceRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.ReferenceDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cadastros/{kind}/{id} [put]
func (h *ReferenceHandler) Update(c *fiber.Ctx) error {
	var in dto.ReferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("kind"), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Inativar item de cadastro
// @Description  O item continua referenciado pelos embarques antigos; só sai das listagens.
// @Tags         cadastros
// @Security     Bearer
// @Param        kind  path  string  true  "Tipo de cadastro"
// @Param        id    path  string  true  "ID do item"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cadastros/{kind}/{id} [delete]
func (h *ReferenceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("kind"), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
