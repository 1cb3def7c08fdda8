package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	"github.com/jhoicas/biocol-import-api/internal/application/usecase"
	"github.com/jhoicas/biocol-import-api/pkg/logger"
)

// InvoiceHandler invoices comerciais do embarque e seus itens (protegido).
type InvoiceHandler struct {
	uc  *usecase.InvoiceUseCase
	log *logger.Logger
}

// NewInvoiceHandler constrói o handler.
func NewInvoiceHandler(uc *usecase.InvoiceUseCase, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, log: log}
}

// ListByShipment godoc
// @Summary      Invoices do embarque
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID do embarque"
// @Success      200  {array}   dto.InvoiceDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/embarques/{id}/invoices [get]
func (h *InvoiceHandler) ListByShipment(c *fiber.Ctx) error {
	out, err := h.uc.ListByShipment(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Criar invoice no embarque
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID do embarque"
// @Param        body  body      dto.CreateInvoiceRequest  true  "Invoice com itens"
// @Success      201   {object}  dto.InvoiceDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/embarques/{id}/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter invoice por ID
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID da invoice"
// @Success      200  {object}  dto.InvoiceDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar cabeçalho da invoice
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID da invoice"
// @Param        body  body      dto.UpdateInvoiceRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.InvoiceDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
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
// @Summary      Remover invoice
// @Tags         invoices
// @Security     Bearer
// @Param        id   path  string  true  "ID da invoice"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListItems godoc
// @Summary      Itens da invoice
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID da invoice"
// @Success      200  {array}   dto.InvoiceItemDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/itens [get]
func (h *InvoiceHandler) ListItems(c *fiber.Ctx) error {
	out, err := h.uc.ListItems(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Adicionar item à invoice
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "ID da invoice"
// @Param        body  body      dto.InvoiceItemRequest  true  "Item"
// @Success      201   {object}  dto.InvoiceItemDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/itens [post]
func (h *InvoiceHandler) AddItem(c *fiber.Ctx) error {
	var in dto.InvoiceItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem godoc
// @Summary      Atualizar item da invoice
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        invoiceId  path      string                  true  "ID da invoice"
// @Param        itemId     path      string                  true  "ID do item"
// @Param        body       body      dto.InvoiceItemRequest  true  "Item"
// @Success      200        {object}  dto.InvoiceItemDTO
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/invoices/{invoiceId}/itens/{itemId} [put]
func (h *InvoiceHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.InvoiceItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateItem(c.UserContext(), c.Params("invoiceId"), c.Params("itemId"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Remover item da invoice
// @Tags         invoices
// @Security     Bearer
// @Param        invoiceId  path  string  true  "ID da invoice"
// @Param        itemId     path  string  true  "ID do item"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{invoiceId}/itens/{itemId} [delete]
func (h *InvoiceHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(c.UserContext(), c.Params("invoiceId"), c.Params("itemId")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
