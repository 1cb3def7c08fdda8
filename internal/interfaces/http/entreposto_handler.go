package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	"github.com/jhoicas/biocol-import-api/internal/application/entreposto"
	"github.com/jhoicas/biocol-import-api/pkg/logger"
)

// EntrepostoHandler D.A. de entreposto aduaneiro, saldo e retiradas (protegido).
type EntrepostoHandler struct {
	admissions  *entreposto.AdmissionUseCase
	withdrawals *entreposto.WithdrawalUseCase
	log         *logger.Logger
}

// NewEntrepostoHandler constrói o handler.
func NewEntrepostoHandler(admissions *entreposto.AdmissionUseCase, withdrawals *entreposto.WithdrawalUseCase, log *logger.Logger) *EntrepostoHandler {
	return &EntrepostoHandler{admissions: admissions, withdrawals: withdrawals, log: log}
}

// Create godoc
// @Summary      Registrar D.A. de entreposto
// @Description  Semeia o saldo a partir dos itens das invoices do embarque e move o embarque para ENTRADA_ENTREPOSTO.
// @Tags         entrepostos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateAdmissionRequest  true  "Dados da D.A."
// @Success      201   {object}  dto.AdmissionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/entrepostos [post]
func (h *EntrepostoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdmissionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.admissions.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar D.A.
// @Tags         entrepostos
// @Security     Bearer
// @Produce      json
// @Param        warehouse_type  query  string  false  "Tipo de entreposto"
// @Param        status          query  string  false  "ATIVO | VENCIDO | FINALIZADO"
// @Param        search          query  string  false  "Número da D.A., referência ou exportador"
// @Param        page            query  int     false  "Página"  default(1)
// @Param        limit           query  int     false  "Limite"  default(50)
// @Success      200  {object}  dto.AdmissionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/entrepostos [get]
func (h *EntrepostoHandler) List(c *fiber.Ctx) error {
	var in dto.AdmissionFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros inválidos"})
	}
	out, err := h.admissions.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obter D.A. por ID
// @Tags         entrepostos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID da D.A."
// @Success      200  {object}  dto.AdmissionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entrepostos/{id} [get]
func (h *EntrepostoHandler) Get(c *fiber.Ctx) error {
	out, err := h.admissions.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Balance godoc
// @Summary      Saldo da D.A.
// @Tags         entrepostos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID da D.A."
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entrepostos/{id}/saldo [get]
func (h *EntrepostoHandler) Balance(c *fiber.Ctx) error {
	out, err := h.admissions.GetBalance(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AvailableBalance godoc
// @Summary      Saldo disponível da D.A.
// @Description  Somente itens com quantidade disponível maior que zero.
// @Tags         entrepostos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID da D.A."
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entrepostos/{id}/saldo/disponivel [get]
func (h *EntrepostoHandler) AvailableBalance(c *fiber.Ctx) error {
	out, err := h.admissions.GetAvailableBalance(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Withdraw godoc
// @Summary      Processar retirada parcial
// @Description  Tudo ou nada: se uma linha falhar, nenhuma baixa é aplicada e a mensagem cita o item.
// @Tags         entrepostos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID da D.A."
// @Param        body  body      dto.WithdrawalRequest  true  "Linhas da retirada"
// @Success      200   {object}  dto.WithdrawalDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/entrepostos/{id}/retiradas [post]
func (h *EntrepostoHandler) Withdraw(c *fiber.Ctx) error {
	var in dto.WithdrawalRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.withdrawals.Process(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Withdrawals godoc
// @Summary      Histórico de retiradas da D.A.
// @Tags         entrepostos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID da D.A."
// @Success      200  {array}   dto.WithdrawalDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entrepostos/{id}/retiradas [get]
func (h *EntrepostoHandler) Withdrawals(c *fiber.Ctx) error {
	out, err := h.withdrawals.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprovante da retirada em PDF
// @Tags         entrepostos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id          path  string  true  "ID da D.A."
// @Param        retiradaId  path  string  true  "ID da retirada"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entrepostos/{id}/retiradas/{retiradaId}/comprovante [get]
func (h *EntrepostoHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.withdrawals.Receipt(c.UserContext(), c.Params("id"), c.Params("retiradaId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Attachment(filename)
	return c.Send(pdf)
}

// ByShipment godoc
// @Summary      D.A. de um embarque
// @Tags         entrepostos
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID do embarque"
// @Success      200  {array}   dto.AdmissionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/embarques/{id}/entrepostos [get]
func (h *EntrepostoHandler) ByShipment(c *fiber.Ctx) error {
	out, err := h.admissions.ListByShipment(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
