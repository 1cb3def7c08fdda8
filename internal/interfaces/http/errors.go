package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/biocol-import-api/internal/application/dto"
	"github.com/jhoicas/biocol-import-api/internal/domain"
	"github.com/jhoicas/biocol-import-api/pkg/logger"
)

// writeError classifica o erro pelo sentinela de domínio e escreve o corpo {code, message}.
// Erros sem sentinela viram 500 e são registrados; a mensagem interna não vaza.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code := classify(err)
	if status == fiber.StatusInternalServerError {
		if log != nil {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("erro interno")
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "erro interno do servidor"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidOperation):
		return fiber.StatusBadRequest, "INSUFFICIENT_BALANCE"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
}
