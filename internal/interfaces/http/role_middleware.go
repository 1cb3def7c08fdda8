package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/biocol-import-api/internal/application/dto"
)

// RequireRole devolve um middleware que só deixa passar os papéis informados.
// Deve ser usado DEPOIS de AuthMiddleware (precisa de LocalRole).
//
// Comportamento:
//   - 401 MISSING_ROLE → token sem o claim role.
//   - 403 FORBIDDEN    → papel fora da lista.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(r)] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := strings.ToLower(GetRole(c))
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "papel não encontrado no token",
			})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "o papel '" + role + "' não tem acesso a este recurso",
			})
		}
		return c.Next()
	}
}
