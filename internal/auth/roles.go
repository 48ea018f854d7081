package auth

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/la-capital/crm-service/internal/domain"
)

// RequireStaff ensures a staff account is authenticated.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypeStaff || principal.Staff == nil {
			return fiber.NewError(http.StatusForbidden, "Acceso restringido al personal.")
		}
		return c.Next()
	}
}

// RequireClient ensures a client account is authenticated.
func RequireClient() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypeClient || principal.Client == nil {
			return fiber.NewError(http.StatusForbidden, "Acceso restringido a clientes.")
		}
		return c.Next()
	}
}

// RequireRole ensures the principal carries one of the allowed role claims.
func RequireRole(allowed ...domain.RoleName) fiber.Handler {
	allowedSet := make(map[domain.RoleName]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return fiber.NewError(http.StatusForbidden,
				fmt.Sprintf("Acceso denegado: se requiere rol %s.", joinRoles(allowed)))
		}
		return c.Next()
	}
}

func joinRoles(roles []domain.RoleName) string {
	out := ""
	for i, r := range roles {
		if i > 0 {
			out += " o "
		}
		out += string(r)
	}
	return out
}
