package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/la-capital/crm-service/internal/domain"
	"github.com/la-capital/crm-service/internal/repository"
	apperrors "github.com/la-capital/crm-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	SubjectType domain.SubjectType
	Role        domain.RoleName
	Staff       *domain.StaffAccount
	Client      *domain.ClientAccount
}

// AuthMiddleware validates bearer tokens and loads principals. Only final
// tokens pass: a pre-auth token presented to a protected route fails
// verification because the two classes use distinct signing keys, and the
// kind claim is checked again in ParseFinal.
type AuthMiddleware struct {
	tokens  *TokenManager
	staff   repository.StaffRepository
	clients repository.ClientRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, staff repository.StaffRepository, clients repository.ClientRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, staff: staff, clients: clients}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		// Documented behavior: bare 401 with empty body when the header
		// is absent entirely. SendStatus would fill the body with the
		// status text, so set the status directly.
		c.Status(fiber.StatusUnauthorized)
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("Cabecera de autorización inválida.")
	}

	claims, err := m.tokens.ParseFinal(parts[1])
	if err != nil {
		return apperrors.NewForbidden("Token inválido o expirado.")
	}

	principal := &Principal{SubjectType: claims.Subject, Role: claims.Role}

	switch claims.Subject {
	case domain.SubjectTypeStaff:
		staff, err := m.staff.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUnauthorized("Usuario no encontrado.")
			}
			return apperrors.MapError(err)
		}
		principal.Staff = staff
	case domain.SubjectTypeClient:
		client, err := m.clients.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUnauthorized("Cliente no encontrado.")
			}
			return apperrors.MapError(err)
		}
		principal.Client = client
	default:
		return apperrors.NewUnauthorized("Sujeto de token desconocido.")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
