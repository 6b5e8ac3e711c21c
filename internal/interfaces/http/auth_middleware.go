package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/authz"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/pkg/jwt"
)

// Locals keys con la identidad extraída del token.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
	LocalTokenID  = "token_id"
	LocalTokenExp = "token_exp"
)

// RevocationChecker consulta la lista de tokens revocados por logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// CallerResolver obtiene la identidad vigente del usuario del token.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, userID string) (authz.Caller, error)
}

// AuthMiddleware valida el Bearer Token JWT y carga la identidad en c.Locals.
// revocations puede ser nil (sin logout). Con resolver, rol y username salen del
// usuario almacenado; sin él se usan los claims del token.
func AuthMiddleware(jwtSecret string, revocations RevocationChecker, resolver CallerResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if revocations != nil && claims.ID != "" {
			revoked, err := revocations.IsRevoked(c.UserContext(), claims.ID)
			if err != nil {
				c.Locals(LocalError, err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "REVOCATION_CHECK_FAILED", Message: "no se pudo validar la sesión, intente más tarde"})
			}
			if revoked {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_REVOKED", Message: "la sesión fue cerrada"})
			}
		}
		username, role := claims.Username, claims.Role
		if resolver != nil {
			caller, err := resolver.ResolveCaller(c.UserContext(), claims.UserID)
			if errors.Is(err, domain.ErrUnauthenticated) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "el usuario del token ya no existe"})
			}
			if err != nil {
				c.Locals(LocalError, err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "IDENTITY_CHECK_FAILED", Message: "no se pudo validar la sesión, intente más tarde"})
			}
			username, role = caller.Username, caller.Role.String()
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, username)
		c.Locals(LocalRole, role)
		c.Locals(LocalTokenID, claims.ID)
		c.Locals(LocalTokenExp, claims.ExpiresAtTime())
		return c.Next()
	}
}

// RequireRole deja pasar solo si el rol del token está entre los permitidos.
// Debe usarse DESPUÉS de AuthMiddleware. Los casos de uso vuelven a verificar el rol.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene un rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tiene permiso para realizar esta acción"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetTokenID devuelve el jti del token.
func GetTokenID(c *fiber.Ctx) string { return localString(c, LocalTokenID) }

// GetTokenExpiry devuelve la expiración del token (cero si no hay).
func GetTokenExpiry(c *fiber.Ctx) time.Time {
	t, _ := c.Locals(LocalTokenExp).(time.Time)
	return t
}

// CallerFrom construye el authz.Caller a partir de los locals. Sin token es anónimo.
func CallerFrom(c *fiber.Ctx) authz.Caller {
	userID := GetUserID(c)
	if userID == "" {
		return authz.Anonymous()
	}
	return authz.Caller{
		UserID:   userID,
		Username: localString(c, LocalUsername),
		Role:     entity.Role(GetRole(c)),
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}
