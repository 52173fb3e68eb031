package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mercadotech/mercado-api/internal/application/dto"
	"github.com/mercadotech/mercado-api/pkg/jwt"
)

// Headers inyectados por el gateway después de validar el bearer token.
const (
	HeaderUserID = "X-Auth-User-Id"
	HeaderRoles  = "X-Auth-User-Roles" // lista de roles separada por comas
)

// Locals keys para identidad en Fiber.
const (
	LocalUserID = "user_id"
	LocalRoles  = "roles"
)

// GatewayAuth confía en la identidad inyectada por el gateway vía headers
// X-Auth-User-Id / X-Auth-User-Roles (el token ya fue validado allá). Si los
// headers no están y hay secret configurado, cae al parse local del Bearer
// JWT, para despliegues sin gateway delante (desarrollo, tests).
func GatewayAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID := c.Get(HeaderUserID); userID != "" {
			c.Locals(LocalUserID, userID)
			c.Locals(LocalRoles, splitRoles(c.Get(HeaderRoles)))
			return c.Next()
		}

		if jwtSecret == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_IDENTITY", Message: "identidade do gateway ausente"})
		}
		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "formato: Bearer <token>"})
		}
		userID, roles, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRoles, roles)
		return c.Next()
	}
}

// RequireRole autoriza solo si el usuario tiene alguno de los roles dados.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, role := range GetRoles(c) {
			for _, a := range allowed {
				if strings.EqualFold(role, a) {
					return c.Next()
				}
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acesso negado ao recurso"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRoles devuelve los roles del contexto (después del middleware).
func GetRoles(c *fiber.Ctx) []string {
	v := c.Locals(LocalRoles)
	if v == nil {
		return nil
	}
	roles, _ := v.([]string)
	return roles
}

func splitRoles(header string) []string {
	if header == "" {
		return nil
	}
	parts := strings.Split(header, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if r := strings.TrimSpace(p); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}
