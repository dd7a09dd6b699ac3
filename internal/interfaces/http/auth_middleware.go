package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ruanmp/livraria-pos/internal/application/dto"
	"github.com/ruanmp/livraria-pos/internal/domain/entity"
	"github.com/ruanmp/livraria-pos/pkg/jwt"
)

// Locals keys preenchidas pelo middleware de auth.
const (
	LocalUserID    = "user_id"
	LocalSessionID = "session_id"
	LocalUserName  = "user_name"
	LocalUserRole  = "user_role"
	LocalIssuedAt  = "issued_at"
)

// AuthMiddleware valida o Bearer Token JWT e extrai a sessão de caixa para c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalSessionID, claims.SessionID)
		c.Locals(LocalUserName, claims.Name)
		c.Locals(LocalUserRole, claims.Role)
		if claims.IssuedAt != nil {
			c.Locals(LocalIssuedAt, claims.IssuedAt.Time)
		}
		return c.Next()
	}
}

// RequireRole exige um papel específico (depois do AuthMiddleware).
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if localString(c, LocalUserRole) != role {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "papel insuficiente para a operação"})
		}
		return c.Next()
	}
}

// GetSession monta o SessionContext a partir do token validado.
// Devolve nil se o middleware não rodou (rota desprotegida).
func GetSession(c *fiber.Ctx) *entity.SessionContext {
	sessionID := localString(c, LocalSessionID)
	userID := localString(c, LocalUserID)
	if sessionID == "" || userID == "" {
		return nil
	}
	openedAt, _ := c.Locals(LocalIssuedAt).(time.Time)
	return &entity.SessionContext{
		SessionID:   sessionID,
		CashierID:   userID,
		CashierName: localString(c, LocalUserName),
		OpenedAt:    openedAt,
	}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
