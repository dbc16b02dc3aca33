package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"todolist/internal/auth"
	"todolist/internal/models"
	"todolist/pkg/logger"
)

const (
	localUser   = "user"
	localClaims = "claims"
)

// TokenParser validates bearer tokens.
type TokenParser interface {
	Parse(ctx context.Context, token string) (*auth.Claims, error)
}

// PrincipalResolver maps an authenticated username to a directory user.
type PrincipalResolver interface {
	FindByUsername(ctx context.Context, username string) (*models.User, bool, error)
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  fiber.StatusUnauthorized,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
		"success": false,
		"status":  fiber.StatusInternalServerError,
	})
}

// UseToken authenticates the request and stores the resolved user in
// c.Locals. Requests whose token subject no longer exists are rejected.
func UseToken(tokens TokenParser, users PrincipalResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "No token provided")
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(c, "Invalid token format")
		}

		claims, err := tokens.Parse(c.UserContext(), parts[1])
		if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrTokenRevoked) {
			logger.SecurityLogger.Warn("Rejected token", zap.Error(err), zap.String("ip", c.IP()))
			return unauthorized(c, "Invalid token")
		}
		if err != nil {
			logger.ErrorLogger.Error("Error checking token", zap.Error(err))
			return internalError(c)
		}

		user, ok, err := users.FindByUsername(c.UserContext(), claims.Subject)
		if err != nil {
			logger.ErrorLogger.Error("Error resolving principal", zap.Error(err))
			return internalError(c)
		}
		if !ok {
			logger.SecurityLogger.Warn("Token for unknown user", zap.String("username", claims.Subject))
			return unauthorized(c, "Invalid token")
		}

		logger.ContextLogger.Debug("Principal resolved",
			zap.String("username", user.Username),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		c.Locals(localUser, user)
		c.Locals(localClaims, claims)
		return c.Next()
	}
}

// RequireRole rejects callers that lack role. It must run after UseToken.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c, "Unauthorized")
		}
		if !user.HasRole(role) {
			logger.SecurityLogger.Warn("Forbidden", zap.String("username", user.Username), zap.String("required_role", role))
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden",
				"success": false,
				"status":  fiber.StatusForbidden,
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the user resolved by UseToken, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localUser).(*models.User)
	return user
}

// CurrentClaims returns the token claims stored by UseToken, or nil.
func CurrentClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(localClaims).(*auth.Claims)
	return claims
}
