package handlers

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"todolist/internal/auth"
	"todolist/internal/middleware"
	"todolist/internal/models"
	"todolist/pkg/logger"
)

// UserDirectory is the part of the user service the HTTP layer uses.
type UserDirectory interface {
	RegisterNewUser(ctx context.Context, username, email, rawPassword string) (*models.User, error)
	Authenticate(ctx context.Context, username, rawPassword string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id, newEmail string) (*models.User, error)
}

// TokenIssuer signs and revokes bearer tokens.
type TokenIssuer interface {
	Issue(user *models.User) (string, time.Time, error)
	Revoke(ctx context.Context, claims *auth.Claims) error
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,min=6,max=40"`
}

type AuthHandler struct {
	users    UserDirectory
	tokens   TokenIssuer
	validate *validator.Validate
}

func NewAuthHandler(users UserDirectory, tokens TokenIssuer, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, validate: validate}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err, "Bad request in register")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err, "Validation error during register")
	}

	user, err := h.users.RegisterNewUser(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return fail(c, err, "Error registering user")
	}

	logger.AuditLogger.Info("User registered successfully", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return respond(c, fiber.StatusCreated, "User registered successfully", user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err, "Bad request in login")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err, "Validation error during login")
	}

	user, err := h.users.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return fail(c, err, "Login failed")
	}

	token, expiresAt, err := h.tokens.Issue(user)
	if err != nil {
		return fail(c, err, "Error generating token")
	}

	logger.AuditLogger.Info("Login success", zap.String("user_id", user.ID), zap.Strings("roles", user.Roles))
	return respond(c, fiber.StatusOK, "Login success", fiber.Map{
		"token":      token,
		"expires_at": expiresAt.UTC(),
		"user":       user,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		return respond(c, fiber.StatusOK, "Logged out", nil)
	}
	if err := h.tokens.Revoke(c.UserContext(), claims); err != nil {
		return fail(c, err, "Error revoking token")
	}
	logger.AuditLogger.Info("Logout", zap.String("username", claims.Subject))
	return respond(c, fiber.StatusOK, "Logged out", nil)
}
