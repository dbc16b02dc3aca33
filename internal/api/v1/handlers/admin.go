package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"todolist/internal/middleware"
	"todolist/internal/models"
	"todolist/pkg/logger"
)

// UserAdministration is the admin-only slice of the directory.
type UserAdministration interface {
	ListUsers(ctx context.Context, caller *models.User) ([]models.User, error)
	AddUser(ctx context.Context, caller *models.User, username, email, rawPassword string) (*models.User, error)
	DeleteUser(ctx context.Context, caller *models.User, id string) (*models.User, error)
}

type AdminHandler struct {
	admin    UserAdministration
	validate *validator.Validate
}

func NewAdminHandler(admin UserAdministration, validate *validator.Validate) *AdminHandler {
	return &AdminHandler{admin: admin, validate: validate}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err, "Error fetching users")
	}
	return respond(c, fiber.StatusOK, "Users fetched successfully", users)
}

func (h *AdminHandler) AddUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err, "Bad request in add user")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err, "Validation error in add user")
	}

	caller := middleware.CurrentUser(c)
	user, err := h.admin.AddUser(c.UserContext(), caller, req.Username, req.Email, req.Password)
	if err != nil {
		return fail(c, err, "Error adding user")
	}

	logger.AuditLogger.Info("User added by admin", zap.String("admin", caller.Username), zap.String("username", user.Username))
	return respond(c, fiber.StatusCreated, "User '"+user.Username+"' added successfully", user)
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	deleted, err := h.admin.DeleteUser(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return fail(c, err, "Error deleting user")
	}

	logger.AuditLogger.Info("User deleted successfully", zap.String("admin", caller.Username), zap.String("user_id", deleted.ID))
	return respond(c, fiber.StatusOK, "User '"+deleted.Username+"' deleted successfully", nil)
}
