package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"todolist/internal/middleware"
	"todolist/internal/service"
	"todolist/pkg/logger"
)

type UserHandler struct {
	users    UserDirectory
	validate *validator.Validate
}

func NewUserHandler(users UserDirectory, validate *validator.Validate) *UserHandler {
	return &UserHandler{users: users, validate: validate}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, "User found", middleware.CurrentUser(c))
}

// GetUser is available to the account owner and to admins.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	targetID := c.Params("id")
	if err := service.RequireSelfOrAdmin(middleware.CurrentUser(c), targetID); err != nil {
		return fail(c, err, "Forbidden user lookup")
	}

	user, err := h.users.GetUserByID(c.UserContext(), targetID)
	if err != nil {
		return fail(c, err, "Error fetching user")
	}
	return respond(c, fiber.StatusOK, "User found", user)
}

// UpdateUser changes the email address only.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	targetID := c.Params("id")
	if err := service.RequireSelfOrAdmin(middleware.CurrentUser(c), targetID); err != nil {
		return fail(c, err, "You don't have permission to update this user")
	}

	type UpdateUserRequest struct {
		Email string `json:"email" validate:"required,email,max=50"`
	}
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err, "Bad request in update user")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err, "Validation error in update user")
	}

	user, err := h.users.UpdateUser(c.UserContext(), targetID, req.Email)
	if err != nil {
		return fail(c, err, "Error updating user")
	}

	logger.AuditLogger.Info("User updated successfully", zap.String("user_id", targetID))
	return respond(c, fiber.StatusOK, "User updated successfully", user)
}
