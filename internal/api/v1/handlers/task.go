package handlers

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"todolist/internal/middleware"
	"todolist/internal/models"
	"todolist/pkg/logger"
)

// TaskManager is the owner-scoped task service.
type TaskManager interface {
	GetAllTasksForUser(ctx context.Context, user *models.User) ([]models.Task, error)
	GetAllTasksForUserAndTag(ctx context.Context, user *models.User, tag string) ([]models.Task, error)
	GetTaskByIDAndUser(ctx context.Context, taskID string, user *models.User) (*models.Task, bool, error)
	CreateTask(ctx context.Context, draft models.Task, user *models.User) (*models.Task, error)
	UpdateTask(ctx context.Context, taskID string, draft models.Task, user *models.User) (*models.Task, error)
	ToggleTask(ctx context.Context, taskID string, user *models.User) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID string, user *models.User) error
}

// TaskRequest is the client payload for create and update. It carries no
// id, owner or timestamp; those are server-side only.
type TaskRequest struct {
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description" validate:"max=1000"`
	Completed   bool     `json:"completed"`
	OrderIndex  int      `json:"order_index" validate:"gte=0"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,max=30"`
}

func (r TaskRequest) draft() models.Task {
	return models.Task{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		OrderIndex:  r.OrderIndex,
		Tags:        r.Tags,
	}
}

type TaskHandler struct {
	tasks    TaskManager
	validate *validator.Validate
}

func NewTaskHandler(tasks TaskManager, validate *validator.Validate) *TaskHandler {
	return &TaskHandler{tasks: tasks, validate: validate}
}

// parse binds and validates the body. When ok is false the error response
// has already been written and err is the result of writing it.
func (h *TaskHandler) parse(c *fiber.Ctx, logPrefix string) (req TaskRequest, ok bool, err error) {
	if err := c.BodyParser(&req); err != nil {
		return req, false, badRequest(c, err, "Bad request in "+logPrefix)
	}
	if err := h.validate.Struct(req); err != nil {
		return req, false, validationFailed(c, err, "Validation error in "+logPrefix)
	}
	return req, true, nil
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	req, ok, err := h.parse(c, "create task")
	if !ok {
		return err
	}

	user := middleware.CurrentUser(c)
	task, err := h.tasks.CreateTask(c.UserContext(), req.draft(), user)
	if err != nil {
		return fail(c, err, "Error creating task")
	}

	logger.AuditLogger.Info("Task created successfully", zap.String("task_id", task.ID), zap.String("user_id", user.ID))
	return respond(c, fiber.StatusCreated, "Task created successfully", task)
}

// ListTasks returns the caller's tasks, optionally only those tagged ?tag=.
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var (
		tasks []models.Task
		err   error
	)
	if tag := strings.TrimSpace(c.Query("tag")); tag != "" {
		tasks, err = h.tasks.GetAllTasksForUserAndTag(c.UserContext(), user, tag)
	} else {
		tasks, err = h.tasks.GetAllTasksForUser(c.UserContext(), user)
	}
	if err != nil {
		return fail(c, err, "Error fetching tasks")
	}
	return respond(c, fiber.StatusOK, "Tasks fetched successfully", tasks)
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	task, ok, err := h.tasks.GetTaskByIDAndUser(c.UserContext(), c.Params("id"), middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err, "Error fetching task")
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Task not found",
			"success": false,
			"status":  fiber.StatusNotFound,
		})
	}
	return respond(c, fiber.StatusOK, "Task found", task)
}

// UpdateTask replaces the task's editable fields. Omitting "tags" clears them.
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	req, ok, err := h.parse(c, "update task")
	if !ok {
		return err
	}

	taskID := c.Params("id")
	task, err := h.tasks.UpdateTask(c.UserContext(), taskID, req.draft(), middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err, "Error updating task")
	}

	logger.AuditLogger.Info("Task updated", zap.String("task_id", taskID))
	return respond(c, fiber.StatusOK, "Task updated successfully", task)
}

func (h *TaskHandler) ToggleTask(c *fiber.Ctx) error {
	taskID := c.Params("id")
	task, err := h.tasks.ToggleTask(c.UserContext(), taskID, middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err, "Error toggling task")
	}

	logger.AuditLogger.Info("Task toggled", zap.String("task_id", taskID), zap.Bool("completed", task.Completed))
	return respond(c, fiber.StatusOK, "Task updated successfully", task)
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	taskID := c.Params("id")
	if err := h.tasks.DeleteTask(c.UserContext(), taskID, middleware.CurrentUser(c)); err != nil {
		return fail(c, err, "Error deleting task")
	}

	logger.AuditLogger.Info("Task deleted", zap.String("task_id", taskID))
	return respond(c, fiber.StatusOK, "Task deleted successfully", nil)
}
