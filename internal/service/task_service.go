package service

import (
	"context"
	"errors"
	"fmt"

	"todolist/internal/apperrors"
	"todolist/internal/models"
	"todolist/internal/repository"
)

// TaskService implements task CRUD scoped to the calling user. The owner is
// always taken from the user argument, never from the task payload.
type TaskService struct {
	repo  repository.TaskRepository
	newID IDGenerator
	now   Clock
}

// NewTaskService builds a TaskService. newID and now may be nil.
func NewTaskService(repo repository.TaskRepository, newID IDGenerator, now Clock) *TaskService {
	if newID == nil {
		newID = defaultIDGenerator
	}
	if now == nil {
		now = defaultClock
	}
	return &TaskService{repo: repo, newID: newID, now: now}
}

func (s *TaskService) GetAllTasksForUser(ctx context.Context, user *models.User) ([]models.Task, error) {
	return s.repo.FindByUserID(ctx, user.ID)
}

func (s *TaskService) GetAllTasksForUserAndTag(ctx context.Context, user *models.User, tag string) ([]models.Task, error) {
	return s.repo.FindByUserIDAndTag(ctx, user.ID, tag)
}

// GetTaskByIDAndUser reports ok=false both when the task is missing and
// when it belongs to someone else.
func (s *TaskService) GetTaskByIDAndUser(ctx context.Context, taskID string, user *models.User) (task *models.Task, ok bool, err error) {
	task, err = s.repo.FindByIDAndUserID(ctx, taskID, user.ID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if task.GetUserID() != user.ID {
		return nil, false, nil
	}
	return task, true, nil
}

// CreateTask stores draft as a new task owned by user. The id, owner and
// creation time on draft are ignored.
func (s *TaskService) CreateTask(ctx context.Context, draft models.Task, user *models.User) (*models.Task, error) {
	task := &models.Task{
		ID:          s.newID(),
		Title:       draft.Title,
		Description: draft.Description,
		Completed:   draft.Completed,
		CreatedAt:   s.now(),
		UserID:      user.ID,
		OrderIndex:  draft.OrderIndex,
		Tags:        models.NormalizeTags(draft.Tags),
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask replaces title, description, completed and tags. Tags are
// replaced wholesale: nil tags on draft clear the stored set.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, draft models.Task, user *models.User) (*models.Task, error) {
	task, ok, err := s.GetTaskByIDAndUser(ctx, taskID, user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound(taskID, user)
	}

	task.Title = draft.Title
	task.Description = draft.Description
	task.Completed = draft.Completed
	task.Tags = models.NormalizeTags(draft.Tags)
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ToggleTask flips the completed flag and leaves the other fields as stored.
func (s *TaskService) ToggleTask(ctx context.Context, taskID string, user *models.User) (*models.Task, error) {
	task, ok, err := s.GetTaskByIDAndUser(ctx, taskID, user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound(taskID, user)
	}
	draft := *task
	draft.Completed = !task.Completed
	return s.UpdateTask(ctx, taskID, draft, user)
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID string, user *models.User) error {
	exists, err := s.repo.ExistsByIDAndUserID(ctx, taskID, user.ID)
	if err != nil {
		return err
	}
	if !exists {
		return notFound(taskID, user)
	}
	return s.repo.Delete(ctx, taskID, user.ID)
}

func notFound(taskID string, user *models.User) error {
	return fmt.Errorf("task %s for user %s: %w", taskID, user.Username, apperrors.ErrNotFound)
}
