package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"todolist/internal/models"
)

// TaskRepository persists task records. Every lookup except Create is
// scoped to an owner id.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindByUserID(ctx context.Context, userID string) ([]models.Task, error)
	FindByUserIDAndTag(ctx context.Context, userID, tag string) ([]models.Task, error)
	FindByIDAndUserID(ctx context.Context, id, userID string) (*models.Task, error)
	ExistsByIDAndUserID(ctx context.Context, id, userID string) (bool, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id, userID string) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = "id, user_id, title, description, completed, order_index, tags, created_at"

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	var t models.Task
	var tags pq.StringArray
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.OrderIndex, &tags, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Tags = []string(tags)
	if t.Tags == nil {
		t.Tags = []string{}
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, description, completed, order_index, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		task.ID, task.UserID, task.Title, task.Description, task.Completed, task.OrderIndex,
		pq.Array(nonNil(task.Tags)), task.CreatedAt)
	return translate(err, "create task")
}

func (r *taskRepository) query(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "fetch tasks")
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, translate(err, "scan task")
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "iterate tasks")
	}
	return tasks, nil
}

func (r *taskRepository) FindByUserID(ctx context.Context, userID string) ([]models.Task, error) {
	return r.query(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = $1 ORDER BY order_index, created_at, id", userID)
}

func (r *taskRepository) FindByUserIDAndTag(ctx context.Context, userID, tag string) ([]models.Task, error) {
	return r.query(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE user_id = $1 AND $2 = ANY(tags) ORDER BY order_index, created_at, id",
		userID, tag)
}

func (r *taskRepository) FindByIDAndUserID(ctx context.Context, id, userID string) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1 AND user_id = $2", id, userID)
	t, err := scanTask(row)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("task %s", id))
	}
	return t, nil
}

func (r *taskRepository) ExistsByIDAndUserID(ctx context.Context, id, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1 AND user_id = $2)", id, userID).Scan(&exists)
	if err != nil {
		return false, translate(err, "check task")
	}
	return exists, nil
}

// Update writes the mutable fields only; id, owner and created_at are
// never part of the SET clause.
func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = $1,
			description = $2,
			completed = $3,
			tags = $4,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $5 AND user_id = $6`,
		task.Title, task.Description, task.Completed, pq.Array(nonNil(task.Tags)), task.ID, task.UserID)
	if err != nil {
		return translate(err, "update task")
	}
	return requireAffected(res, fmt.Sprintf("task %s", task.ID))
}

func (r *taskRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return translate(err, "delete task")
	}
	return requireAffected(res, fmt.Sprintf("task %s", id))
}

// nonNil keeps pq from sending NULL for a nil slice into a NOT NULL array column.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
