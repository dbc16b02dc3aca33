package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"todolist/internal/apperrors"
	"todolist/internal/models"
)

// UserRepository persists user records.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateEmail(ctx context.Context, id, email string) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = "id, username, email, password, roles"

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	var roles pq.StringArray
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &roles); err != nil {
		return nil, err
	}
	u.Roles = []string(roles)
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, username, email, password, roles) VALUES ($1, $2, $3, $4, $5)",
		user.ID, user.Username, user.Email, user.PasswordHash, pq.Array(nonNil(user.Roles)))
	return translate(err, "create user")
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	u, err := scanUser(row)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("user %s", id))
	}
	return u, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
	u, err := scanUser(row)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("user %s", username))
	}
	return u, nil
}

func (r *userRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&exists); err != nil {
		return false, translate(err, "check user")
	}
	return exists, nil
}

func (r *userRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", id)
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)", username)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email)
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY username")
	if err != nil {
		return nil, translate(err, "list users")
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, translate(err, "scan user")
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "iterate users")
	}
	return users, nil
}

func (r *userRepository) UpdateEmail(ctx context.Context, id, email string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET email = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", email, id)
	if err != nil {
		return translate(err, "update user")
	}
	return requireAffected(res, fmt.Sprintf("user %s", id))
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return translate(err, "delete user")
	}
	return requireAffected(res, fmt.Sprintf("user %s", id))
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	return nil
}
