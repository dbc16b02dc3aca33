package service

import (
	"context"

	"todolist/internal/models"
)

// AdminService holds the admin-only user operations. Each one checks the
// caller's roles before touching the directory.
type AdminService struct {
	users *UserService
}

func NewAdminService(users *UserService) *AdminService {
	return &AdminService{users: users}
}

func (s *AdminService) ListUsers(ctx context.Context, caller *models.User) ([]models.User, error) {
	if err := RequireRole(caller.Roles, "ADMIN"); err != nil {
		return nil, err
	}
	return s.users.GetAllUsers(ctx)
}

func (s *AdminService) AddUser(ctx context.Context, caller *models.User, username, email, rawPassword string) (*models.User, error) {
	if err := RequireRole(caller.Roles, "ADMIN"); err != nil {
		return nil, err
	}
	return s.users.RegisterNewUser(ctx, username, email, rawPassword)
}

// DeleteUser removes the user with the given id. It returns the deleted
// record so callers can report who was removed.
func (s *AdminService) DeleteUser(ctx context.Context, caller *models.User, id string) (*models.User, error) {
	if err := RequireRole(caller.Roles, "ADMIN"); err != nil {
		return nil, err
	}
	target, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckUserDeletion(caller, target); err != nil {
		return nil, err
	}
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return nil, err
	}
	return target, nil
}
