package service

import (
	"context"
	"errors"
	"fmt"

	"todolist/internal/apperrors"
	"todolist/internal/models"
	"todolist/internal/repository"
)

// UserService is the user directory: registration, lookup, email updates
// and deletion.
type UserService struct {
	repo   repository.UserRepository
	hasher PasswordHasher
	newID  IDGenerator
}

// NewUserService builds a UserService. newID may be nil, in which case
// random UUIDs are used.
func NewUserService(repo repository.UserRepository, hasher PasswordHasher, newID IDGenerator) *UserService {
	if newID == nil {
		newID = defaultIDGenerator
	}
	return &UserService{repo: repo, hasher: hasher, newID: newID}
}

// RegisterNewUser creates a ROLE_USER account. The existence checks are a
// fast path; the unique indexes in the store decide races between them
// and the insert.
func (s *UserService) RegisterNewUser(ctx context.Context, username, email, rawPassword string) (*models.User, error) {
	return s.create(ctx, username, email, rawPassword, []string{models.RoleUser})
}

func (s *UserService) create(ctx context.Context, username, email, rawPassword string, roles []string) (*models.User, error) {
	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: username %s is already taken", apperrors.ErrAlreadyExists, username)
	}
	inUse, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, fmt.Errorf("%w: email %s is already in use", apperrors.ErrAlreadyExists, email)
	}

	hashed, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           s.newID(),
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Roles:        roles,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// UpdateUser replaces the email only.
func (s *UserService) UpdateUser(ctx context.Context, id, newEmail string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateEmail(ctx, id, newEmail); err != nil {
		return nil, err
	}
	user.Email = newEmail
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	return s.repo.Delete(ctx, id)
}

// FindByUsername resolves an authenticated principal. ok is false when no
// such user exists.
func (s *UserService) FindByUsername(ctx context.Context, username string) (user *models.User, ok bool, err error) {
	user, err = s.repo.FindByUsername(ctx, username)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, rawPassword string) (*models.User, error) {
	user, ok, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, rawPassword); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// EnsureDefaultAdmin creates the "admin" account with admin and user roles
// when it does not exist yet. Losing a creation race to another instance
// counts as success; a collision that leaves no "admin" behind (the email is
// held by another account) does not.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context, email, rawPassword string) (created bool, err error) {
	_, ok, err := s.FindByUsername(ctx, models.DefaultAdminUsername)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}

	_, err = s.create(ctx, models.DefaultAdminUsername, email, rawPassword, []string{models.RoleAdmin, models.RoleUser})
	if !errors.Is(err, apperrors.ErrAlreadyExists) {
		return err == nil, err
	}

	_, ok, lookupErr := s.FindByUsername(ctx, models.DefaultAdminUsername)
	if lookupErr != nil {
		return false, lookupErr
	}
	if !ok {
		return false, fmt.Errorf("seed %s account: %w", models.DefaultAdminUsername, err)
	}
	return false, nil
}
