package handlers

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/mock"

	"todolist/internal/auth"
	"todolist/internal/models"
)

type MockUserDirectory struct {
	mock.Mock
}

var _ UserDirectory = (*MockUserDirectory)(nil)

func (m *MockUserDirectory) RegisterNewUser(ctx context.Context, username, email, rawPassword string) (*models.User, error) {
	args := m.Called(ctx, username, email, rawPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserDirectory) Authenticate(ctx context.Context, username, rawPassword string) (*models.User, error) {
	args := m.Called(ctx, username, rawPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserDirectory) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserDirectory) UpdateUser(ctx context.Context, id, newEmail string) (*models.User, error) {
	args := m.Called(ctx, id, newEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

var _ TokenIssuer = (*MockTokenIssuer)(nil)

func (m *MockTokenIssuer) Issue(user *models.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenIssuer) Revoke(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

type MockTaskManager struct {
	mock.Mock
}

var _ TaskManager = (*MockTaskManager)(nil)

func (m *MockTaskManager) GetAllTasksForUser(ctx context.Context, user *models.User) ([]models.Task, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskManager) GetAllTasksForUserAndTag(ctx context.Context, user *models.User, tag string) ([]models.Task, error) {
	args := m.Called(ctx, user, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskManager) GetTaskByIDAndUser(ctx context.Context, taskID string, user *models.User) (*models.Task, bool, error) {
	args := m.Called(ctx, taskID, user)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Task), args.Bool(1), args.Error(2)
}

func (m *MockTaskManager) CreateTask(ctx context.Context, draft models.Task, user *models.User) (*models.Task, error) {
	args := m.Called(ctx, draft, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskManager) UpdateTask(ctx context.Context, taskID string, draft models.Task, user *models.User) (*models.Task, error) {
	args := m.Called(ctx, taskID, draft, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskManager) ToggleTask(ctx context.Context, taskID string, user *models.User) (*models.Task, error) {
	args := m.Called(ctx, taskID, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskManager) DeleteTask(ctx context.Context, taskID string, user *models.User) error {
	args := m.Called(ctx, taskID, user)
	return args.Error(0)
}

type MockUserAdministration struct {
	mock.Mock
}

var _ UserAdministration = (*MockUserAdministration)(nil)

func (m *MockUserAdministration) ListUsers(ctx context.Context, caller *models.User) ([]models.User, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserAdministration) AddUser(ctx context.Context, caller *models.User, username, email, rawPassword string) (*models.User, error) {
	args := m.Called(ctx, caller, username, email, rawPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserAdministration) DeleteUser(ctx context.Context, caller *models.User, id string) (*models.User, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// stubSession authenticates "<username>-token" bearer tokens for a fixed
// set of users.
type stubSession map[string]*models.User

func (s stubSession) Parse(_ context.Context, token string) (*auth.Claims, error) {
	for name := range s {
		if token == name+"-token" {
			return &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: name, ID: "jti-" + name}}, nil
		}
	}
	return nil, auth.ErrInvalidToken
}

func (s stubSession) FindByUsername(_ context.Context, username string) (*models.User, bool, error) {
	u, ok := s[username]
	return u, ok, nil
}
