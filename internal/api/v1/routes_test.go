package v1

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"todolist/configs"
	"todolist/internal/config"
	"todolist/internal/middleware"
	"todolist/internal/repository"
	"todolist/pkg/database"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		log.Printf("docker unavailable, route tests will be skipped: %v", err)
		os.Exit(m.Run())
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_USER=todolist",
			"POSTGRES_DB=todolist_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres: %v", err)
	}
	_ = resource.Expire(120)

	dsn := fmt.Sprintf("host=localhost port=%s user=todolist password=secret dbname=todolist_test sslmode=disable",
		resource.GetPort("5432/tcp"))
	pool.MaxWait = 60 * time.Second
	if err := pool.Retry(func() error {
		db, err := database.Open(dsn)
		if err != nil {
			return err
		}
		testDB = db
		return nil
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err := repository.CreateTableIfNotExists(testDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	code := m.Run()

	_ = repository.DeleteAllTable(testDB)
	testDB.Close()
	_ = pool.Purge(resource)
	os.Exit(code)
}

// createTestApp builds the full router over the test database. Tokens are
// not revoked on logout since no Redis is attached.
func createTestApp(t *testing.T) *fiber.App {
	t.Helper()
	if testDB == nil {
		t.Skip("postgres container not available")
	}

	cfg := configs.Config{
		JWTSecret:     "test-secret",
		JWTTTL:        time.Hour,
		BcryptCost:    bcrypt.MinCost,
		AdminEmail:    "admin@example.com",
		AdminPassword: "adminpass",
	}
	deps := config.NewDependencies(cfg, testDB, nil)
	_, err := deps.Users.EnsureDefaultAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(middleware.ErrorHandler())
	RegisterRoutes(app, deps)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func register(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status, body)
	return body["data"].(map[string]any)["id"].(string)
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, body)
	return body["data"].(map[string]any)["token"].(string)
}

func TestHealthz(t *testing.T) {
	app := createTestApp(t)
	status, body := call(t, app, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	app := createTestApp(t)
	register(t, app, "dupe_user")

	status, body := call(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "dupe_user",
		"email":    "other@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body["message"], "dupe_user")
}

func TestTaskLifecycle(t *testing.T) {
	app := createTestApp(t)
	register(t, app, "owner")
	register(t, app, "intruder")
	ownerToken := login(t, app, "owner", "secret123")
	intruderToken := login(t, app, "intruder", "secret123")

	status, body := call(t, app, http.MethodPost, "/api/v1/tasks", ownerToken, map[string]any{
		"title":   "Write report",
		"tags":    []string{" work ", "work", "urgent", ""},
		"user_id": "someone-else",
	})
	require.Equal(t, http.StatusCreated, status, body)
	task := body["data"].(map[string]any)
	taskID := task["id"].(string)
	assert.Equal(t, []any{"urgent", "work"}, task["tags"])
	assert.Equal(t, false, task["completed"])

	status, _ = call(t, app, http.MethodGet, "/api/v1/tasks/"+taskID, intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = call(t, app, http.MethodDelete, "/api/v1/tasks/"+taskID, intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = call(t, app, http.MethodGet, "/api/v1/tasks?tag=urgent", ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, body = call(t, app, http.MethodPatch, "/api/v1/tasks/"+taskID+"/toggle", ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["data"].(map[string]any)["completed"])

	status, body = call(t, app, http.MethodPut, "/api/v1/tasks/"+taskID, ownerToken, map[string]any{
		"title":     "Write final report",
		"completed": true,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, body["data"].(map[string]any)["tags"])

	status, _ = call(t, app, http.MethodDelete, "/api/v1/tasks/"+taskID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, app, http.MethodGet, "/api/v1/tasks/"+taskID, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminDeletesUser(t *testing.T) {
	app := createTestApp(t)
	victimID := register(t, app, "victim")
	victimToken := login(t, app, "victim", "secret123")
	adminToken := login(t, app, "admin", "adminpass")

	status, _ := call(t, app, http.MethodGet, "/api/v1/admin/users", victimToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := call(t, app, http.MethodGet, "/api/v1/users/me", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	adminID := body["data"].(map[string]any)["id"].(string)

	status, _ = call(t, app, http.MethodDelete, "/api/v1/admin/users/"+adminID, adminToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = call(t, app, http.MethodDelete, "/api/v1/admin/users/"+victimID, adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User 'victim' deleted successfully", body["message"])

	status, _ = call(t, app, http.MethodGet, "/api/v1/users/me", victimToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
