package config

import (
	"database/sql"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"

	"todolist/configs"
	"todolist/internal/auth"
	"todolist/internal/repository"
	"todolist/internal/service"
	"todolist/pkg/crypto"
)

// Dependencies is everything the HTTP layer needs, built once at startup.
type Dependencies struct {
	Users    *service.UserService
	Tasks    *service.TaskService
	Admin    *service.AdminService
	Tokens   *auth.TokenService
	Validate *validator.Validate
}

// NewDependencies wires the Postgres stores, the Redis-backed token
// revocation list and the services on top of them. redisClient may be nil,
// in which case logout does not revoke tokens.
func NewDependencies(cfg configs.Config, db *sql.DB, redisClient *redis.Client) *Dependencies {
	var revoked auth.RevocationStore
	if redisClient != nil {
		revoked = auth.NewRedisRevocationStore(redisClient)
	}

	users := service.NewUserService(repository.NewUserRepository(db), crypto.NewBcryptHasher(cfg.BcryptCost), nil)
	return &Dependencies{
		Users:    users,
		Tasks:    service.NewTaskService(repository.NewTaskRepository(db), nil, nil),
		Admin:    service.NewAdminService(users),
		Tokens:   auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL, revoked),
		Validate: NewValidator(),
	}
}

// NewValidator reports field errors under their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}
