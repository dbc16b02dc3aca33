package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("APP_PORT", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("BCRYPT_COST", "")

	cfg := LoadConfig()

	assert.Equal(t, 3004, cfg.AppPort)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "logs", cfg.LogDir)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("ADMIN_PASSWORD", "s3cret!")

	cfg := LoadConfig()

	assert.Equal(t, 8080, cfg.AppPort)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost, "invalid ints fall back to the default")
	assert.Equal(t, "s3cret!", cfg.AdminPassword)
}
