package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("STORE", "")

	cfg := Load()
	assert.Equal(t, 30*time.Minute, cfg.AccessTTL)
	assert.Equal(t, "postgres", cfg.Store)
	assert.Empty(t, cfg.ESAddrs())
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "5m")
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("SEED_DB", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("STORE", "Memory")

	cfg := Load()
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.SeedDB)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Equal(t, "memory", cfg.Store)
}

func TestValidateProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	assert.Error(t, Load().Validate())

	t.Setenv("JWT_SECRET", "s3cret")
	assert.NoError(t, Load().Validate())

	t.Setenv("STORE", "memory")
	assert.Error(t, Load().Validate())
}

func TestPostgresDSNEscapesPassword(t *testing.T) {
	cfg := &Config{DBUser: "app", DBPassword: "p@ss/word", DBHost: "db", DBPort: "5432", DBName: "fitness", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/fitness?sslmode=disable", cfg.PostgresDSN())
}
