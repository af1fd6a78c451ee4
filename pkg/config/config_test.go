package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load("v1.2.3")
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3", cfg.Version)
	assert.Equal(t, "0.0.0.0", cfg.BindAddr)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, int32(25), cfg.Database.MaxConnections)
	assert.Equal(t, 6379, cfg.Redis.Port)
}

func TestLoad_MissingJWTSecretFailsClosed(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load("dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "8080")
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGPASSWORD", "hunter2")
	t.Setenv("REDIS_HOST", "cache.internal")

	cfg, err := Load("dev")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "hunter2", cfg.Database.Password)
	assert.Equal(t, "cache.internal", cfg.Redis.Host)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	cfg := &DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "occupancy",
		Password: "secret",
		Database: "occupancy_engine",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=occupancy password=secret dbname=occupancy_engine sslmode=disable",
		cfg.ConnectionString())
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := &RedisConfig{Host: "localhost", Port: 6379}
	assert.Equal(t, "localhost:6379", cfg.Addr())
}
