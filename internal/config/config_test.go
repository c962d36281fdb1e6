package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "app",
		DBPassword: "pw",
		DBName:     "policies",
		DBSSLMode:  "disable",
	}
	assert.Equal(t,
		"host=db user=app password=pw dbname=policies port=5433 sslmode=disable TimeZone=UTC",
		cfg.DSN(),
	)
}
