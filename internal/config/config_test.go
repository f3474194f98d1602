package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv pins the variables Load reads so ambient values cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "SECRET_KEY", "AUTH_TOKEN_DURATION", "BCRYPT_COST",
		"SERVER_PORT", "TRUSTED_ORIGINS", "DB_CHANNEL_BINDING",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, []byte(devSecretKey), cfg.Auth.SecretKey)
	assert.Equal(t, 5*24*time.Hour+5*time.Second, cfg.Auth.TokenDuration)
	assert.Equal(t, 13, cfg.Auth.BcryptCost)
}

func TestLoad_DevSecretRejectedOutsideDevelopment(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "prod")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")
}

func TestLoad_ExplicitSecretAcceptedInProduction(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("SECRET_KEY", "a-real-production-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []byte("a-real-production-secret"), cfg.Auth.SecretKey)
	assert.False(t, cfg.Server.IsDevelopment())
}

func TestLoad_BcryptCostOutOfRange(t *testing.T) {
	clearEnv(t)
	t.Setenv("BCRYPT_COST", "99")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BCRYPT_COST")
}

func TestLoad_TokenDurationFromSeconds(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_TOKEN_DURATION", "3600")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.Auth.TokenDuration)
}

func TestConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host: "localhost", Port: "5432", User: "postgres",
		Password: "postgres", DBName: "cafeteria", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=cafeteria sslmode=disable",
		db.ConnectionString())

	db.ChannelBinding = "require"
	assert.Contains(t, db.ConnectionString(), "channel_binding=require")
}
