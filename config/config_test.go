package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "notes-api", cfg.AppName)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, "devsecret", cfg.JWTSecret)
	require.Equal(t, "db/migrations", cfg.MigrationsDir)
	require.Equal(t, "notes", cfg.ESNotesIndex)
	require.False(t, cfg.MailSendEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TOKEN_TTL", "30m")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("MAIL_SEND_ENABLED", "true")

	cfg := Load()

	require.Equal(t, "9999", cfg.Port)
	require.Equal(t, "s3cret", cfg.JWTSecret)
	require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.Equal(t, int32(25), cfg.DBMaxConns)
	require.True(t, cfg.MailSendEnabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TOKEN_TTL", "not-a-duration")
	t.Setenv("DB_MAX_CONNS", "not-an-int")
	t.Setenv("MAIL_SEND_ENABLED", "not-a-bool")

	cfg := Load()

	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, int32(10), cfg.DBMaxConns)
	require.False(t, cfg.MailSendEnabled)
}

func TestPostgresDSN(t *testing.T) {
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_HOST", "h")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "d")

	cfg := Load()
	require.Equal(t, "postgres://u:p@h:5433/d?sslmode=disable", cfg.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,,")

	cfg := Load()
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}
