package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/linemk/shop-online-api/internal/config"
	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "config_test_*.yaml")
	assert.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(content)
	assert.NoError(t, err)
	assert.NoError(t, tmpFile.Close())

	return tmpFile.Name()
}

func TestMustLoadByPath_Success(t *testing.T) {
	// Устанавливаем обязательные переменные окружения
	t.Setenv("DB_PASSWORD", "mypassword")
	t.Setenv("JWT_SECRET", "mysecret")
	t.Setenv("SENDGRID_API_KEY", "sg-key")

	path := writeConfig(t, `
env: "local"
http_server:
  address: "localhost:8080"
  timeout: "4s"
  idle_timeout: "60s"
database:
  host: "db_postgres"
  port: 5432
  user: "admin"
  name: "shop-online-api"
jwt:
  token_ttl: 30
email:
  from: "shop@example.com"
  host: "shop.example.com"
migrations:
  path: "./migrations"
`)

	cfg := config.MustLoadByPath(path)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "localhost:8080", cfg.HTTPServer.Address)
	assert.Equal(t, 4*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, 60*time.Second, cfg.HTTPServer.IdleTimeout)
	assert.Equal(t, "db_postgres", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "mypassword", cfg.Database.Password)
	assert.Equal(t, "shop-online-api", cfg.Database.Name)
	assert.Equal(t, "mysecret", cfg.JWT.Secret)
	assert.Equal(t, 30, cfg.JWT.TokenTTL)
	assert.Equal(t, "sg-key", cfg.Email.SendGridAPIKey)
	assert.Equal(t, "shop@example.com", cfg.Email.From)
	assert.Equal(t, "shop.example.com", cfg.Email.Host)
	assert.Equal(t, "./migrations", cfg.Migrations.Path)
	assert.False(t, cfg.IsTest())
}

func TestMustLoadByPath_TestEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "mysecret")
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("SQLITE_PATH", "file::memory:?cache=shared")

	path := writeConfig(t, `
env: "prod"
`)

	cfg := config.MustLoadByPath(path)

	assert.True(t, cfg.IsTest())
	assert.Equal(t, "file::memory:?cache=shared", cfg.Database.SQLitePath)
	assert.Equal(t, 60, cfg.JWT.TokenTTL)
}

func TestMustLoadByPath_FileNotFound(t *testing.T) {
	// Ожидаем панику, если файла не существует
	assert.Panics(t, func() {
		config.MustLoadByPath("non_existent_config.yaml")
	})
}
