package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// EnvironmentTest переключает приложение на тестовую SQLite-базу
const EnvironmentTest = "test"

type Config struct {
	Env         string           `yaml:"env" env:"ENV" env-default:"local"` // окружение логгера: local, dev, prod
	Environment string           `yaml:"environment" env:"ENVIRONMENT" env-default:"production"`
	HTTPServer  HTTPServerConfig `yaml:"http_server"`
	Database    DatabaseConfig   `yaml:"database"`
	JWT         JWTConfig        `yaml:"jwt"`
	Email       EmailConfig      `yaml:"email"`
	Migrations  MigrationsConfig `yaml:"migrations"`
}

// HTTPServerConfig структура http сервера
type HTTPServerConfig struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// DatabaseConfig структура по работе с БД
type DatabaseConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-default:"postgres"`
	Password string `yaml:"-" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env-default:"shop-online-api"`
	SSLMode  string `yaml:"sslmode" env-default:"disable"`
	// SQLitePath используется только при ENVIRONMENT=test
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"./test.db"`
}

// JWTConfig настройка jwt
type JWTConfig struct {
	Secret   string `yaml:"-" env:"JWT_SECRET" env-required:"true"`
	TokenTTL int    `yaml:"token_ttl" env-default:"60"` // минуты
}

// EmailConfig настройка отправки писем через SendGrid
type EmailConfig struct {
	SendGridAPIKey string `yaml:"-" env:"SENDGRID_API_KEY"`
	From           string `yaml:"from" env:"FROM_EMAIL" env-default:"noreply@shop-online.local"`
	Host           string `yaml:"host" env:"HOST" env-default:"localhost:8080"` // хост для ссылок в письмах
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./internal/storage/migrations/postgres"`
}

// IsTest сообщает, выбран ли тестовый движок БД
func (c *Config) IsTest() bool {
	return c.Environment == EnvironmentTest
}

// MustLoad - если не загружаем - паникуем
func MustLoad() *Config {
	// .env необязателен, переменные окружения имеют приоритет
	_ = godotenv.Load()

	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s: %v", configPath, err)
	}

	return &cfg
}
