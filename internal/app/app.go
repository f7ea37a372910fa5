package app

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/linemk/shop-online-api/internal/config"
	"github.com/linemk/shop-online-api/internal/storage/migrations"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sql.DB
}

// NewApp создаёт новый экземпляр App. В тестовом окружении поднимается SQLite
// со встроенными миграциями, иначе - подключение к postgres.
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	var (
		db  *sql.DB
		err error
	)
	if cfg.IsTest() {
		db, err = openSQLite(log, cfg.Database.SQLitePath)
	} else {
		db, err = openPostgres(cfg.Database)
	}
	if err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		Logger: log,
		DB:     db,
	}, nil
}

// PostgresDSN собирает DSN из конфигурации; params добавляются в query
func PostgresDSN(dbCfg config.DatabaseConfig, params url.Values) string {
	query := url.Values{}
	query.Set("sslmode", dbCfg.SSLMode)
	query.Set("timezone", "UTC")
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dbCfg.User, dbCfg.Password),
		Host:     fmt.Sprintf("%s:%d", dbCfg.Host, dbCfg.Port),
		Path:     dbCfg.Name,
		RawQuery: query.Encode(),
	}
	return u.String()
}

func openPostgres(dbCfg config.DatabaseConfig) (*sql.DB, error) {
	if dbCfg.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD environment variable is not set")
	}

	db, err := sql.Open("postgres", PostgresDSN(dbCfg, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func openSQLite(log *slog.Logger, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// SQLite не поддерживает параллельную запись
	db.SetMaxOpenConns(1)

	if err := MigrateSQLite(db); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("sqlite database ready", slog.String("path", path))
	return db, nil
}

// MigrateSQLite применяет встроенные sqlite-миграции
func MigrateSQLite(db *sql.DB) error {
	src, err := iofs.New(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
