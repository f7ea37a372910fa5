package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/lib/pq"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrShopNotFound       = errors.New("shop not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrShopOrderNotFound  = errors.New("shop order not found")
	ErrReviewNotFound     = errors.New("item review not found")
	ErrNewsletterNotFound = errors.New("newsletter subscription not found")
)

// DuplicateError - нарушение уникального ограничения. Column - последний столбец
// ограничения (для составных (shop_id, name) это name).
type DuplicateError struct {
	Table  string
	Column string
	Err    error
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate value for %s.%s: %v", e.Table, e.Column, e.Err)
}

func (e *DuplicateError) Unwrap() error {
	return e.Err
}

// IsDuplicate сообщает, что err - нарушение уникальности по указанному столбцу
func IsDuplicate(err error, column string) bool {
	var dupErr *DuplicateError
	return errors.As(err, &dupErr) && dupErr.Column == column
}

// querier - общее подмножество *sql.DB и *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const pqUniqueViolation = "23505"

var (
	// Key (shop_id, name)=(1, Hats) already exists.
	pqDetailColumns = regexp.MustCompile(`Key \(([^)]*)\)=`)
	// UNIQUE constraint failed: categories.shop_id, categories.name
	sqliteUniquePrefix = "UNIQUE constraint failed: "
)

// mapWriteError превращает нарушение уникальности (postgres или sqlite) в *DuplicateError
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		column := ""
		if m := pqDetailColumns.FindStringSubmatch(pqErr.Detail); len(m) == 2 {
			column = lastColumn(m[1])
		}
		return &DuplicateError{Table: pqErr.Table, Column: column, Err: err}
	}

	msg := err.Error()
	if idx := strings.Index(msg, sqliteUniquePrefix); idx >= 0 {
		cols := msg[idx+len(sqliteUniquePrefix):]
		if end := strings.Index(cols, " ("); end >= 0 {
			cols = cols[:end]
		}
		last := lastColumn(cols)
		table, column, found := strings.Cut(last, ".")
		if !found {
			return &DuplicateError{Column: last, Err: err}
		}
		return &DuplicateError{Table: table, Column: column, Err: err}
	}

	return err
}

// sqlTimestamp переводит время в UTC-строку того же вида, что CURRENT_TIMESTAMP в sqlite.
// В sqlite created_at сравнивается как текст, postgres приводит строку к timestamptz
// в зоне сессии (в DSN timezone=UTC).
func sqlTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05.999999")
}

func lastColumn(list string) string {
	parts := strings.Split(list, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}

// notFound подменяет sql.ErrNoRows на доменную ошибку хранилища
func notFound(err, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}

// affectedOrNotFound возвращает sentinel, если запрос не затронул ни одной строки
func affectedOrNotFound(res sql.Result, sentinel error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sentinel
	}
	return nil
}
