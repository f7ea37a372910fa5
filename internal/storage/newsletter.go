package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/shop-online-api/internal/domain/models"
)

// NewsLetterStorage - подписки на рассылку. Неактивных строк с одним email
// может быть несколько, активная не более одной (частичный уникальный индекс).
type NewsLetterStorage interface {
	CreateSubscription(ctx context.Context, email string) (*models.NewsLetter, error)
	ActiveExists(ctx context.Context, email string) (bool, error)
	// Activate активирует последнюю неактивную подписку для email
	Activate(ctx context.Context, email string) error
	Deactivate(ctx context.Context, email string) error
	GetSubscriptionByID(ctx context.Context, id int64) (*models.NewsLetter, error)
	ListSubscriptions(ctx context.Context) ([]*models.NewsLetter, error)
	DeleteSubscription(ctx context.Context, id int64) error
}

type newsLetterRepository struct {
	db *sql.DB
}

func NewNewsLetterRepository(db *sql.DB) NewsLetterStorage {
	return &newsLetterRepository{db: db}
}

func (r *newsLetterRepository) CreateSubscription(ctx context.Context, email string) (*models.NewsLetter, error) {
	nl := &models.NewsLetter{Email: email}
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO newsletters (email, is_active) VALUES ($1, FALSE) RETURNING id, created_at", email,
	).Scan(&nl.ID, &nl.CreatedAt)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return nl, nil
}

func (r *newsLetterRepository) ActiveExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM newsletters WHERE email = $1 AND is_active = TRUE)", email,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *newsLetterRepository) Activate(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE newsletters SET is_active = TRUE
		 WHERE id = (SELECT id FROM newsletters WHERE email = $1 AND is_active = FALSE ORDER BY id DESC LIMIT 1)`,
		email)
	if err != nil {
		return mapWriteError(err)
	}
	return affectedOrNotFound(res, ErrNewsletterNotFound)
}

func (r *newsLetterRepository) Deactivate(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE newsletters SET is_active = FALSE WHERE email = $1 AND is_active = TRUE", email)
	if err != nil {
		return fmt.Errorf("failed to deactivate subscription: %w", err)
	}
	return affectedOrNotFound(res, ErrNewsletterNotFound)
}

func (r *newsLetterRepository) GetSubscriptionByID(ctx context.Context, id int64) (*models.NewsLetter, error) {
	nl := &models.NewsLetter{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, is_active, created_at FROM newsletters WHERE id = $1", id,
	).Scan(&nl.ID, &nl.Email, &nl.IsActive, &nl.CreatedAt)
	if err != nil {
		return nil, notFound(err, ErrNewsletterNotFound)
	}
	return nl, nil
}

func (r *newsLetterRepository) ListSubscriptions(ctx context.Context) ([]*models.NewsLetter, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, email, is_active, created_at FROM newsletters ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.NewsLetter
	for rows.Next() {
		nl := &models.NewsLetter{}
		if err := rows.Scan(&nl.ID, &nl.Email, &nl.IsActive, &nl.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, nl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *newsLetterRepository) DeleteSubscription(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM newsletters WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return affectedOrNotFound(res, ErrNewsletterNotFound)
}
