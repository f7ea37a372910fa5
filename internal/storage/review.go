package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/shop-online-api/internal/domain/models"
)

type ReviewStorage interface {
	CreateReview(ctx context.Context, review *models.ItemReview) (*models.ItemReview, error)
	GetReviewByID(ctx context.Context, id int64) (*models.ItemReview, error)
	ListReviewsByItem(ctx context.Context, itemID int64) ([]*models.ItemReview, error)
	DeleteReview(ctx context.Context, id int64) error
}

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) ReviewStorage {
	return &reviewRepository{db: db}
}

func scanReview(row interface{ Scan(dest ...any) error }) (*models.ItemReview, error) {
	review := &models.ItemReview{}
	if err := row.Scan(&review.ID, &review.ItemID, &review.UserID, &review.Rating, &review.Text, &review.CreatedAt); err != nil {
		return nil, err
	}
	return review, nil
}

func (r *reviewRepository) CreateReview(ctx context.Context, review *models.ItemReview) (*models.ItemReview, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO item_reviews (item_id, user_id, rating, text) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		review.ItemID, review.UserID, review.Rating, review.Text,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return review, nil
}

func (r *reviewRepository) GetReviewByID(ctx context.Context, id int64) (*models.ItemReview, error) {
	review, err := scanReview(r.db.QueryRowContext(ctx,
		"SELECT id, item_id, user_id, rating, text, created_at FROM item_reviews WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, ErrReviewNotFound)
	}
	return review, nil
}

func (r *reviewRepository) ListReviewsByItem(ctx context.Context, itemID int64) ([]*models.ItemReview, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, item_id, user_id, rating, text, created_at FROM item_reviews WHERE item_id = $1 ORDER BY created_at DESC, id DESC",
		itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*models.ItemReview
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) DeleteReview(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM item_reviews WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return affectedOrNotFound(res, ErrReviewNotFound)
}
