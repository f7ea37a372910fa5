package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/shop-online-api/internal/domain/models"
)

// CategoryStorage описывает методы для работы с категориями магазина.
type CategoryStorage interface {
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetCategoryBySlugAndShop(ctx context.Context, shopID int64, slug string) (*models.Category, error)
	ListCategoriesByShop(ctx context.Context, shopID int64) ([]*models.Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) CategoryStorage {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO categories (shop_id, name, slug) VALUES ($1, $2, $3) RETURNING id",
		category.ShopID, category.Name, category.Slug,
	).Scan(&category.ID)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return category, nil
}

func (r *categoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category := &models.Category{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, shop_id, name, slug FROM categories WHERE slug = $1", slug,
	).Scan(&category.ID, &category.ShopID, &category.Name, &category.Slug)
	if err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}
	return category, nil
}

func (r *categoryRepository) GetCategoryBySlugAndShop(ctx context.Context, shopID int64, slug string) (*models.Category, error) {
	category := &models.Category{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, shop_id, name, slug FROM categories WHERE shop_id = $1 AND slug = $2", shopID, slug,
	).Scan(&category.ID, &category.ShopID, &category.Name, &category.Slug)
	if err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}
	return category, nil
}

func (r *categoryRepository) ListCategoriesByShop(ctx context.Context, shopID int64) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, shop_id, name, slug FROM categories WHERE shop_id = $1 ORDER BY name", shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.ShopID, &category.Name, &category.Slug); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1)", slug,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return affectedOrNotFound(res, ErrCategoryNotFound)
}
