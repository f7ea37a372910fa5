package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/shop-online-api/internal/domain/models"
)

// ShopStorage описывает методы для работы с магазинами.
type ShopStorage interface {
	CreateShopTx(ctx context.Context, tx *sql.Tx, shop *models.Shop) (*models.Shop, error)
	GetShopBySlug(ctx context.Context, slug string) (*models.Shop, error)
	// GetShopByUserID возвращает магазин владельца независимо от одобрения
	GetShopByUserID(ctx context.Context, userID int64) (*models.Shop, error)
	ListShops(ctx context.Context, approvedOnly bool) ([]*models.Shop, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ApproveShop(ctx context.Context, id int64) error
}

type shopRepository struct {
	db *sql.DB
}

func NewShopRepository(db *sql.DB) ShopStorage {
	return &shopRepository{db: db}
}

const shopColumns = "id, user_id, shop_name, slug, description, is_approved, created_at"

func scanShop(row interface{ Scan(dest ...any) error }) (*models.Shop, error) {
	shop := &models.Shop{}
	if err := row.Scan(&shop.ID, &shop.UserID, &shop.ShopName, &shop.Slug,
		&shop.Description, &shop.IsApproved, &shop.CreatedAt); err != nil {
		return nil, err
	}
	return shop, nil
}

func (r *shopRepository) CreateShopTx(ctx context.Context, tx *sql.Tx, shop *models.Shop) (*models.Shop, error) {
	err := tx.QueryRowContext(ctx,
		`INSERT INTO shops (user_id, shop_name, slug, description, is_approved)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		shop.UserID, shop.ShopName, shop.Slug, shop.Description, shop.IsApproved,
	).Scan(&shop.ID, &shop.CreatedAt)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return shop, nil
}

func (r *shopRepository) GetShopBySlug(ctx context.Context, slug string) (*models.Shop, error) {
	shop, err := scanShop(r.db.QueryRowContext(ctx, "SELECT "+shopColumns+" FROM shops WHERE slug = $1", slug))
	if err != nil {
		return nil, notFound(err, ErrShopNotFound)
	}
	return shop, nil
}

func (r *shopRepository) GetShopByUserID(ctx context.Context, userID int64) (*models.Shop, error) {
	shop, err := scanShop(r.db.QueryRowContext(ctx, "SELECT "+shopColumns+" FROM shops WHERE user_id = $1", userID))
	if err != nil {
		return nil, notFound(err, ErrShopNotFound)
	}
	return shop, nil
}

func (r *shopRepository) ListShops(ctx context.Context, approvedOnly bool) ([]*models.Shop, error) {
	query := "SELECT " + shopColumns + " FROM shops"
	if approvedOnly {
		query += " WHERE is_approved = TRUE"
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []*models.Shop
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, shop)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *shopRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM shops WHERE slug = $1)", slug).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *shopRepository) ApproveShop(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE shops SET is_approved = TRUE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to approve shop: %w", err)
	}
	return affectedOrNotFound(res, ErrShopNotFound)
}
