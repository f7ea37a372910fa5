package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/shop-online-api/internal/domain/models"
)

// CartStorage описывает методы для работы с корзиной пользователя
type CartStorage interface {
	// UpsertCartItem добавляет товар в корзину или заменяет количество уже добавленного
	UpsertCartItem(ctx context.Context, userID, itemID int64, quantity int) (*models.CartItem, error)
	GetCartItem(ctx context.Context, userID, itemID int64) (*models.CartItem, error)
	GetCartItemByID(ctx context.Context, id int64) (*models.CartItem, error)
	ListCartItems(ctx context.Context, userID int64) ([]*models.CartItem, error)
	DeleteCartItem(ctx context.Context, userID, itemID int64) error
	DeleteCartItemByID(ctx context.Context, id int64) error
	// DeleteCartLinesTx удаляет ровно прочитанные строки; добавленные или изменённые позже остаются
	DeleteCartLinesTx(ctx context.Context, tx *sql.Tx, userID int64, lines []*models.CartItem) error
}

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) CartStorage {
	return &cartRepository{db: db}
}

const cartSelect = `
	SELECT c.id, c.user_id, c.item_id, c.quantity, i.name, i.slug, i.shop_id, i.price
	FROM cart_items c
	JOIN items i ON i.id = c.item_id`

func scanCartItem(row interface{ Scan(dest ...any) error }) (*models.CartItem, error) {
	ci := &models.CartItem{}
	if err := row.Scan(&ci.ID, &ci.UserID, &ci.ItemID, &ci.Quantity,
		&ci.ItemName, &ci.ItemSlug, &ci.ShopID, &ci.ItemPrice); err != nil {
		return nil, err
	}
	return ci, nil
}

func (r *cartRepository) UpsertCartItem(ctx context.Context, userID, itemID int64, quantity int) (*models.CartItem, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO cart_items (user_id, item_id, quantity) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, item_id) DO UPDATE SET quantity = EXCLUDED.quantity
		 RETURNING id`,
		userID, itemID, quantity,
	).Scan(&id)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return r.GetCartItemByID(ctx, id)
}

func (r *cartRepository) GetCartItem(ctx context.Context, userID, itemID int64) (*models.CartItem, error) {
	ci, err := scanCartItem(r.db.QueryRowContext(ctx, cartSelect+" WHERE c.user_id = $1 AND c.item_id = $2", userID, itemID))
	if err != nil {
		return nil, notFound(err, ErrCartItemNotFound)
	}
	return ci, nil
}

func (r *cartRepository) GetCartItemByID(ctx context.Context, id int64) (*models.CartItem, error) {
	ci, err := scanCartItem(r.db.QueryRowContext(ctx, cartSelect+" WHERE c.id = $1", id))
	if err != nil {
		return nil, notFound(err, ErrCartItemNotFound)
	}
	return ci, nil
}

func (r *cartRepository) ListCartItems(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, cartSelect+" WHERE c.user_id = $1 ORDER BY c.id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.CartItem
	for rows.Next() {
		ci, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, ci)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) DeleteCartItem(ctx context.Context, userID, itemID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = $1 AND item_id = $2", userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return affectedOrNotFound(res, ErrCartItemNotFound)
}

func (r *cartRepository) DeleteCartItemByID(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cart_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return affectedOrNotFound(res, ErrCartItemNotFound)
}

func (r *cartRepository) DeleteCartLinesTx(ctx context.Context, tx *sql.Tx, userID int64, lines []*models.CartItem) error {
	for _, line := range lines {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM cart_items WHERE id = $1 AND user_id = $2 AND quantity = $3",
			line.ID, userID, line.Quantity,
		); err != nil {
			return fmt.Errorf("failed to delete cart line %d: %w", line.ID, err)
		}
	}
	return nil
}
