package storage

import (
	"context"
	"database/sql"

	"github.com/linemk/shop-online-api/internal/domain/models"
)

type WishListStorage interface {
	// ToggleWishList удаляет товар из списка желаний, если он там был, иначе добавляет.
	// added сообщает, какое из действий произошло.
	ToggleWishList(ctx context.Context, userID, itemID int64) (added bool, err error)
	ListWishListItems(ctx context.Context, userID int64) ([]*models.Item, error)
}

type wishListRepository struct {
	db *sql.DB
}

func NewWishListRepository(db *sql.DB) WishListStorage {
	return &wishListRepository{db: db}
}

func (r *wishListRepository) ToggleWishList(ctx context.Context, userID, itemID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM wish_list WHERE user_id = $1 AND item_id = $2", userID, itemID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return false, nil
	}

	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO wish_list (user_id, item_id) VALUES ($1, $2)", userID, itemID,
	); err != nil {
		return false, mapWriteError(err)
	}
	return true, nil
}

func (r *wishListRepository) ListWishListItems(ctx context.Context, userID int64) ([]*models.Item, error) {
	return queryItems(ctx, r.db,
		itemSelect+" JOIN wish_list wl ON wl.item_id = i.id WHERE wl.user_id = $1 ORDER BY i.id", userID)
}
