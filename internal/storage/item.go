package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/shop-online-api/internal/domain/models"
)

// ItemStorage описывает методы для работы с товарами. Все выборки товара
// сразу подтягивают агрегаты: число добавлений в список желаний, число отзывов и средний рейтинг.
type ItemStorage interface {
	CreateItem(ctx context.Context, item *models.Item) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id int64) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemBySlug(ctx context.Context, slug string) (*models.Item, error)
	GetItemBySlugForShop(ctx context.Context, shopID int64, slug string) (*models.Item, error)
	ListItemsByShop(ctx context.Context, shopID int64) ([]*models.Item, error)
	ListItemsByCategory(ctx context.Context, categoryID int64) ([]*models.Item, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) ItemStorage {
	return &itemRepository{db: db}
}

const itemSelect = `
	SELECT i.id, i.shop_id, i.category_id, i.name, i.slug, i.description, i.price, i.created_at,
		(SELECT COUNT(*) FROM wish_list w WHERE w.item_id = i.id),
		(SELECT COUNT(*) FROM item_reviews ir WHERE ir.item_id = i.id),
		COALESCE((SELECT AVG(ir.rating) FROM item_reviews ir WHERE ir.item_id = i.id), 0)
	FROM items i`

func scanItem(row interface{ Scan(dest ...any) error }) (*models.Item, error) {
	item := &models.Item{}
	if err := row.Scan(&item.ID, &item.ShopID, &item.CategoryID, &item.Name, &item.Slug,
		&item.Description, &item.Price, &item.CreatedAt,
		&item.WishListCount, &item.ReviewsCount, &item.AverageRating); err != nil {
		return nil, err
	}
	return item, nil
}

// queryItems выполняет выборку на основе itemSelect
func queryItems(ctx context.Context, q querier, query string, args ...any) ([]*models.Item, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO items (shop_id, category_id, name, slug, description, price)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		item.ShopID, item.CategoryID, item.Name, item.Slug, item.Description, item.Price,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return item, nil
}

func (r *itemRepository) UpdateItem(ctx context.Context, item *models.Item) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET category_id = $1, name = $2, slug = $3, description = $4, price = $5
		 WHERE id = $6`,
		item.CategoryID, item.Name, item.Slug, item.Description, item.Price, item.ID,
	)
	if err != nil {
		return mapWriteError(err)
	}
	return affectedOrNotFound(res, ErrItemNotFound)
}

func (r *itemRepository) DeleteItem(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return affectedOrNotFound(res, ErrItemNotFound)
}

func (r *itemRepository) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	item, err := scanItem(r.db.QueryRowContext(ctx, itemSelect+" WHERE i.id = $1", id))
	if err != nil {
		return nil, notFound(err, ErrItemNotFound)
	}
	return item, nil
}

func (r *itemRepository) GetItemBySlug(ctx context.Context, slug string) (*models.Item, error) {
	item, err := scanItem(r.db.QueryRowContext(ctx, itemSelect+" WHERE i.slug = $1", slug))
	if err != nil {
		return nil, notFound(err, ErrItemNotFound)
	}
	return item, nil
}

func (r *itemRepository) GetItemBySlugForShop(ctx context.Context, shopID int64, slug string) (*models.Item, error) {
	item, err := scanItem(r.db.QueryRowContext(ctx, itemSelect+" WHERE i.shop_id = $1 AND i.slug = $2", shopID, slug))
	if err != nil {
		return nil, notFound(err, ErrItemNotFound)
	}
	return item, nil
}

func (r *itemRepository) ListItemsByShop(ctx context.Context, shopID int64) ([]*models.Item, error) {
	return queryItems(ctx, r.db, itemSelect+" WHERE i.shop_id = $1 ORDER BY i.id", shopID)
}

func (r *itemRepository) ListItemsByCategory(ctx context.Context, categoryID int64) ([]*models.Item, error) {
	return queryItems(ctx, r.db, itemSelect+" WHERE i.category_id = $1 ORDER BY i.id", categoryID)
}

func (r *itemRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM items WHERE slug = $1)", slug,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
