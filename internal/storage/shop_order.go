package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/linemk/shop-online-api/internal/domain/models"
)

// ShopOrderStorage - заказы на уровне магазина. Магазину видны только оплаченные.
type ShopOrderStorage interface {
	CreateShopOrderTx(ctx context.Context, tx *sql.Tx, so *models.ShopOrder) (*models.ShopOrder, error)
	MarkPaidByOrderTx(ctx context.Context, tx *sql.Tx, orderID int64) error
	ListPaidShopOrders(ctx context.Context, shopID int64) ([]*models.ShopOrder, error)
	GetPaidShopOrder(ctx context.Context, shopID, id int64) (*models.ShopOrder, error)
	ListPaidShopOrdersByCustomer(ctx context.Context, shopID, userID int64) ([]*models.ShopOrder, error)
	ListShopCustomers(ctx context.Context, shopID int64) ([]*models.User, error)
	GetShopOrderByID(ctx context.Context, id int64) (*models.ShopOrder, error)
	UpdateShopOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error
	SumRevenue(ctx context.Context, shopID int64) (decimal.Decimal, error)
	SumRevenueBetween(ctx context.Context, shopID int64, from, to time.Time) (decimal.Decimal, error)
	// ListSoldItems возвращает строки оплаченных заказов по товарам магазина
	ListSoldItems(ctx context.Context, shopID int64) ([]models.SoldItem, error)
}

type shopOrderRepository struct {
	db *sql.DB
}

func NewShopOrderRepository(db *sql.DB) ShopOrderStorage {
	return &shopOrderRepository{db: db}
}

const shopOrderColumns = "id, order_id, shop_id, user_id, billing_status, total_paid, status, created_at"

func scanShopOrder(row interface{ Scan(dest ...any) error }) (*models.ShopOrder, error) {
	so := &models.ShopOrder{}
	var status string
	if err := row.Scan(&so.ID, &so.OrderID, &so.ShopID, &so.UserID, &so.BillingStatus,
		&so.TotalPaid, &status, &so.CreatedAt); err != nil {
		return nil, err
	}
	so.Status = models.OrderStatus(status)
	return so, nil
}

func (r *shopOrderRepository) queryShopOrders(ctx context.Context, query string, args ...any) ([]*models.ShopOrder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.ShopOrder
	for rows.Next() {
		so, err := scanShopOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, so)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *shopOrderRepository) CreateShopOrderTx(ctx context.Context, tx *sql.Tx, so *models.ShopOrder) (*models.ShopOrder, error) {
	if so.Status == "" {
		so.Status = models.OrderStatusPending
	}
	err := tx.QueryRowContext(ctx,
		`INSERT INTO shop_orders (order_id, shop_id, user_id, billing_status, total_paid, status)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		so.OrderID, so.ShopID, so.UserID, so.BillingStatus, so.TotalPaid, string(so.Status),
	).Scan(&so.ID, &so.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert shop order: %w", err)
	}
	return so, nil
}

func (r *shopOrderRepository) MarkPaidByOrderTx(ctx context.Context, tx *sql.Tx, orderID int64) error {
	if _, err := tx.ExecContext(ctx, "UPDATE shop_orders SET billing_status = TRUE WHERE order_id = $1", orderID); err != nil {
		return fmt.Errorf("failed to mark shop orders paid: %w", err)
	}
	return nil
}

func (r *shopOrderRepository) ListPaidShopOrders(ctx context.Context, shopID int64) ([]*models.ShopOrder, error) {
	return r.queryShopOrders(ctx,
		"SELECT "+shopOrderColumns+" FROM shop_orders WHERE shop_id = $1 AND billing_status = TRUE ORDER BY created_at DESC, id DESC",
		shopID)
}

func (r *shopOrderRepository) GetPaidShopOrder(ctx context.Context, shopID, id int64) (*models.ShopOrder, error) {
	so, err := scanShopOrder(r.db.QueryRowContext(ctx,
		"SELECT "+shopOrderColumns+" FROM shop_orders WHERE id = $1 AND shop_id = $2 AND billing_status = TRUE",
		id, shopID))
	if err != nil {
		return nil, notFound(err, ErrShopOrderNotFound)
	}
	return so, nil
}

func (r *shopOrderRepository) ListPaidShopOrdersByCustomer(ctx context.Context, shopID, userID int64) ([]*models.ShopOrder, error) {
	return r.queryShopOrders(ctx,
		"SELECT "+shopOrderColumns+" FROM shop_orders WHERE shop_id = $1 AND user_id = $2 AND billing_status = TRUE ORDER BY created_at DESC, id DESC",
		shopID, userID)
}

func (r *shopOrderRepository) ListShopCustomers(ctx context.Context, shopID int64) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.pass_hash,
			u.is_active, u.is_superuser, u.role, u.created_at
		 FROM users u
		 WHERE u.id IN (SELECT so.user_id FROM shop_orders so WHERE so.shop_id = $1 AND so.billing_status = TRUE)
		 ORDER BY u.id`,
		shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *shopOrderRepository) GetShopOrderByID(ctx context.Context, id int64) (*models.ShopOrder, error) {
	so, err := scanShopOrder(r.db.QueryRowContext(ctx, "SELECT "+shopOrderColumns+" FROM shop_orders WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, ErrShopOrderNotFound)
	}
	return so, nil
}

func (r *shopOrderRepository) UpdateShopOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	res, err := r.db.ExecContext(ctx, "UPDATE shop_orders SET status = $1 WHERE id = $2", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update shop order status: %w", err)
	}
	return affectedOrNotFound(res, ErrShopOrderNotFound)
}

func (r *shopOrderRepository) SumRevenue(ctx context.Context, shopID int64) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.QueryRowContext(ctx,
		"SELECT SUM(total_paid) FROM shop_orders WHERE shop_id = $1 AND billing_status = TRUE", shopID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *shopOrderRepository) SumRevenueBetween(ctx context.Context, shopID int64, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.QueryRowContext(ctx,
		`SELECT SUM(total_paid) FROM shop_orders
		 WHERE shop_id = $1 AND billing_status = TRUE AND created_at BETWEEN $2 AND $3`,
		shopID, sqlTimestamp(from), sqlTimestamp(to),
	).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *shopOrderRepository) ListSoldItems(ctx context.Context, shopID int64) ([]models.SoldItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT oi.item_id, i.name, oi.price, oi.quantity
		 FROM order_items oi
		 JOIN orders o ON o.id = oi.order_id
		 JOIN items i ON i.id = oi.item_id
		 WHERE i.shop_id = $1 AND o.billing_status = TRUE
		 ORDER BY oi.item_id, oi.id`,
		shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sold []models.SoldItem
	for rows.Next() {
		var s models.SoldItem
		if err := rows.Scan(&s.ItemID, &s.ItemName, &s.Price, &s.Quantity); err != nil {
			return nil, err
		}
		sold = append(sold, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sold, nil
}
