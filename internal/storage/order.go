package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/shop-online-api/internal/domain/models"
)

// OrderStorage описывает методы для работы с заказами покупателя
type OrderStorage interface {
	CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) (*models.Order, error)
	CreateOrderItemTx(ctx context.Context, tx *sql.Tx, item *models.OrderItem) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetOrderByKey(ctx context.Context, key string) (*models.Order, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error)
	ListPaidOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error)
	MarkOrderPaidTx(ctx context.Context, tx *sql.Tx, orderID int64) error
	// UserBoughtItem проверяет, есть ли у пользователя оплаченный заказ с этим товаром
	UserBoughtItem(ctx context.Context, userID, itemID int64) (bool, error)
}

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

const orderColumns = "id, user_id, order_key, billing_status, total_paid, created_at"

func scanOrder(row interface{ Scan(dest ...any) error }) (*models.Order, error) {
	order := &models.Order{}
	if err := row.Scan(&order.ID, &order.UserID, &order.OrderKey, &order.BillingStatus,
		&order.TotalPaid, &order.CreatedAt); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) (*models.Order, error) {
	err := tx.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, order_key, billing_status, total_paid)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		order.UserID, order.OrderKey, order.BillingStatus, order.TotalPaid,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return order, nil
}

func (r *orderRepository) CreateOrderItemTx(ctx context.Context, tx *sql.Tx, item *models.OrderItem) error {
	err := tx.QueryRowContext(ctx,
		"INSERT INTO order_items (order_id, item_id, price, quantity) VALUES ($1, $2, $3, $4) RETURNING id",
		item.OrderID, item.ItemID, item.Price, item.Quantity,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order item: %w", err)
	}
	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	order, err := scanOrder(r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return order, nil
}

func (r *orderRepository) GetOrderByKey(ctx context.Context, key string) (*models.Order, error) {
	order, err := scanOrder(r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE order_key = $1", key))
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return order, nil
}

func (r *orderRepository) ListOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, order_id, item_id, price, quantity FROM order_items WHERE order_id = $1 ORDER BY id", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var oi models.OrderItem
		if err := rows.Scan(&oi.ID, &oi.OrderID, &oi.ItemID, &oi.Price, &oi.Quantity); err != nil {
			return nil, err
		}
		items = append(items, oi)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) ListPaidOrdersByUser(ctx context.Context, userID int64) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = $1 AND billing_status = TRUE ORDER BY created_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) MarkOrderPaidTx(ctx context.Context, tx *sql.Tx, orderID int64) error {
	res, err := tx.ExecContext(ctx, "UPDATE orders SET billing_status = TRUE WHERE id = $1", orderID)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	return affectedOrNotFound(res, ErrOrderNotFound)
}

func (r *orderRepository) UserBoughtItem(ctx context.Context, userID, itemID int64) (bool, error) {
	var bought bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.user_id = $1 AND oi.item_id = $2 AND o.billing_status = TRUE)`,
		userID, itemID,
	).Scan(&bought)
	if err != nil {
		return false, err
	}
	return bought, nil
}
