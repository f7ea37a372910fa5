package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus - статус выполнения заказа магазином
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order - заказ покупателя на уровне площадки
type Order struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	OrderKey      string          `json:"order_key"`
	BillingStatus bool            `json:"billing_status"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []OrderItem     `json:"items,omitempty"`
}

// OrderItem хранит цену товара на момент покупки
type OrderItem struct {
	ID       int64           `json:"id"`
	OrderID  int64           `json:"order_id"`
	ItemID   int64           `json:"item_id"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// ShopOrder - часть заказа, относящаяся к одному магазину
type ShopOrder struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"order_id"`
	ShopID        int64           `json:"shop_id"`
	UserID        int64           `json:"user_id"`
	BillingStatus bool            `json:"billing_status"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Status        OrderStatus     `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ItemStats - агрегированная статистика продаж товара магазина
type ItemStats struct {
	ItemID        int64           `json:"item_id"`
	ItemName      string          `json:"item_name"`
	TotalPrice    decimal.Decimal `json:"price"`
	TotalQuantity int             `json:"quantity"`
	WishListCount int             `json:"wish_list_count"`
	ReviewsCount  int             `json:"reviews_count"`
	AverageRating float64         `json:"average_rating"`
}

// SoldItem - строка оплаченного заказа по товару магазина (цена за единицу и количество)
type SoldItem struct {
	ItemID   int64
	ItemName string
	Price    decimal.Decimal
	Quantity int
}
