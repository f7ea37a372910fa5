package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item - товар магазина. WishListCount, ReviewsCount и AverageRating
// вычисляются запросом и отражают состояние на момент чтения.
type Item struct {
	ID            int64           `json:"id"`
	ShopID        int64           `json:"shop_id"`
	CategoryID    int64           `json:"category_id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CreatedAt     time.Time       `json:"created_at"`
	WishListCount int             `json:"wish_list_count"`
	ReviewsCount  int             `json:"reviews_count"`
	AverageRating float64         `json:"average_rating"`
}

// CartItem уникален по паре (UserID, ItemID)
type CartItem struct {
	ID       int64 `json:"id"`
	UserID   int64 `json:"user_id"`
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
	// заполняются через JOIN с items
	ItemName  string          `json:"item_name"`
	ItemSlug  string          `json:"item_slug"`
	ShopID    int64           `json:"shop_id"`
	ItemPrice decimal.Decimal `json:"item_price"`
}

// ItemReview можно оставить только после оплаченной покупки товара
type ItemReview struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewsLetter - подписка на рассылку; email уникален среди активных подписок
type NewsLetter struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
