package models

import "time"

// Shop - витрина продавца. Один пользователь владеет не более чем одним магазином.
type Shop struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ShopName    string    `json:"shop_name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category принадлежит магазину; имя и слаг уникальны в рамках магазина
type Category struct {
	ID     int64  `json:"id"`
	ShopID int64  `json:"shop_id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
}
