package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/linemk/shop-online-api/internal/domain/models"
	"github.com/linemk/shop-online-api/internal/notify"
)

// сообщения, которые уходят клиенту в {"detail": ...}
const (
	MsgUserNotFound       = "User not found."
	MsgShopNotFound       = "Shop not found."
	MsgCategoryNotFound   = "Category not found."
	MsgItemNotFound       = "Item not found."
	MsgOrderNotFound      = "Order not found."
	MsgCartItemNotFound   = "Cart item not found."
	MsgShopOrderNotFound  = "Shop order not found."
	MsgReviewNotFound     = "Item review not found."
	MsgEmailNotFound      = "Email not found."
	MsgEmailTaken         = "Email is already taken."
	MsgUsernameTaken      = "Username is already taken."
	MsgShopNameTaken      = "Shop name is already taken."
	MsgNewsletterTaken    = "Email is already signed for newsletter."
	MsgCartEmpty          = "Cart is empty."
	MsgNoOrders           = "You have no orders yet."
	MsgNoCustomerOrders   = "User has no orders in your shop."
	MsgNoCustomers        = "No users have ordered in your shop."
	MsgNoItemsSold        = "No items have been sold in your shop."
	MsgNoRevenue          = "No orders have been made in your shop."
	MsgNoRevenueInPeriod  = "You have no orders in your shop for the given period."
	MsgReviewNotAllowed   = "You can leave a review only if you bought this item."
	MsgReviewExists       = "You have already reviewed this item."
	MsgForbidden          = "Forbidden."
	MsgInvalidCredentials = "Could not validate credentials."
	MsgWrongCredentials   = "Incorrect email or password."
	MsgInactiveUser       = "Please activate your account."
	MsgInvalidToken       = "Invalid or expired token."
	MsgOrderAlreadyPaid   = "Order is already paid."
	MsgInvalidStatus      = "Unknown order status."
	MsgNegativePrice      = "Price must not be negative."
	MsgInvalidPeriod      = "Start date must not be after end date."
)

// Notifier - отправка транзакционных писем; реализуется notify.Dispatcher
type Notifier interface {
	SendActivation(ctx context.Context, user *models.User) notify.Result
	SendPasswordReset(ctx context.Context, user *models.User) notify.Result
	SendNewsletterActivation(ctx context.Context, email string) notify.Result
	SendStatusUpdated(ctx context.Context, email string, so *models.ShopOrder) notify.Result
	SendOrderConfirmation(ctx context.Context, email string, order *models.Order) notify.Result
}

var _ Notifier = (*notify.Dispatcher)(nil)

// logDelivery фиксирует исход отправки письма. Неудача не прерывает операцию.
func logDelivery(logger *slog.Logger, kind string, res notify.Result) {
	if res.Delivered {
		logger.Info("email delivered", slog.String("kind", kind))
		return
	}
	logger.Warn("email not delivered", slog.String("kind", kind), slog.Any("error", res.Err))
}

func rollback(logger *slog.Logger, tx *sql.Tx) {
	if rbErr := tx.Rollback(); rbErr != nil {
		logger.Error("transaction rollback failed", slog.Any("error", rbErr))
	}
}
