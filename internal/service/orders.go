package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/linemk/shop-online-api/internal/domain/models"
	"github.com/linemk/shop-online-api/internal/lib/apperr"
	"github.com/linemk/shop-online-api/internal/notify"
	"github.com/linemk/shop-online-api/internal/storage"
)

// OrderObserver получает событие о каждом оформленном заказе (метрики)
type OrderObserver interface {
	ObserveOrderPlaced()
}

type OrderService interface {
	// Checkout превращает корзину в неоплаченный заказ с позициями и заказами по магазинам.
	// Корзина очищается в той же транзакции.
	Checkout(ctx context.Context, userID int64) (*models.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]*models.Order, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error)
	// MarkPaid подтверждает оплату заказа и всех его заказов по магазинам
	MarkPaid(ctx context.Context, orderKey string) (*models.Order, error)
}

type orderService struct {
	log           *slog.Logger
	db            *sql.DB
	userRepo      storage.UserStorage
	cartRepo      storage.CartStorage
	orderRepo     storage.OrderStorage
	shopOrderRepo storage.ShopOrderStorage
	notifier      Notifier
	observer      OrderObserver
}

func NewOrderService(
	log *slog.Logger,
	db *sql.DB,
	userRepo storage.UserStorage,
	cartRepo storage.CartStorage,
	orderRepo storage.OrderStorage,
	shopOrderRepo storage.ShopOrderStorage,
	notifier Notifier,
	observer OrderObserver,
) OrderService {
	return &orderService{
		log:           log,
		db:            db,
		userRepo:      userRepo,
		cartRepo:      cartRepo,
		orderRepo:     orderRepo,
		shopOrderRepo: shopOrderRepo,
		notifier:      notifier,
		observer:      observer,
	}
}

func (s *orderService) Checkout(ctx context.Context, userID int64) (*models.Order, error) {
	const op = "service.OrderService.Checkout"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	cartItems, err := s.cartRepo.ListCartItems(ctx, userID)
	if err != nil {
		logger.Error("failed to list cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to list cart: %w", op, err)
	}
	if len(cartItems) == 0 {
		return nil, apperr.Empty(MsgCartEmpty)
	}

	// суммы по магазинам в порядке первого появления магазина в корзине
	var shopIDs []int64
	shopTotals := make(map[int64]decimal.Decimal)
	total := decimal.Zero
	for _, ci := range cartItems {
		line := ci.ItemPrice.Mul(decimal.NewFromInt(int64(ci.Quantity)))
		total = total.Add(line)
		if _, ok := shopTotals[ci.ShopID]; !ok {
			shopIDs = append(shopIDs, ci.ShopID)
		}
		shopTotals[ci.ShopID] = shopTotals[ci.ShopID].Add(line)
	}

	logger.Info("starting checkout transaction", slog.Int("lines", len(cartItems)), slog.String("total", total.String()))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	order, err := s.orderRepo.CreateOrderTx(ctx, tx, &models.Order{
		UserID:    userID,
		OrderKey:  uuid.NewString(),
		TotalPaid: total,
	})
	if err != nil {
		rollback(logger, tx)
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	for _, ci := range cartItems {
		oi := models.OrderItem{
			OrderID:  order.ID,
			ItemID:   ci.ItemID,
			Price:    ci.ItemPrice,
			Quantity: ci.Quantity,
		}
		if err := s.orderRepo.CreateOrderItemTx(ctx, tx, &oi); err != nil {
			rollback(logger, tx)
			logger.Error("failed to create order item", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to create order item: %w", op, err)
		}
		order.Items = append(order.Items, oi)
	}

	for _, shopID := range shopIDs {
		if _, err := s.shopOrderRepo.CreateShopOrderTx(ctx, tx, &models.ShopOrder{
			OrderID:   order.ID,
			ShopID:    shopID,
			UserID:    userID,
			TotalPaid: shopTotals[shopID],
			Status:    models.OrderStatusPending,
		}); err != nil {
			rollback(logger, tx)
			logger.Error("failed to create shop order", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to create shop order: %w", op, err)
		}
	}

	if err := s.cartRepo.DeleteCartLinesTx(ctx, tx, userID, cartItems); err != nil {
		rollback(logger, tx)
		logger.Error("failed to clear cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to clear cart: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	if s.observer != nil {
		s.observer.ObserveOrderPlaced()
	}

	logger.Info("order placed", slog.Int64("orderID", order.ID), slog.String("orderKey", order.OrderKey))
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID int64) ([]*models.Order, error) {
	const op = "service.OrderService.ListOrders"

	orders, err := s.orderRepo.ListPaidOrdersByUser(ctx, userID)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to list orders", err)
	}
	if len(orders) == 0 {
		return nil, apperr.Empty(MsgNoOrders)
	}
	return orders, nil
}

// GetOrder - только собственный оплаченный заказ; остальные неотличимы от несуществующих
func (s *orderService) GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	const op = "service.OrderService.GetOrder"

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, apperr.NotFound(MsgOrderNotFound)
		}
		return nil, wrapInternal(s.log, op, "failed to get order", err)
	}
	if order.UserID != userID || !order.BillingStatus {
		return nil, apperr.NotFound(MsgOrderNotFound)
	}

	items, err := s.orderRepo.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to list order items", err)
	}
	order.Items = items
	return order, nil
}

func (s *orderService) MarkPaid(ctx context.Context, orderKey string) (*models.Order, error) {
	const op = "service.OrderService.MarkPaid"
	logger := s.log.With(slog.String("op", op), slog.String("orderKey", orderKey))

	order, err := s.orderRepo.GetOrderByKey(ctx, orderKey)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, apperr.NotFound(MsgOrderNotFound)
		}
		return nil, wrapInternal(s.log, op, "failed to get order", err)
	}
	if order.BillingStatus {
		return nil, apperr.Conflict(MsgOrderAlreadyPaid)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	if err := s.orderRepo.MarkOrderPaidTx(ctx, tx, order.ID); err != nil {
		rollback(logger, tx)
		logger.Error("failed to mark order paid", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to mark order paid: %w", op, err)
	}
	if err := s.shopOrderRepo.MarkPaidByOrderTx(ctx, tx, order.ID); err != nil {
		rollback(logger, tx)
		logger.Error("failed to mark shop orders paid", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to mark shop orders paid: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}
	order.BillingStatus = true

	user, err := s.userRepo.GetUserByID(ctx, order.UserID)
	if err != nil {
		// оплата уже зафиксирована, без письма можно обойтись
		logger.Warn("failed to load buyer for confirmation email", slog.Any("error", err))
	} else {
		logDelivery(logger, notify.KindOrderConfirmation, s.notifier.SendOrderConfirmation(ctx, user.Email, order))
	}

	logger.Info("order paid", slog.Int64("orderID", order.ID))
	return order, nil
}
