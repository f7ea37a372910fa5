package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/shop-online-api/internal/domain/models"
	"github.com/linemk/shop-online-api/internal/lib/apperr"
	"github.com/linemk/shop-online-api/internal/notify"
	"github.com/linemk/shop-online-api/internal/storage"
)

// ShopOrderService - заказы глазами магазина. Видны только оплаченные.
type ShopOrderService interface {
	List(ctx context.Context, shop *models.Shop) ([]*models.ShopOrder, error)
	Get(ctx context.Context, shop *models.Shop, id int64) (*models.ShopOrder, error)
	UpdateStatus(ctx context.Context, shop *models.Shop, id int64, status models.OrderStatus) (*models.ShopOrder, error)
	Customers(ctx context.Context, shop *models.Shop) ([]*models.User, error)
	CustomerOrders(ctx context.Context, shop *models.Shop, userID int64) ([]*models.ShopOrder, error)
	// GetByID - просмотр любого заказа магазина администратором
	GetByID(ctx context.Context, id int64) (*models.ShopOrder, error)
}

type shopOrderService struct {
	log           *slog.Logger
	userRepo      storage.UserStorage
	shopOrderRepo storage.ShopOrderStorage
	notifier      Notifier
}

func NewShopOrderService(log *slog.Logger, userRepo storage.UserStorage, shopOrderRepo storage.ShopOrderStorage, notifier Notifier) ShopOrderService {
	return &shopOrderService{log: log, userRepo: userRepo, shopOrderRepo: shopOrderRepo, notifier: notifier}
}

func (s *shopOrderService) List(ctx context.Context, shop *models.Shop) ([]*models.ShopOrder, error) {
	const op = "service.ShopOrderService.List"

	orders, err := s.shopOrderRepo.ListPaidShopOrders(ctx, shop.ID)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to list shop orders", err)
	}
	if len(orders) == 0 {
		return nil, apperr.Empty(MsgNoOrders)
	}
	return orders, nil
}

func (s *shopOrderService) Get(ctx context.Context, shop *models.Shop, id int64) (*models.ShopOrder, error) {
	const op = "service.ShopOrderService.Get"

	so, err := s.shopOrderRepo.GetPaidShopOrder(ctx, shop.ID, id)
	if err != nil {
		if errors.Is(err, storage.ErrShopOrderNotFound) {
			return nil, apperr.NotFound(MsgOrderNotFound)
		}
		return nil, wrapInternal(s.log, op, "failed to get shop order", err)
	}
	return so, nil
}

func (s *shopOrderService) UpdateStatus(ctx context.Context, shop *models.Shop, id int64, status models.OrderStatus) (*models.ShopOrder, error) {
	const op = "service.ShopOrderService.UpdateStatus"
	logger := s.log.With(slog.String("op", op), slog.Int64("shopID", shop.ID), slog.Int64("shopOrderID", id))

	if !status.IsValid() {
		return nil, apperr.Invalid(MsgInvalidStatus)
	}

	so, err := s.Get(ctx, shop, id)
	if err != nil {
		return nil, err
	}

	if err := s.shopOrderRepo.UpdateShopOrderStatus(ctx, so.ID, status); err != nil {
		if errors.Is(err, storage.ErrShopOrderNotFound) {
			return nil, apperr.NotFound(MsgOrderNotFound)
		}
		logger.Error("failed to update status", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update status: %w", op, err)
	}
	so.Status = status

	buyer, err := s.userRepo.GetUserByID(ctx, so.UserID)
	if err != nil {
		logger.Warn("failed to load buyer for status email", slog.Any("error", err))
	} else {
		logDelivery(logger, notify.KindStatusUpdated, s.notifier.SendStatusUpdated(ctx, buyer.Email, so))
	}

	logger.Info("shop order status updated", slog.String("status", string(status)))
	return so, nil
}

func (s *shopOrderService) Customers(ctx context.Context, shop *models.Shop) ([]*models.User, error) {
	const op = "service.ShopOrderService.Customers"

	users, err := s.shopOrderRepo.ListShopCustomers(ctx, shop.ID)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to list customers", err)
	}
	if len(users) == 0 {
		return nil, apperr.Empty(MsgNoCustomers)
	}
	return users, nil
}

func (s *shopOrderService) CustomerOrders(ctx context.Context, shop *models.Shop, userID int64) ([]*models.ShopOrder, error) {
	const op = "service.ShopOrderService.CustomerOrders"

	orders, err := s.shopOrderRepo.ListPaidShopOrdersByCustomer(ctx, shop.ID, userID)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to list customer orders", err)
	}
	if len(orders) == 0 {
		return nil, apperr.Empty(MsgNoCustomerOrders)
	}
	return orders, nil
}

func (s *shopOrderService) GetByID(ctx context.Context, id int64) (*models.ShopOrder, error) {
	const op = "service.ShopOrderService.GetByID"

	so, err := s.shopOrderRepo.GetShopOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrShopOrderNotFound) {
			return nil, apperr.NotFound(MsgShopOrderNotFound)
		}
		return nil, wrapInternal(s.log, op, "failed to get shop order", err)
	}
	return so, nil
}
