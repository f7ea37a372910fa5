package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/shop-online-api/internal/domain/models"
	"github.com/linemk/shop-online-api/internal/lib/apperr"
	"github.com/linemk/shop-online-api/internal/storage"
)

type CartService interface {
	List(ctx context.Context, userID int64) ([]*models.CartItem, error)
	// Add кладёт товар в корзину; повторное добавление заменяет количество
	Add(ctx context.Context, userID int64, itemSlug string, quantity int) (*models.CartItem, error)
	Remove(ctx context.Context, userID int64, itemSlug string) error
	// DeleteCartItem - удаление позиции администратором
	DeleteCartItem(ctx context.Context, id int64) error
}

type cartService struct {
	log      *slog.Logger
	cartRepo storage.CartStorage
	itemRepo storage.ItemStorage
}

func NewCartService(log *slog.Logger, cartRepo storage.CartStorage, itemRepo storage.ItemStorage) CartService {
	return &cartService{log: log, cartRepo: cartRepo, itemRepo: itemRepo}
}

func (s *cartService) List(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	const op = "service.CartService.List"

	items, err := s.cartRepo.ListCartItems(ctx, userID)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to list cart items", err)
	}
	if len(items) == 0 {
		return nil, apperr.Empty(MsgCartEmpty)
	}
	return items, nil
}

func (s *cartService) Add(ctx context.Context, userID int64, itemSlug string, quantity int) (*models.CartItem, error) {
	const op = "service.CartService.Add"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.String("item", itemSlug))

	if quantity < 1 {
		return nil, apperr.Invalid("Quantity must be at least 1.")
	}

	item, err := findItemBySlug(ctx, s.itemRepo, itemSlug)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to get item", err)
	}

	cartItem, err := s.cartRepo.UpsertCartItem(ctx, userID, item.ID, quantity)
	if err != nil {
		logger.Error("failed to upsert cart item", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to upsert cart item: %w", op, err)
	}

	logger.Info("cart updated", slog.Int("quantity", quantity))
	return cartItem, nil
}

func (s *cartService) Remove(ctx context.Context, userID int64, itemSlug string) error {
	const op = "service.CartService.Remove"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.String("item", itemSlug))

	item, err := findItemBySlug(ctx, s.itemRepo, itemSlug)
	if err != nil {
		return wrapInternal(s.log, op, "failed to get item", err)
	}

	if err := s.cartRepo.DeleteCartItem(ctx, userID, item.ID); err != nil {
		if errors.Is(err, storage.ErrCartItemNotFound) {
			return apperr.NotFound(MsgCartItemNotFound)
		}
		logger.Error("failed to delete cart item", slog.Any("error", err))
		return fmt.Errorf("%s: failed to delete cart item: %w", op, err)
	}

	logger.Info("item removed from cart")
	return nil
}

func (s *cartService) DeleteCartItem(ctx context.Context, id int64) error {
	const op = "service.CartService.DeleteCartItem"

	if err := s.cartRepo.DeleteCartItemByID(ctx, id); err != nil {
		if errors.Is(err, storage.ErrCartItemNotFound) {
			return apperr.NotFound(MsgCartItemNotFound)
		}
		return wrapInternal(s.log, op, "failed to delete cart item", err)
	}
	return nil
}
