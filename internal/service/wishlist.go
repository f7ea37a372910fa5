package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/linemk/shop-online-api/internal/domain/models"
	"github.com/linemk/shop-online-api/internal/lib/apperr"
	"github.com/linemk/shop-online-api/internal/storage"
)

const (
	MsgWishListAdded   = "Item added to the wish list."
	MsgWishListRemoved = "Item removed from the wish list."
	MsgWishListEmpty   = "Wish list is empty."
)

type WishListService interface {
	// Toggle добавляет товар в список желаний или убирает его оттуда.
	// Возвращает сообщение о выполненном действии.
	Toggle(ctx context.Context, userID int64, itemSlug string) (string, error)
	// List возвращает пустой срез, если список пуст
	List(ctx context.Context, userID int64) ([]*models.Item, error)
}

type wishListService struct {
	log          *slog.Logger
	wishListRepo storage.WishListStorage
	itemRepo     storage.ItemStorage
}

func NewWishListService(log *slog.Logger, wishListRepo storage.WishListStorage, itemRepo storage.ItemStorage) WishListService {
	return &wishListService{log: log, wishListRepo: wishListRepo, itemRepo: itemRepo}
}

func (s *wishListService) Toggle(ctx context.Context, userID int64, itemSlug string) (string, error) {
	const op = "service.WishListService.Toggle"

	item, err := findItemBySlug(ctx, s.itemRepo, itemSlug)
	if err != nil {
		return "", wrapInternal(s.log, op, "failed to get item", err)
	}

	added, err := s.wishListRepo.ToggleWishList(ctx, userID, item.ID)
	if err != nil {
		var dupErr *storage.DuplicateError
		if errors.As(err, &dupErr) {
			// параллельный toggle успел добавить ту же пару
			return "", apperr.Conflict("Wish list was changed concurrently, try again.")
		}
		return "", wrapInternal(s.log, op, "failed to toggle wish list", err)
	}

	if added {
		return MsgWishListAdded, nil
	}
	return MsgWishListRemoved, nil
}

func (s *wishListService) List(ctx context.Context, userID int64) ([]*models.Item, error) {
	const op = "service.WishListService.List"

	items, err := s.wishListRepo.ListWishListItems(ctx, userID)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to list wish list", err)
	}
	if items == nil {
		items = []*models.Item{}
	}
	return items, nil
}
