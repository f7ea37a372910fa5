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

type ShopService interface {
	ListShops(ctx context.Context) ([]*models.Shop, error)
	// ListAllShops включает неодобренные магазины, для модерации
	ListAllShops(ctx context.Context) ([]*models.Shop, error)
	// GetShop возвращает только одобренный магазин
	GetShop(ctx context.Context, slug string) (*models.Shop, error)
	ApproveShop(ctx context.Context, slug string) (*models.Shop, error)
}

type shopService struct {
	log      *slog.Logger
	shopRepo storage.ShopStorage
}

func NewShopService(log *slog.Logger, shopRepo storage.ShopStorage) ShopService {
	return &shopService{log: log, shopRepo: shopRepo}
}

func (s *shopService) ListShops(ctx context.Context) ([]*models.Shop, error) {
	const op = "service.ShopService.ListShops"

	shops, err := s.shopRepo.ListShops(ctx, true)
	if err != nil {
		s.log.Error("failed to list shops", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to list shops: %w", op, err)
	}
	return shops, nil
}

func (s *shopService) ListAllShops(ctx context.Context) ([]*models.Shop, error) {
	const op = "service.ShopService.ListAllShops"

	shops, err := s.shopRepo.ListShops(ctx, false)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to list shops", err)
	}
	return shops, nil
}

func (s *shopService) GetShop(ctx context.Context, slug string) (*models.Shop, error) {
	const op = "service.ShopService.GetShop"

	shop, err := findShopBySlug(ctx, s.shopRepo, slug)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to get shop", err)
	}
	if !shop.IsApproved {
		return nil, apperr.NotFound(MsgShopNotFound)
	}
	return shop, nil
}

func (s *shopService) ApproveShop(ctx context.Context, slug string) (*models.Shop, error) {
	const op = "service.ShopService.ApproveShop"
	logger := s.log.With(slog.String("op", op), slog.String("slug", slug))

	shop, err := findShopBySlug(ctx, s.shopRepo, slug)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to get shop", err)
	}

	if err := s.shopRepo.ApproveShop(ctx, shop.ID); err != nil {
		if errors.Is(err, storage.ErrShopNotFound) {
			return nil, apperr.NotFound(MsgShopNotFound)
		}
		logger.Error("failed to approve shop", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to approve shop: %w", op, err)
	}

	shop.IsApproved = true
	logger.Info("shop approved", slog.Int64("shopID", shop.ID))
	return shop, nil
}

func findShopBySlug(ctx context.Context, repo storage.ShopStorage, slug string) (*models.Shop, error) {
	shop, err := repo.GetShopBySlug(ctx, slug)
	if errors.Is(err, storage.ErrShopNotFound) {
		return nil, apperr.NotFound(MsgShopNotFound)
	}
	return shop, err
}

// wrapInternal пропускает доменные ошибки как есть, остальные логирует и оборачивает
func wrapInternal(log *slog.Logger, op, msg string, err error) error {
	if apperr.KindOf(err) != apperr.KindInternal {
		return err
	}
	log.Error(msg, slog.String("op", op), slog.Any("error", err))
	return fmt.Errorf("%s: %s: %w", op, msg, err)
}
