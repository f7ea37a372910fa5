package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/linemk/shop-online-api/internal/domain/models"
	"github.com/linemk/shop-online-api/internal/lib/apperr"
	"github.com/linemk/shop-online-api/internal/lib/slug"
	"github.com/linemk/shop-online-api/internal/storage"
)

type ItemInput struct {
	Name         string
	Description  string
	Price        decimal.Decimal
	CategorySlug string
}

// ItemUpdateInput - частичное обновление товара; nil поля не меняются
type ItemUpdateInput struct {
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	CategorySlug *string
}

// CatalogService - публичный каталог и управление им со стороны магазина
type CatalogService interface {
	ListCategories(ctx context.Context, shopSlug string) ([]*models.Category, error)
	ListShopItems(ctx context.Context, shopSlug string) ([]*models.Item, error)
	ListCategoryItems(ctx context.Context, categorySlug string) ([]*models.Item, error)
	GetItem(ctx context.Context, itemSlug string) (*models.Item, error)

	CreateCategory(ctx context.Context, shop *models.Shop, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, shop *models.Shop, categorySlug string) error
	CreateItem(ctx context.Context, shop *models.Shop, in ItemInput) (*models.Item, error)
	UpdateItem(ctx context.Context, shop *models.Shop, itemSlug string, in ItemUpdateInput) (*models.Item, error)
	DeleteItem(ctx context.Context, shop *models.Shop, itemSlug string) error
}

type catalogService struct {
	log          *slog.Logger
	shopRepo     storage.ShopStorage
	categoryRepo storage.CategoryStorage
	itemRepo     storage.ItemStorage
}

func NewCatalogService(
	log *slog.Logger,
	shopRepo storage.ShopStorage,
	categoryRepo storage.CategoryStorage,
	itemRepo storage.ItemStorage,
) CatalogService {
	return &catalogService{
		log:          log,
		shopRepo:     shopRepo,
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
	}
}

func (s *catalogService) approvedShop(ctx context.Context, slug string) (*models.Shop, error) {
	shop, err := findShopBySlug(ctx, s.shopRepo, slug)
	if err != nil {
		return nil, err
	}
	if !shop.IsApproved {
		return nil, apperr.NotFound(MsgShopNotFound)
	}
	return shop, nil
}

func (s *catalogService) ListCategories(ctx context.Context, shopSlug string) ([]*models.Category, error) {
	const op = "service.CatalogService.ListCategories"

	shop, err := s.approvedShop(ctx, shopSlug)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to get shop", err)
	}

	categories, err := s.categoryRepo.ListCategoriesByShop(ctx, shop.ID)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to list categories", err)
	}
	return categories, nil
}

func (s *catalogService) ListShopItems(ctx context.Context, shopSlug string) ([]*models.Item, error) {
	const op = "service.CatalogService.ListShopItems"

	shop, err := s.approvedShop(ctx, shopSlug)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to get shop", err)
	}

	items, err := s.itemRepo.ListItemsByShop(ctx, shop.ID)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to list items", err)
	}
	return items, nil
}

func (s *catalogService) ListCategoryItems(ctx context.Context, categorySlug string) ([]*models.Item, error) {
	const op = "service.CatalogService.ListCategoryItems"

	category, err := s.categoryRepo.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, storage.ErrCategoryNotFound) {
			return nil, apperr.NotFound(MsgCategoryNotFound)
		}
		return nil, wrapInternal(s.log, op, "failed to get category", err)
	}

	items, err := s.itemRepo.ListItemsByCategory(ctx, category.ID)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to list items", err)
	}
	return items, nil
}

func (s *catalogService) GetItem(ctx context.Context, itemSlug string) (*models.Item, error) {
	const op = "service.CatalogService.GetItem"

	item, err := findItemBySlug(ctx, s.itemRepo, itemSlug)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to get item", err)
	}
	return item, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, shop *models.Shop, name string) (*models.Category, error) {
	const op = "service.CatalogService.CreateCategory"
	logger := s.log.With(slog.String("op", op), slog.Int64("shopID", shop.ID), slog.String("name", name))

	categorySlug, err := generateSlug(ctx, s.categoryRepo.SlugExists, shop.ShopName, name)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to generate slug", err)
	}

	category, err := s.categoryRepo.CreateCategory(ctx, &models.Category{
		ShopID: shop.ID,
		Name:   name,
		Slug:   categorySlug,
	})
	if err != nil {
		var dupErr *storage.DuplicateError
		if errors.As(err, &dupErr) {
			return nil, apperr.Conflict(fmt.Sprintf("You already have category with the name '%s'.", name))
		}
		logger.Error("failed to create category", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create category: %w", op, err)
	}

	logger.Info("category created", slog.String("slug", category.Slug))
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, shop *models.Shop, categorySlug string) error {
	const op = "service.CatalogService.DeleteCategory"
	logger := s.log.With(slog.String("op", op), slog.Int64("shopID", shop.ID), slog.String("slug", categorySlug))

	category, err := s.shopCategory(ctx, shop, categorySlug)
	if err != nil {
		return wrapInternal(s.log, op, "failed to get category", err)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, category.ID); err != nil {
		if errors.Is(err, storage.ErrCategoryNotFound) {
			return apperr.NotFound(MsgCategoryNotFound)
		}
		logger.Error("failed to delete category", slog.Any("error", err))
		return fmt.Errorf("%s: failed to delete category: %w", op, err)
	}

	logger.Info("category deleted")
	return nil
}

func (s *catalogService) CreateItem(ctx context.Context, shop *models.Shop, in ItemInput) (*models.Item, error) {
	const op = "service.CatalogService.CreateItem"
	logger := s.log.With(slog.String("op", op), slog.Int64("shopID", shop.ID), slog.String("name", in.Name))

	if in.Price.IsNegative() {
		return nil, apperr.Invalid(MsgNegativePrice)
	}

	category, err := s.shopCategory(ctx, shop, in.CategorySlug)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to get category", err)
	}

	itemSlug, err := generateSlug(ctx, s.itemRepo.SlugExists, shop.ShopName, in.Name)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to generate slug", err)
	}

	item, err := s.itemRepo.CreateItem(ctx, &models.Item{
		ShopID:      shop.ID,
		CategoryID:  category.ID,
		Name:        in.Name,
		Slug:        itemSlug,
		Description: in.Description,
		Price:       in.Price,
	})
	if err != nil {
		var dupErr *storage.DuplicateError
		if errors.As(err, &dupErr) {
			return nil, itemNameConflict(in.Name)
		}
		logger.Error("failed to create item", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create item: %w", op, err)
	}

	logger.Info("item created", slog.String("slug", item.Slug))
	return item, nil
}

func (s *catalogService) UpdateItem(ctx context.Context, shop *models.Shop, itemSlug string, in ItemUpdateInput) (*models.Item, error) {
	const op = "service.CatalogService.UpdateItem"
	logger := s.log.With(slog.String("op", op), slog.Int64("shopID", shop.ID), slog.String("slug", itemSlug))

	item, err := s.ownedItem(ctx, shop, itemSlug)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to get item", err)
	}

	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, apperr.Invalid(MsgNegativePrice)
		}
		item.Price = *in.Price
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.CategorySlug != nil {
		category, err := s.shopCategory(ctx, shop, *in.CategorySlug)
		if err != nil {
			return nil, wrapInternal(s.log, op, "failed to get category", err)
		}
		item.CategoryID = category.ID
	}
	if in.Name != nil && *in.Name != item.Name {
		item.Name = *in.Name
		// собственный slug товара не считается занятым
		currentSlug := item.Slug
		exists := func(ctx context.Context, candidate string) (bool, error) {
			if candidate == currentSlug {
				return false, nil
			}
			return s.itemRepo.SlugExists(ctx, candidate)
		}
		newSlug, err := generateSlug(ctx, exists, shop.ShopName, item.Name)
		if err != nil {
			return nil, wrapInternal(s.log, op, "failed to generate slug", err)
		}
		item.Slug = newSlug
	}

	if err := s.itemRepo.UpdateItem(ctx, item); err != nil {
		var dupErr *storage.DuplicateError
		switch {
		case errors.As(err, &dupErr):
			return nil, itemNameConflict(item.Name)
		case errors.Is(err, storage.ErrItemNotFound):
			return nil, apperr.NotFound(MsgItemNotFound)
		}
		logger.Error("failed to update item", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update item: %w", op, err)
	}

	logger.Info("item updated", slog.String("newSlug", item.Slug))
	return item, nil
}

func (s *catalogService) DeleteItem(ctx context.Context, shop *models.Shop, itemSlug string) error {
	const op = "service.CatalogService.DeleteItem"
	logger := s.log.With(slog.String("op", op), slog.Int64("shopID", shop.ID), slog.String("slug", itemSlug))

	item, err := s.ownedItem(ctx, shop, itemSlug)
	if err != nil {
		return wrapInternal(s.log, op, "failed to get item", err)
	}

	if err := s.itemRepo.DeleteItem(ctx, item.ID); err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return apperr.NotFound(MsgItemNotFound)
		}
		logger.Error("failed to delete item", slog.Any("error", err))
		return fmt.Errorf("%s: failed to delete item: %w", op, err)
	}

	logger.Info("item deleted")
	return nil
}

func (s *catalogService) shopCategory(ctx context.Context, shop *models.Shop, categorySlug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetCategoryBySlugAndShop(ctx, shop.ID, categorySlug)
	if errors.Is(err, storage.ErrCategoryNotFound) {
		return nil, apperr.NotFound(MsgCategoryNotFound)
	}
	return category, err
}

// ownedItem - товар чужого магазина (или несуществующий) даёт 403
func (s *catalogService) ownedItem(ctx context.Context, shop *models.Shop, itemSlug string) (*models.Item, error) {
	item, err := s.itemRepo.GetItemBySlugForShop(ctx, shop.ID, itemSlug)
	if errors.Is(err, storage.ErrItemNotFound) {
		return nil, apperr.Forbidden(MsgForbidden)
	}
	return item, err
}

func findItemBySlug(ctx context.Context, repo storage.ItemStorage, itemSlug string) (*models.Item, error) {
	item, err := repo.GetItemBySlug(ctx, itemSlug)
	if errors.Is(err, storage.ErrItemNotFound) {
		return nil, apperr.NotFound(MsgItemNotFound)
	}
	return item, err
}

// generateSlug строит слаг из имени магазина и имени сущности
func generateSlug(ctx context.Context, exists slug.ExistsFunc, shopName, name string) (string, error) {
	generated, err := slug.Generate(ctx, exists, shopName, name)
	if errors.Is(err, slug.ErrEmptySlug) {
		return "", apperr.Invalid("Name must contain letters or digits.")
	}
	return generated, err
}

func itemNameConflict(name string) *apperr.Error {
	return apperr.Conflict(fmt.Sprintf("You already have item with the name '%s'.", name))
}
