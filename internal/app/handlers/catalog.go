package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/linemk/shop-online-api/internal/lib/api/response"
	"github.com/linemk/shop-online-api/internal/service"
)

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=128"`
}

type ItemRequest struct {
	Name         string          `json:"name" validate:"required,max=128"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CategorySlug string          `json:"category" validate:"required"`
}

// ItemUpdateRequest - частичное обновление товара
type ItemUpdateRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=128"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	CategorySlug *string          `json:"category" validate:"omitempty,min=1"`
}

const (
	msgCategoryDeleted = "Category has been deleted."
	msgItemDeleted     = "Item has been deleted."
)

// ListShopCategoriesHandler - GET /shops/{shop_slug}/categories
func ListShopCategoriesHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListShopCategoriesHandler"
		logger := log.With(slog.String("op", op))

		categories, err := catalog.ListCategories(r.Context(), chi.URLParam(r, "shop_slug"))
		if err != nil {
			serviceError(w, logger, "failed to list categories", err)
			return
		}
		response.JSON(w, http.StatusOK, nonNil(categories))
	}
}

// ListShopItemsHandler - GET /shops/{shop_slug}/items
func ListShopItemsHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListShopItemsHandler"
		logger := log.With(slog.String("op", op))

		items, err := catalog.ListShopItems(r.Context(), chi.URLParam(r, "shop_slug"))
		if err != nil {
			serviceError(w, logger, "failed to list items", err)
			return
		}
		response.JSON(w, http.StatusOK, nonNil(items))
	}
}

// ListCategoryItemsHandler - GET /categories/{category_slug}/items
func ListCategoryItemsHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListCategoryItemsHandler"
		logger := log.With(slog.String("op", op))

		items, err := catalog.ListCategoryItems(r.Context(), chi.URLParam(r, "category_slug"))
		if err != nil {
			serviceError(w, logger, "failed to list items", err)
			return
		}
		response.JSON(w, http.StatusOK, nonNil(items))
	}
}

// GetItemHandler - GET /items/{item_slug}
func GetItemHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetItemHandler"
		logger := log.With(slog.String("op", op))

		item, err := catalog.GetItem(r.Context(), chi.URLParam(r, "item_slug"))
		if err != nil {
			serviceError(w, logger, "failed to get item", err)
			return
		}
		response.JSON(w, http.StatusOK, item)
	}
}

// CreateCategoryHandler - POST /my-shop/categories
func CreateCategoryHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCategoryHandler"
		logger := log.With(slog.String("op", op))

		shop, ok := currentShop(w, r)
		if !ok {
			return
		}

		var req CategoryRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		category, err := catalog.CreateCategory(r.Context(), shop, req.Name)
		if err != nil {
			serviceError(w, logger, "failed to create category", err)
			return
		}
		response.JSON(w, http.StatusCreated, category)
	}
}

// DeleteCategoryHandler - DELETE /my-shop/categories/{category_slug}
func DeleteCategoryHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCategoryHandler"
		logger := log.With(slog.String("op", op))

		shop, ok := currentShop(w, r)
		if !ok {
			return
		}

		if err := catalog.DeleteCategory(r.Context(), shop, chi.URLParam(r, "category_slug")); err != nil {
			serviceError(w, logger, "failed to delete category", err)
			return
		}
		response.Detail(w, http.StatusOK, msgCategoryDeleted)
	}
}

// CreateItemHandler - POST /my-shop/items
func CreateItemHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateItemHandler"
		logger := log.With(slog.String("op", op))

		shop, ok := currentShop(w, r)
		if !ok {
			return
		}

		var req ItemRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		item, err := catalog.CreateItem(r.Context(), shop, service.ItemInput{
			Name:         req.Name,
			Description:  req.Description,
			Price:        req.Price,
			CategorySlug: req.CategorySlug,
		})
		if err != nil {
			serviceError(w, logger, "failed to create item", err)
			return
		}
		response.JSON(w, http.StatusCreated, item)
	}
}

// UpdateItemHandler - PATCH /my-shop/items/{item_slug}
func UpdateItemHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateItemHandler"
		logger := log.With(slog.String("op", op))

		shop, ok := currentShop(w, r)
		if !ok {
			return
		}

		var req ItemUpdateRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		item, err := catalog.UpdateItem(r.Context(), shop, chi.URLParam(r, "item_slug"), service.ItemUpdateInput{
			Name:         req.Name,
			Description:  req.Description,
			Price:        req.Price,
			CategorySlug: req.CategorySlug,
		})
		if err != nil {
			serviceError(w, logger, "failed to update item", err)
			return
		}
		response.JSON(w, http.StatusOK, item)
	}
}

// DeleteItemHandler - DELETE /my-shop/items/{item_slug}
func DeleteItemHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteItemHandler"
		logger := log.With(slog.String("op", op))

		shop, ok := currentShop(w, r)
		if !ok {
			return
		}

		if err := catalog.DeleteItem(r.Context(), shop, chi.URLParam(r, "item_slug")); err != nil {
			serviceError(w, logger, "failed to delete item", err)
			return
		}
		response.Detail(w, http.StatusOK, msgItemDeleted)
	}
}
