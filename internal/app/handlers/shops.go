package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linemk/shop-online-api/internal/lib/api/response"
	"github.com/linemk/shop-online-api/internal/service"
)

// ListShopsHandler - GET /shops, только одобренные магазины
func ListShopsHandler(log *slog.Logger, shopService service.ShopService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListShopsHandler"
		logger := log.With(slog.String("op", op))

		shops, err := shopService.ListShops(r.Context())
		if err != nil {
			serviceError(w, logger, "failed to list shops", err)
			return
		}
		response.JSON(w, http.StatusOK, nonNil(shops))
	}
}

// GetShopHandler - GET /shops/{shop_slug}
func GetShopHandler(log *slog.Logger, shopService service.ShopService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetShopHandler"
		logger := log.With(slog.String("op", op))

		shop, err := shopService.GetShop(r.Context(), chi.URLParam(r, "shop_slug"))
		if err != nil {
			serviceError(w, logger, "failed to get shop", err)
			return
		}
		response.JSON(w, http.StatusOK, shop)
	}
}

// ListAllShopsHandler - GET /admin/shops, включая ожидающие одобрения
func ListAllShopsHandler(log *slog.Logger, shopService service.ShopService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListAllShopsHandler"
		logger := log.With(slog.String("op", op))

		shops, err := shopService.ListAllShops(r.Context())
		if err != nil {
			serviceError(w, logger, "failed to list shops", err)
			return
		}
		response.JSON(w, http.StatusOK, nonNil(shops))
	}
}

// ApproveShopHandler - PATCH /admin/shops/{shop_slug}/approve
func ApproveShopHandler(log *slog.Logger, shopService service.ShopService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ApproveShopHandler"
		logger := log.With(slog.String("op", op))

		shop, err := shopService.ApproveShop(r.Context(), chi.URLParam(r, "shop_slug"))
		if err != nil {
			serviceError(w, logger, "failed to approve shop", err)
			return
		}
		response.JSON(w, http.StatusOK, shop)
	}
}
