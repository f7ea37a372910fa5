package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linemk/shop-online-api/internal/lib/api/response"
	"github.com/linemk/shop-online-api/internal/service"
)

type CartRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

const (
	msgCartItemRemoved = "Item removed from the cart."
)

// ListCartHandler - GET /cart
func ListCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListCartHandler"
		logger := log.With(slog.String("op", op))

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		items, err := cartService.List(r.Context(), user.ID)
		if err != nil {
			serviceError(w, logger, "failed to list cart", err)
			return
		}
		response.JSON(w, http.StatusOK, items)
	}
}

// AddToCartHandler - POST /cart/{item_slug}; повторное добавление заменяет количество
func AddToCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddToCartHandler"
		logger := log.With(slog.String("op", op))

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req CartRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		cartItem, err := cartService.Add(r.Context(), user.ID, chi.URLParam(r, "item_slug"), req.Quantity)
		if err != nil {
			serviceError(w, logger, "failed to add item to cart", err)
			return
		}
		response.JSON(w, http.StatusOK, cartItem)
	}
}

// RemoveFromCartHandler - DELETE /cart/{item_slug}
func RemoveFromCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RemoveFromCartHandler"
		logger := log.With(slog.String("op", op))

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		if err := cartService.Remove(r.Context(), user.ID, chi.URLParam(r, "item_slug")); err != nil {
			serviceError(w, logger, "failed to remove item from cart", err)
			return
		}
		response.Detail(w, http.StatusOK, msgCartItemRemoved)
	}
}

// DeleteCartItemHandler - DELETE /admin/cart-items/{id}
func DeleteCartItemHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCartItemHandler"
		logger := log.With(slog.String("op", op))

		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}

		if err := cartService.DeleteCartItem(r.Context(), id); err != nil {
			serviceError(w, logger, "failed to delete cart item", err)
			return
		}
		response.Detail(w, http.StatusOK, msgCartItemRemoved)
	}
}

// ToggleWishListHandler - POST /wish-list/{item_slug}
func ToggleWishListHandler(log *slog.Logger, wishList service.WishListService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ToggleWishListHandler"
		logger := log.With(slog.String("op", op))

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		msg, err := wishList.Toggle(r.Context(), user.ID, chi.URLParam(r, "item_slug"))
		if err != nil {
			serviceError(w, logger, "failed to toggle wish list", err)
			return
		}
		response.Detail(w, http.StatusOK, msg)
	}
}

// ListWishListHandler - GET /wish-list; пустой список отдаётся сообщением со статусом 200
func ListWishListHandler(log *slog.Logger, wishList service.WishListService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListWishListHandler"
		logger := log.With(slog.String("op", op))

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		items, err := wishList.List(r.Context(), user.ID)
		if err != nil {
			serviceError(w, logger, "failed to list wish list", err)
			return
		}
		if len(items) == 0 {
			response.Detail(w, http.StatusOK, service.MsgWishListEmpty)
			return
		}
		response.JSON(w, http.StatusOK, items)
	}
}
