package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linemk/shop-online-api/internal/lib/api/response"
	"github.com/linemk/shop-online-api/internal/service"
)

// CheckoutHandler - POST /orders/checkout: корзина превращается в неоплаченный заказ
func CheckoutHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckoutHandler"
		logger := log.With(slog.String("op", op))

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		order, err := orderService.Checkout(r.Context(), user.ID)
		if err != nil {
			serviceError(w, logger, "checkout failed", err)
			return
		}
		response.JSON(w, http.StatusCreated, order)
	}
}

// ListOrdersHandler - GET /orders, только оплаченные заказы пользователя
func ListOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(slog.String("op", op))

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		orders, err := orderService.ListOrders(r.Context(), user.ID)
		if err != nil {
			serviceError(w, logger, "failed to list orders", err)
			return
		}
		response.JSON(w, http.StatusOK, orders)
	}
}

// GetOrderHandler - GET /orders/{order_id}
func GetOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetOrderHandler"
		logger := log.With(slog.String("op", op))

		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		orderID, ok := idParam(w, r, "order_id")
		if !ok {
			return
		}

		order, err := orderService.GetOrder(r.Context(), user.ID, orderID)
		if err != nil {
			serviceError(w, logger, "failed to get order", err)
			return
		}
		response.JSON(w, http.StatusOK, order)
	}
}

// MarkPaidHandler - POST /admin/orders/{order_key}/paid, подтверждение оплаты
func MarkPaidHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MarkPaidHandler"
		logger := log.With(slog.String("op", op))

		order, err := orderService.MarkPaid(r.Context(), chi.URLParam(r, "order_key"))
		if err != nil {
			serviceError(w, logger, "failed to confirm payment", err)
			return
		}
		response.JSON(w, http.StatusOK, order)
	}
}
