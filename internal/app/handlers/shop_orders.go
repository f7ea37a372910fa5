package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/linemk/shop-online-api/internal/domain/models"
	"github.com/linemk/shop-online-api/internal/lib/api/response"
	"github.com/linemk/shop-online-api/internal/lib/apperr"
	"github.com/linemk/shop-online-api/internal/service"
)

type StatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// dateLayout - формат start_date/end_date в запросе выручки
const dateLayout = "2006-01-02"

const msgInvalidDate = "Dates must be given as YYYY-MM-DD, both start_date and end_date."

// ListShopOrdersHandler - GET /my-shop/orders
func ListShopOrdersHandler(log *slog.Logger, shopOrders service.ShopOrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListShopOrdersHandler"
		logger := log.With(slog.String("op", op))

		shop, ok := currentShop(w, r)
		if !ok {
			return
		}

		orders, err := shopOrders.List(r.Context(), shop)
		if err != nil {
			serviceError(w, logger, "failed to list shop orders", err)
			return
		}
		response.JSON(w, http.StatusOK, orders)
	}
}

// GetShopOrderHandler - GET /my-shop/orders/{id}
func GetShopOrderHandler(log *slog.Logger, shopOrders service.ShopOrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetShopOrderHandler"
		logger := log.With(slog.String("op", op))

		shop, ok := currentShop(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}

		order, err := shopOrders.Get(r.Context(), shop, id)
		if err != nil {
			serviceError(w, logger, "failed to get shop order", err)
			return
		}
		response.JSON(w, http.StatusOK, order)
	}
}

// UpdateShopOrderStatusHandler - PATCH /my-shop/orders/{id}/status
func UpdateShopOrderStatusHandler(log *slog.Logger, shopOrders service.ShopOrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateShopOrderStatusHandler"
		logger := log.With(slog.String("op", op))

		shop, ok := currentShop(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}

		var req StatusRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		order, err := shopOrders.UpdateStatus(r.Context(), shop, id, req.Status)
		if err != nil {
			serviceError(w, logger, "failed to update shop order status", err)
			return
		}
		response.JSON(w, http.StatusOK, order)
	}
}

// ListCustomersHandler - GET /my-shop/customers
func ListCustomersHandler(log *slog.Logger, shopOrders service.ShopOrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListCustomersHandler"
		logger := log.With(slog.String("op", op))

		shop, ok := currentShop(w, r)
		if !ok {
			return
		}

		customers, err := shopOrders.Customers(r.Context(), shop)
		if err != nil {
			serviceError(w, logger, "failed to list customers", err)
			return
		}
		response.JSON(w, http.StatusOK, customers)
	}
}

// CustomerOrdersHandler - GET /my-shop/customers/{user_id}/orders
func CustomerOrdersHandler(log *slog.Logger, shopOrders service.ShopOrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CustomerOrdersHandler"
		logger := log.With(slog.String("op", op))

		shop, ok := currentShop(w, r)
		if !ok {
			return
		}
		userID, ok := idParam(w, r, "user_id")
		if !ok {
			return
		}

		orders, err := shopOrders.CustomerOrders(r.Context(), shop, userID)
		if err != nil {
			serviceError(w, logger, "failed to list customer orders", err)
			return
		}
		response.JSON(w, http.StatusOK, orders)
	}
}

// AdminGetShopOrderHandler - GET /admin/shop-orders/{id}
func AdminGetShopOrderHandler(log *slog.Logger, shopOrders service.ShopOrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminGetShopOrderHandler"
		logger := log.With(slog.String("op", op))

		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}

		order, err := shopOrders.GetByID(r.Context(), id)
		if err != nil {
			serviceError(w, logger, "failed to get shop order", err)
			return
		}
		response.JSON(w, http.StatusOK, order)
	}
}

// ItemStatsHandler - GET /my-shop/stats/items
func ItemStatsHandler(log *slog.Logger, analytics service.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ItemStatsHandler"
		logger := log.With(slog.String("op", op))

		shop, ok := currentShop(w, r)
		if !ok {
			return
		}

		stats, err := analytics.ItemStats(r.Context(), shop)
		if err != nil {
			serviceError(w, logger, "failed to build item stats", err)
			return
		}
		response.JSON(w, http.StatusOK, stats)
	}
}

// RevenueHandler - GET /my-shop/stats/revenue. Без дат отдаёт общую выручку,
// с start_date и end_date - выручку за период, end_date включительно.
func RevenueHandler(log *slog.Logger, analytics service.AnalyticsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RevenueHandler"
		logger := log.With(slog.String("op", op))

		shop, ok := currentShop(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		start, end := query.Get("start_date"), query.Get("end_date")

		if start == "" && end == "" {
			total, err := analytics.TotalRevenue(r.Context(), shop)
			if err != nil {
				serviceError(w, logger, "failed to get total revenue", err)
				return
			}
			response.JSON(w, http.StatusOK, map[string]decimal.Decimal{"Total revenue": total})
			return
		}

		from, errFrom := time.Parse(dateLayout, start)
		to, errTo := time.Parse(dateLayout, end)
		if errFrom != nil || errTo != nil {
			response.Error(w, apperr.Invalid(msgInvalidDate))
			return
		}

		total, err := analytics.RevenueBetween(r.Context(), shop, from, to.AddDate(0, 0, 1).Add(-time.Nanosecond))
		if err != nil {
			serviceError(w, logger, "failed to get revenue for period", err)
			return
		}
		response.JSON(w, http.StatusOK, map[string]decimal.Decimal{"Revenue": total})
	}
}
