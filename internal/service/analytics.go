package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/linemk/shop-online-api/internal/domain/models"
	"github.com/linemk/shop-online-api/internal/lib/apperr"
	"github.com/linemk/shop-online-api/internal/storage"
)

// AnalyticsService - статистика продаж магазина. Пустой результат всегда
// возвращается как ошибка Empty, а не как нулевая сумма.
type AnalyticsService interface {
	ItemStats(ctx context.Context, shop *models.Shop) ([]*models.ItemStats, error)
	TotalRevenue(ctx context.Context, shop *models.Shop) (decimal.Decimal, error)
	RevenueBetween(ctx context.Context, shop *models.Shop, from, to time.Time) (decimal.Decimal, error)
}

type analyticsService struct {
	log           *slog.Logger
	itemRepo      storage.ItemStorage
	shopOrderRepo storage.ShopOrderStorage
}

func NewAnalyticsService(log *slog.Logger, itemRepo storage.ItemStorage, shopOrderRepo storage.ShopOrderStorage) AnalyticsService {
	return &analyticsService{log: log, itemRepo: itemRepo, shopOrderRepo: shopOrderRepo}
}

// ItemStats суммирует выручку (цена за единицу × количество) и количество по каждому
// проданному товару и дополняет текущими счётчиками товара.
func (s *analyticsService) ItemStats(ctx context.Context, shop *models.Shop) ([]*models.ItemStats, error) {
	const op = "service.AnalyticsService.ItemStats"

	sold, err := s.shopOrderRepo.ListSoldItems(ctx, shop.ID)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to list sold items", err)
	}
	if len(sold) == 0 {
		return nil, apperr.Empty(MsgNoItemsSold)
	}

	var stats []*models.ItemStats
	byItem := make(map[int64]*models.ItemStats)
	for _, line := range sold {
		st, ok := byItem[line.ItemID]
		if !ok {
			st = &models.ItemStats{ItemID: line.ItemID, ItemName: line.ItemName, TotalPrice: decimal.Zero}
			byItem[line.ItemID] = st
			stats = append(stats, st)
		}
		st.TotalPrice = st.TotalPrice.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		st.TotalQuantity += line.Quantity
	}

	for _, st := range stats {
		item, err := s.itemRepo.GetItemByID(ctx, st.ItemID)
		if err != nil {
			return nil, wrapInternal(s.log, op, "failed to get item", err)
		}
		st.WishListCount = item.WishListCount
		st.ReviewsCount = item.ReviewsCount
		st.AverageRating = item.AverageRating
	}

	return stats, nil
}

func (s *analyticsService) TotalRevenue(ctx context.Context, shop *models.Shop) (decimal.Decimal, error) {
	const op = "service.AnalyticsService.TotalRevenue"

	total, err := s.shopOrderRepo.SumRevenue(ctx, shop.ID)
	if err != nil {
		return decimal.Zero, wrapInternal(s.log, op, "failed to sum revenue", err)
	}
	if total.IsZero() {
		return decimal.Zero, apperr.Empty(MsgNoRevenue)
	}
	return total, nil
}

func (s *analyticsService) RevenueBetween(ctx context.Context, shop *models.Shop, from, to time.Time) (decimal.Decimal, error) {
	const op = "service.AnalyticsService.RevenueBetween"

	if from.After(to) {
		return decimal.Zero, apperr.Invalid(MsgInvalidPeriod)
	}

	total, err := s.shopOrderRepo.SumRevenueBetween(ctx, shop.ID, from, to)
	if err != nil {
		return decimal.Zero, wrapInternal(s.log, op, "failed to sum revenue", err)
	}
	if total.IsZero() {
		return decimal.Zero, apperr.Empty(MsgNoRevenueInPeriod)
	}
	return total, nil
}
