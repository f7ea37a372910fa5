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

type ReviewService interface {
	List(ctx context.Context, itemSlug string) ([]*models.ItemReview, error)
	// Create доступен только покупателю, у которого есть оплаченный заказ с товаром
	Create(ctx context.Context, userID int64, itemSlug string, rating int, text string) (*models.ItemReview, error)
	// Delete удаляет собственный отзыв пользователя
	Delete(ctx context.Context, userID, reviewID int64) error
	// DeleteAny - удаление любого отзыва администратором
	DeleteAny(ctx context.Context, reviewID int64) error
}

type reviewService struct {
	log        *slog.Logger
	reviewRepo storage.ReviewStorage
	itemRepo   storage.ItemStorage
	orderRepo  storage.OrderStorage
}

func NewReviewService(log *slog.Logger, reviewRepo storage.ReviewStorage, itemRepo storage.ItemStorage, orderRepo storage.OrderStorage) ReviewService {
	return &reviewService{log: log, reviewRepo: reviewRepo, itemRepo: itemRepo, orderRepo: orderRepo}
}

func (s *reviewService) List(ctx context.Context, itemSlug string) ([]*models.ItemReview, error) {
	const op = "service.ReviewService.List"

	item, err := findItemBySlug(ctx, s.itemRepo, itemSlug)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to get item", err)
	}

	reviews, err := s.reviewRepo.ListReviewsByItem(ctx, item.ID)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to list reviews", err)
	}
	if reviews == nil {
		reviews = []*models.ItemReview{}
	}
	return reviews, nil
}

func (s *reviewService) Create(ctx context.Context, userID int64, itemSlug string, rating int, text string) (*models.ItemReview, error) {
	const op = "service.ReviewService.Create"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.String("item", itemSlug))

	if rating < 1 || rating > 5 {
		return nil, apperr.Invalid("Rating must be between 1 and 5.")
	}

	item, err := findItemBySlug(ctx, s.itemRepo, itemSlug)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to get item", err)
	}

	bought, err := s.orderRepo.UserBoughtItem(ctx, userID, item.ID)
	if err != nil {
		logger.Error("failed to check purchase", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to check purchase: %w", op, err)
	}
	if !bought {
		return nil, apperr.Conflict(MsgReviewNotAllowed)
	}

	review, err := s.reviewRepo.CreateReview(ctx, &models.ItemReview{
		ItemID: item.ID,
		UserID: userID,
		Rating: rating,
		Text:   text,
	})
	if err != nil {
		var dupErr *storage.DuplicateError
		if errors.As(err, &dupErr) {
			return nil, apperr.Conflict(MsgReviewExists)
		}
		logger.Error("failed to create review", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create review: %w", op, err)
	}

	logger.Info("review created", slog.Int64("reviewID", review.ID))
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, userID, reviewID int64) error {
	const op = "service.ReviewService.Delete"

	review, err := s.reviewRepo.GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, storage.ErrReviewNotFound) {
			return apperr.NotFound(MsgReviewNotFound)
		}
		return wrapInternal(s.log, op, "failed to get review", err)
	}
	if review.UserID != userID {
		return apperr.Forbidden(MsgForbidden)
	}

	return s.DeleteAny(ctx, reviewID)
}

func (s *reviewService) DeleteAny(ctx context.Context, reviewID int64) error {
	const op = "service.ReviewService.DeleteAny"

	if err := s.reviewRepo.DeleteReview(ctx, reviewID); err != nil {
		if errors.Is(err, storage.ErrReviewNotFound) {
			return apperr.NotFound(MsgReviewNotFound)
		}
		return wrapInternal(s.log, op, "failed to delete review", err)
	}

	s.log.Info("review deleted", slog.String("op", op), slog.Int64("reviewID", reviewID))
	return nil
}
