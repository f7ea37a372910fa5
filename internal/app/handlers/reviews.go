package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linemk/shop-online-api/internal/lib/api/response"
	"github.com/linemk/shop-online-api/internal/service"
)

type ReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"max=2000"`
}

const msgReviewDeleted = "Review has been deleted."

// ListReviewsHandler - GET /items/{item_slug}/reviews
func ListReviewsHandler(log *slog.Logger, reviews service.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListReviewsHandler"
		logger := log.With(slog.String("op", op))

		list, err := reviews.List(r.Context(), chi.URLParam(r, "item_slug"))
		if err != nil {
			serviceError(w, logger, "failed to list reviews", err)
			return
		}
		response.JSON(w, http.StatusOK, list)
	}
}

// CreateReviewHandler - POST /items/{item_slug}/reviews, только после оплаченной покупки
func CreateReviewHandler(log *slog.Logger, reviews service.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateReviewHandler"
		logger := log.With(slog.String("op", op))

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req ReviewRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		review, err := reviews.Create(r.Context(), user.ID, chi.URLParam(r, "item_slug"), req.Rating, req.Text)
		if err != nil {
			serviceError(w, logger, "failed to create review", err)
			return
		}
		response.JSON(w, http.StatusCreated, review)
	}
}

// DeleteReviewHandler - DELETE /reviews/{id}, только свой отзыв
func DeleteReviewHandler(log *slog.Logger, reviews service.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteReviewHandler"
		logger := log.With(slog.String("op", op))

		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}

		if err := reviews.Delete(r.Context(), user.ID, id); err != nil {
			serviceError(w, logger, "failed to delete review", err)
			return
		}
		response.Detail(w, http.StatusOK, msgReviewDeleted)
	}
}

// AdminDeleteReviewHandler - DELETE /admin/reviews/{id}
func AdminDeleteReviewHandler(log *slog.Logger, reviews service.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminDeleteReviewHandler"
		logger := log.With(slog.String("op", op))

		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}

		if err := reviews.DeleteAny(r.Context(), id); err != nil {
			serviceError(w, logger, "failed to delete review", err)
			return
		}
		response.Detail(w, http.StatusOK, msgReviewDeleted)
	}
}
