package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/shop-online-api/internal/lib/api/response"
	"github.com/linemk/shop-online-api/internal/lib/apperr"
	"github.com/linemk/shop-online-api/internal/service"
)

type NewsLetterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

const (
	msgNewsletterSent         = "Check your email to confirm the subscription."
	msgNewsletterActivated    = "Your subscription has been activated."
	msgNewsletterUnsubscribed = "You have been unsubscribed from the newsletter."
	msgNewsletterDeleted      = "Subscription has been deleted."
)

// SubscribeHandler - POST /newsletter
func SubscribeHandler(log *slog.Logger, newsletter service.NewsLetterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SubscribeHandler"
		logger := log.With(slog.String("op", op))

		var req NewsLetterRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		if err := newsletter.Subscribe(r.Context(), req.Email); err != nil {
			serviceError(w, logger, "failed to subscribe", err)
			return
		}
		response.Detail(w, http.StatusCreated, msgNewsletterSent)
	}
}

// VerifyNewsletterHandler - GET /newsletter/verify/?token=
func VerifyNewsletterHandler(log *slog.Logger, newsletter service.NewsLetterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.VerifyNewsletterHandler"
		logger := log.With(slog.String("op", op))

		token := r.URL.Query().Get("token")
		if token == "" {
			response.Error(w, apperr.Invalid(service.MsgInvalidToken))
			return
		}

		if err := newsletter.Verify(r.Context(), token); err != nil {
			serviceError(w, logger, "failed to verify subscription", err)
			return
		}
		response.Detail(w, http.StatusOK, msgNewsletterActivated)
	}
}

// UnsubscribeHandler - GET /newsletter/unsubscribe/?token=
func UnsubscribeHandler(log *slog.Logger, newsletter service.NewsLetterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UnsubscribeHandler"
		logger := log.With(slog.String("op", op))

		token := r.URL.Query().Get("token")
		if token == "" {
			response.Error(w, apperr.Invalid(service.MsgInvalidToken))
			return
		}

		if err := newsletter.Unsubscribe(r.Context(), token); err != nil {
			serviceError(w, logger, "failed to unsubscribe", err)
			return
		}
		response.Detail(w, http.StatusOK, msgNewsletterUnsubscribed)
	}
}

// ListNewsletterHandler - GET /admin/newsletter
func ListNewsletterHandler(log *slog.Logger, newsletter service.NewsLetterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListNewsletterHandler"
		logger := log.With(slog.String("op", op))

		list, err := newsletter.List(r.Context())
		if err != nil {
			serviceError(w, logger, "failed to list subscriptions", err)
			return
		}
		response.JSON(w, http.StatusOK, list)
	}
}

// GetNewsletterHandler - GET /admin/newsletter/{id}
func GetNewsletterHandler(log *slog.Logger, newsletter service.NewsLetterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetNewsletterHandler"
		logger := log.With(slog.String("op", op))

		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}

		nl, err := newsletter.Get(r.Context(), id)
		if err != nil {
			serviceError(w, logger, "failed to get subscription", err)
			return
		}
		response.JSON(w, http.StatusOK, nl)
	}
}

// DeleteNewsletterHandler - DELETE /admin/newsletter/{id}
func DeleteNewsletterHandler(log *slog.Logger, newsletter service.NewsLetterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteNewsletterHandler"
		logger := log.With(slog.String("op", op))

		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}

		if err := newsletter.Delete(r.Context(), id); err != nil {
			serviceError(w, logger, "failed to delete subscription", err)
			return
		}
		response.Detail(w, http.StatusOK, msgNewsletterDeleted)
	}
}
