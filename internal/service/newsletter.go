package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/shop-online-api/internal/domain/models"
	security "github.com/linemk/shop-online-api/internal/jwt-new"
	"github.com/linemk/shop-online-api/internal/lib/apperr"
	"github.com/linemk/shop-online-api/internal/notify"
	"github.com/linemk/shop-online-api/internal/storage"
)

type NewsLetterService interface {
	// Subscribe заводит неактивную подписку и отправляет письмо для подтверждения
	Subscribe(ctx context.Context, email string) error
	Verify(ctx context.Context, token string) error
	Unsubscribe(ctx context.Context, token string) error
	List(ctx context.Context) ([]*models.NewsLetter, error)
	Get(ctx context.Context, id int64) (*models.NewsLetter, error)
	Delete(ctx context.Context, id int64) error
}

type newsLetterService struct {
	log      *slog.Logger
	repo     storage.NewsLetterStorage
	notifier Notifier
	secret   string
}

func NewNewsLetterService(log *slog.Logger, repo storage.NewsLetterStorage, notifier Notifier, secret string) NewsLetterService {
	return &newsLetterService{log: log, repo: repo, notifier: notifier, secret: secret}
}

func (s *newsLetterService) Subscribe(ctx context.Context, email string) error {
	const op = "service.NewsLetterService.Subscribe"
	logger := s.log.With(slog.String("op", op), slog.String("email", email))

	active, err := s.repo.ActiveExists(ctx, email)
	if err != nil {
		logger.Error("failed to check subscription", slog.Any("error", err))
		return fmt.Errorf("%s: failed to check subscription: %w", op, err)
	}
	if active {
		return apperr.Conflict(MsgNewsletterTaken)
	}

	if _, err := s.repo.CreateSubscription(ctx, email); err != nil {
		logger.Error("failed to create subscription", slog.Any("error", err))
		return fmt.Errorf("%s: failed to create subscription: %w", op, err)
	}

	logDelivery(logger, notify.KindNewsletterActivation, s.notifier.SendNewsletterActivation(ctx, email))
	return nil
}

func (s *newsLetterService) Verify(ctx context.Context, token string) error {
	const op = "service.NewsLetterService.Verify"
	logger := s.log.With(slog.String("op", op))

	email, err := security.ParseSubject(token, security.AudienceNewsletter, s.secret)
	if err != nil {
		logger.Info("newsletter token rejected", slog.Any("error", err))
		return apperr.Invalid(MsgInvalidToken)
	}

	if err := s.repo.Activate(ctx, email); err != nil {
		var dupErr *storage.DuplicateError
		switch {
		case errors.As(err, &dupErr):
			return apperr.Conflict(MsgNewsletterTaken)
		case errors.Is(err, storage.ErrNewsletterNotFound):
			// либо подписки нет, либо она уже активна
			active, checkErr := s.repo.ActiveExists(ctx, email)
			if checkErr == nil && active {
				return apperr.Conflict(MsgNewsletterTaken)
			}
			return apperr.NotFound(MsgEmailNotFound)
		}
		logger.Error("failed to activate subscription", slog.Any("error", err))
		return fmt.Errorf("%s: failed to activate subscription: %w", op, err)
	}

	logger.Info("subscription activated", slog.String("email", email))
	return nil
}

func (s *newsLetterService) Unsubscribe(ctx context.Context, token string) error {
	const op = "service.NewsLetterService.Unsubscribe"
	logger := s.log.With(slog.String("op", op))

	email, err := security.ParseSubject(token, security.AudienceNewsletter, s.secret)
	if err != nil {
		logger.Info("newsletter token rejected", slog.Any("error", err))
		return apperr.Invalid(MsgInvalidToken)
	}

	if err := s.repo.Deactivate(ctx, email); err != nil {
		if errors.Is(err, storage.ErrNewsletterNotFound) {
			return apperr.NotFound(MsgEmailNotFound)
		}
		logger.Error("failed to deactivate subscription", slog.Any("error", err))
		return fmt.Errorf("%s: failed to deactivate subscription: %w", op, err)
	}

	logger.Info("subscription cancelled", slog.String("email", email))
	return nil
}

func (s *newsLetterService) List(ctx context.Context) ([]*models.NewsLetter, error) {
	const op = "service.NewsLetterService.List"

	list, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return nil, wrapInternal(s.log, op, "failed to list subscriptions", err)
	}
	if list == nil {
		list = []*models.NewsLetter{}
	}
	return list, nil
}

func (s *newsLetterService) Get(ctx context.Context, id int64) (*models.NewsLetter, error) {
	const op = "service.NewsLetterService.Get"

	nl, err := s.repo.GetSubscriptionByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNewsletterNotFound) {
			return nil, apperr.NotFound(MsgEmailNotFound)
		}
		return nil, wrapInternal(s.log, op, "failed to get subscription", err)
	}
	return nl, nil
}

func (s *newsLetterService) Delete(ctx context.Context, id int64) error {
	const op = "service.NewsLetterService.Delete"

	if err := s.repo.DeleteSubscription(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNewsletterNotFound) {
			return apperr.NotFound(MsgEmailNotFound)
		}
		return wrapInternal(s.log, op, "failed to delete subscription", err)
	}
	return nil
}
