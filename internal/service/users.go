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

// ProfileInput - частичное обновление профиля; nil поля не меняются
type ProfileInput struct {
	Username  *string
	FirstName *string
	LastName  *string
}

type UserService interface {
	UpdateProfile(ctx context.Context, user *models.User, in ProfileInput) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
}

func NewUserService(log *slog.Logger, userRepo storage.UserStorage) UserService {
	return &userService{log: log, userRepo: userRepo}
}

func (s *userService) UpdateProfile(ctx context.Context, user *models.User, in ProfileInput) (*models.User, error) {
	const op = "service.UserService.UpdateProfile"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", user.ID))

	updated := *user
	if in.Username != nil {
		updated.Username = *in.Username
	}
	if in.FirstName != nil {
		updated.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		updated.LastName = *in.LastName
	}

	if err := s.userRepo.UpdateProfile(ctx, &updated); err != nil {
		switch {
		case storage.IsDuplicate(err, "username"):
			return nil, apperr.Conflict(MsgUsernameTaken)
		case errors.Is(err, storage.ErrUserNotFound):
			return nil, apperr.NotFound(MsgUserNotFound)
		}
		logger.Error("failed to update profile", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update profile: %w", op, err)
	}

	logger.Info("profile updated")
	return &updated, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "service.UserService.ListUsers"

	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		s.log.Error("failed to list users", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to list users: %w", op, err)
	}
	return users, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	const op = "service.UserService.DeleteUser"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", id))

	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return apperr.NotFound(MsgUserNotFound)
		}
		logger.Error("failed to delete user", slog.Any("error", err))
		return fmt.Errorf("%s: failed to delete user: %w", op, err)
	}

	logger.Info("user deleted")
	return nil
}
