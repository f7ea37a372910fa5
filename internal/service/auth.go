package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/linemk/shop-online-api/internal/domain/models"
	security "github.com/linemk/shop-online-api/internal/jwt-new"
	"github.com/linemk/shop-online-api/internal/lib/apperr"
	"github.com/linemk/shop-online-api/internal/lib/slug"
	"github.com/linemk/shop-online-api/internal/notify"
	"github.com/linemk/shop-online-api/internal/storage"
)

type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

type RegisterShopInput struct {
	RegisterInput
	ShopName    string
	Description string
}

type AuthService interface {
	// Register создаёт неактивного покупателя и отправляет письмо активации
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	// RegisterShop в одной транзакции создаёт владельца и неодобренный магазин
	RegisterShop(ctx context.Context, in RegisterShopInput) (*models.User, *models.Shop, error)
	Verify(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) (string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	log      *slog.Logger
	db       *sql.DB
	userRepo storage.UserStorage
	shopRepo storage.ShopStorage
	notifier Notifier
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(
	log *slog.Logger,
	db *sql.DB,
	userRepo storage.UserStorage,
	shopRepo storage.ShopStorage,
	notifier Notifier,
	secret string,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		log:      log,
		db:       db,
		userRepo: userRepo,
		shopRepo: shopRepo,
		notifier: notifier,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (a *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	const op = "service.AuthService.Register"
	logger := a.log.With(slog.String("op", op), slog.String("email", in.Email))

	user, err := newUser(in, models.RoleBuyer)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err = a.userRepo.CreateUser(ctx, user)
	if err != nil {
		if conflict := userConflict(err); conflict != nil {
			logger.Info("registration rejected", slog.String("reason", conflict.Message))
			return nil, conflict
		}
		logger.Error("failed to create user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	logDelivery(logger, notify.KindActivation, a.notifier.SendActivation(ctx, user))

	logger.Info("user registered", slog.Int64("userID", user.ID))
	return user, nil
}

func (a *authService) RegisterShop(ctx context.Context, in RegisterShopInput) (*models.User, *models.Shop, error) {
	const op = "service.AuthService.RegisterShop"
	logger := a.log.With(slog.String("op", op), slog.String("email", in.Email), slog.String("shop", in.ShopName))

	user, err := newUser(in.RegisterInput, models.RoleShop)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return nil, nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	shopSlug, err := slug.Generate(ctx, a.shopRepo.SlugExists, in.ShopName)
	if err != nil {
		if errors.Is(err, slug.ErrEmptySlug) {
			return nil, nil, apperr.Invalid("Shop name must contain letters or digits.")
		}
		logger.Error("failed to generate shop slug", slog.Any("error", err))
		return nil, nil, fmt.Errorf("%s: failed to generate slug: %w", op, err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	user, err = a.userRepo.CreateUserTx(ctx, tx, user)
	if err != nil {
		rollback(logger, tx)
		if conflict := userConflict(err); conflict != nil {
			return nil, nil, conflict
		}
		logger.Error("failed to create user", slog.Any("error", err))
		return nil, nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	shop, err := a.shopRepo.CreateShopTx(ctx, tx, &models.Shop{
		UserID:      user.ID,
		ShopName:    in.ShopName,
		Slug:        shopSlug,
		Description: in.Description,
	})
	if err != nil {
		rollback(logger, tx)
		var dupErr *storage.DuplicateError
		if errors.As(err, &dupErr) {
			return nil, nil, apperr.Conflict(MsgShopNameTaken)
		}
		logger.Error("failed to create shop", slog.Any("error", err))
		return nil, nil, fmt.Errorf("%s: failed to create shop: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logDelivery(logger, notify.KindActivation, a.notifier.SendActivation(ctx, user))

	logger.Info("shop registered", slog.Int64("userID", user.ID), slog.Int64("shopID", shop.ID))
	return user, shop, nil
}

func (a *authService) Verify(ctx context.Context, token string) error {
	const op = "service.AuthService.Verify"
	logger := a.log.With(slog.String("op", op))

	userID, err := a.userIDFromToken(token, security.AudienceActivation)
	if err != nil {
		logger.Info("verification token rejected", slog.Any("error", err))
		return apperr.Invalid(MsgInvalidToken)
	}

	if err := a.userRepo.SetActive(ctx, userID, true); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return apperr.NotFound(MsgUserNotFound)
		}
		logger.Error("failed to activate user", slog.Any("error", err))
		return fmt.Errorf("%s: failed to activate user: %w", op, err)
	}

	logger.Info("user activated", slog.Int64("userID", userID))
	return nil
}

// Login проверяет пароль и выдаёт bearer-токен с id пользователя в sub
func (a *authService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "service.AuthService.Login"
	logger := a.log.With(slog.String("op", op), slog.String("email", email))

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Info("unknown email")
			return "", apperr.Unauthorized(MsgWrongCredentials)
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return "", apperr.Unauthorized(MsgWrongCredentials)
	}

	if !user.IsActive {
		return "", apperr.Unauthorized(MsgInactiveUser)
	}

	token, err := security.NewToken(strconv.FormatInt(user.ID, 10), security.AudienceAccess, a.tokenTTL, a.secret)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in", slog.Int64("userID", user.ID))
	return token, nil
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	const op = "service.AuthService.RequestPasswordReset"
	logger := a.log.With(slog.String("op", op), slog.String("email", email))

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return apperr.NotFound(MsgUserNotFound)
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	logDelivery(logger, notify.KindPasswordReset, a.notifier.SendPasswordReset(ctx, user))
	return nil
}

func (a *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	const op = "service.AuthService.ResetPassword"
	logger := a.log.With(slog.String("op", op))

	userID, err := a.userIDFromToken(token, security.AudiencePasswordReset)
	if err != nil {
		logger.Info("reset token rejected", slog.Any("error", err))
		return apperr.Invalid(MsgInvalidToken)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	if err := a.userRepo.UpdatePassword(ctx, userID, passHash); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return apperr.NotFound(MsgUserNotFound)
		}
		logger.Error("failed to update password", slog.Any("error", err))
		return fmt.Errorf("%s: failed to update password: %w", op, err)
	}

	logger.Info("password reset", slog.Int64("userID", userID))
	return nil
}

func (a *authService) userIDFromToken(token, audience string) (int64, error) {
	sub, err := security.ParseSubject(token, audience, a.secret)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(sub, 10, 64)
}

func newUser(in RegisterInput, role models.Role) (*models.User, error) {
	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Email:     in.Email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		PassHash:  passHash,
		Role:      role,
	}, nil
}

// userConflict переводит нарушение уникальности email/username в конфликт
func userConflict(err error) *apperr.Error {
	switch {
	case storage.IsDuplicate(err, "email"):
		return apperr.Conflict(MsgEmailTaken)
	case storage.IsDuplicate(err, "username"):
		return apperr.Conflict(MsgUsernameTaken)
	}
	return nil
}
