package jwtmiddleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/linemk/shop-online-api/internal/domain/models"
	security "github.com/linemk/shop-online-api/internal/jwt-new"
	"github.com/linemk/shop-online-api/internal/lib/api/response"
	"github.com/linemk/shop-online-api/internal/lib/apperr"
	"github.com/linemk/shop-online-api/internal/storage"
)

type contextKey string

const (
	UserKey contextKey = "user"
	ShopKey contextKey = "shop"
)

const (
	MsgInvalidCredentials = "Could not validate credentials."
	MsgInactiveUser       = "Please activate your account."
	MsgForbidden          = "Forbidden."
	MsgShopNotApproved    = "Your shop is not approved."
	MsgAdminOnly          = "Only Site Administrator can access this page."
)

// UserProvider - источник пользователей для проверки токена
type UserProvider interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

type ShopProvider interface {
	GetShopByUserID(ctx context.Context, userID int64) (*models.Shop, error)
}

// Authenticate проверяет "Authorization: Bearer <jwt>", находит пользователя по sub
// и требует активированный аккаунт. Пользователь кладётся в контекст запроса.
func Authenticate(log *slog.Logger, secret string, users UserProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "jwtmiddleware.Authenticate"
			logger := log.With(slog.String("op", op))

			tokenStr, ok := bearerToken(r)
			if !ok {
				response.Error(w, apperr.Unauthorized(MsgInvalidCredentials))
				return
			}

			sub, err := security.ParseSubject(tokenStr, security.AudienceAccess, secret)
			if err != nil {
				logger.Debug("token rejected", slog.Any("error", err))
				response.Error(w, apperr.Unauthorized(MsgInvalidCredentials))
				return
			}

			userID, err := strconv.ParseInt(sub, 10, 64)
			if err != nil {
				logger.Debug("token subject is not a user id", slog.String("sub", sub))
				response.Error(w, apperr.Unauthorized(MsgInvalidCredentials))
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, storage.ErrUserNotFound) {
					logger.Error("failed to load user", slog.Any("error", err))
					response.Error(w, err)
					return
				}
				response.Error(w, apperr.Unauthorized(MsgInvalidCredentials))
				return
			}

			if !user.IsActive {
				response.Error(w, apperr.Unauthorized(MsgInactiveUser))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireShop пропускает только владельца одобренного магазина. Ставится после Authenticate.
func RequireShop(log *slog.Logger, shops ShopProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "jwtmiddleware.RequireShop"
			logger := log.With(slog.String("op", op))

			user, ok := UserFromContext(r.Context())
			if !ok {
				response.Error(w, apperr.Unauthorized(MsgInvalidCredentials))
				return
			}
			if !user.Role.CanSell() {
				response.Error(w, apperr.Forbidden(MsgForbidden))
				return
			}

			shop, err := shops.GetShopByUserID(r.Context(), user.ID)
			if err != nil {
				if !errors.Is(err, storage.ErrShopNotFound) {
					logger.Error("failed to load shop", slog.Any("error", err))
					response.Error(w, err)
					return
				}
				response.Error(w, apperr.Forbidden(MsgShopNotApproved))
				return
			}
			if !shop.IsApproved {
				response.Error(w, apperr.Forbidden(MsgShopNotApproved))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithShop(r.Context(), shop)))
		})
	}
}

// RequireSuperuser пропускает только администратора сайта
func RequireSuperuser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				response.Error(w, apperr.Unauthorized(MsgInvalidCredentials))
				return
			}
			if !user.IsSuperuser {
				response.Error(w, apperr.Forbidden(MsgAdminOnly))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

func WithShop(ctx context.Context, shop *models.Shop) context.Context {
	return context.WithValue(ctx, ShopKey, shop)
}

// UserFromContext извлекает аутентифицированного пользователя
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok && user != nil
}

// ShopFromContext извлекает магазин, установленный RequireShop
func ShopFromContext(ctx context.Context) (*models.Shop, bool) {
	shop, ok := ctx.Value(ShopKey).(*models.Shop)
	return shop, ok && shop != nil
}
