// Package handlers содержит HTTP-обработчики API магазина и сборку роутера.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/linemk/shop-online-api/internal/domain/models"
	"github.com/linemk/shop-online-api/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/shop-online-api/internal/lib/api/response"
	"github.com/linemk/shop-online-api/internal/lib/apperr"
)

var validate = validator.New()

const (
	msgInvalidRequest = "Invalid request body."
	msgInvalidID      = "Invalid id."
)

// decodeAndValidate читает JSON-тело в req и проверяет теги validate.
// При ошибке ответ уже записан.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.Info("invalid request: decoding error", slog.Any("error", err))
		response.Error(w, apperr.Invalid(msgInvalidRequest))
		return false
	}
	if err := validate.Struct(req); err != nil {
		logger.Info("invalid request: validation error", slog.Any("error", err))
		response.Error(w, apperr.Invalid(validationMessage(err)))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return "Invalid field '" + errs[0].Field() + "'."
	}
	return msgInvalidRequest
}

// idParam разбирает числовой параметр пути
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(w, apperr.Invalid(msgInvalidID))
		return 0, false
	}
	return id, true
}

// currentUser достаёт пользователя, положенного Authenticate
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := jwtmiddleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.Unauthorized(jwtmiddleware.MsgInvalidCredentials))
		return nil, false
	}
	return user, true
}

// currentShop достаёт магазин, положенный RequireShop
func currentShop(w http.ResponseWriter, r *http.Request) (*models.Shop, bool) {
	shop, ok := jwtmiddleware.ShopFromContext(r.Context())
	if !ok {
		response.Error(w, apperr.Forbidden(jwtmiddleware.MsgShopNotApproved))
		return nil, false
	}
	return shop, true
}

// serviceError логирует внутренние ошибки и пишет ответ
func serviceError(w http.ResponseWriter, logger *slog.Logger, msg string, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		logger.Error(msg, slog.Any("error", err))
	} else {
		logger.Info(msg, slog.Any("error", err))
	}
	response.Error(w, err)
}

// nonNil заменяет nil-срез пустым, чтобы список отдавался как [] а не null
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
