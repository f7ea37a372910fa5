package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/shop-online-api/internal/domain/models"
	"github.com/linemk/shop-online-api/internal/lib/api/response"
	"github.com/linemk/shop-online-api/internal/lib/apperr"
	"github.com/linemk/shop-online-api/internal/service"
)

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=64"`
	LastName  string `json:"last_name" validate:"max=64"`
}

func (r RegisterRequest) input() service.RegisterInput {
	return service.RegisterInput{
		Email:     r.Email,
		Username:  r.Username,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

type RegisterShopRequest struct {
	RegisterRequest
	ShopName    string `json:"shop_name" validate:"required,max=128"`
	Description string `json:"description"`
}

type RegisterShopResponse struct {
	User *models.User `json:"user"`
	Shop *models.Shop `json:"shop"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse - bearer-токен доступа
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetVerifyRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

const (
	msgActivated      = "Your account has been activated."
	msgResetSent      = "Check your email to reset your password."
	msgPasswordReset  = "Your password has been reset."
)

// RegisterHandler - POST /register
func RegisterHandler(log *slog.Logger, authService service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RegisterHandler"
		logger := log.With(slog.String("op", op))

		var req RegisterRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		user, err := authService.Register(r.Context(), req.input())
		if err != nil {
			serviceError(w, logger, "registration failed", err)
			return
		}

		response.JSON(w, http.StatusCreated, user)
	}
}

// RegisterShopHandler - POST /shops/register
func RegisterShopHandler(log *slog.Logger, authService service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RegisterShopHandler"
		logger := log.With(slog.String("op", op))

		var req RegisterShopRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		user, shop, err := authService.RegisterShop(r.Context(), service.RegisterShopInput{
			RegisterInput: req.RegisterRequest.input(),
			ShopName:      req.ShopName,
			Description:   req.Description,
		})
		if err != nil {
			serviceError(w, logger, "shop registration failed", err)
			return
		}

		response.JSON(w, http.StatusCreated, RegisterShopResponse{User: user, Shop: shop})
	}
}

// VerifyHandler - GET /verification/?token=
func VerifyHandler(log *slog.Logger, authService service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.VerifyHandler"
		logger := log.With(slog.String("op", op))

		token := r.URL.Query().Get("token")
		if token == "" {
			response.Error(w, apperr.Invalid(service.MsgInvalidToken))
			return
		}

		if err := authService.Verify(r.Context(), token); err != nil {
			serviceError(w, logger, "verification failed", err)
			return
		}

		response.Detail(w, http.StatusOK, msgActivated)
	}
}

// LoginHandler - POST /login
func LoginHandler(log *slog.Logger, authService service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req LoginRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		token, err := authService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			serviceError(w, logger, "login failed", err)
			return
		}

		response.JSON(w, http.StatusOK, LoginResponse{AccessToken: token, TokenType: "bearer"})
	}
}

// RequestPasswordResetHandler - POST /reset-password
func RequestPasswordResetHandler(log *slog.Logger, authService service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RequestPasswordResetHandler"
		logger := log.With(slog.String("op", op))

		var req PasswordResetRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		if err := authService.RequestPasswordReset(r.Context(), req.Email); err != nil {
			serviceError(w, logger, "password reset request failed", err)
			return
		}

		response.Detail(w, http.StatusOK, msgResetSent)
	}
}

// ResetPasswordHandler - POST /reset-password/verify
func ResetPasswordHandler(log *slog.Logger, authService service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ResetPasswordHandler"
		logger := log.With(slog.String("op", op))

		var req PasswordResetVerifyRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		if err := authService.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
			serviceError(w, logger, "password reset failed", err)
			return
		}

		response.Detail(w, http.StatusOK, msgPasswordReset)
	}
}
