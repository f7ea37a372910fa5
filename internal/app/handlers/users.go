package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/shop-online-api/internal/lib/api/response"
	"github.com/linemk/shop-online-api/internal/service"
)

// UpdateProfileRequest - частичное обновление; отсутствующие поля не меняются
type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=64"`
	FirstName *string `json:"first_name" validate:"omitempty,max=64"`
	LastName  *string `json:"last_name" validate:"omitempty,max=64"`
}

const (
	msgUserDeleted = "User has been deleted."
)

// MeHandler - GET /users/me
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		response.JSON(w, http.StatusOK, user)
	}
}

// UpdateMeHandler - PATCH /users/me
func UpdateMeHandler(log *slog.Logger, userService service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateMeHandler"
		logger := log.With(slog.String("op", op))

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req UpdateProfileRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		updated, err := userService.UpdateProfile(r.Context(), user, service.ProfileInput{
			Username:  req.Username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if err != nil {
			serviceError(w, logger, "failed to update profile", err)
			return
		}

		response.JSON(w, http.StatusOK, updated)
	}
}

// DeleteMeHandler - DELETE /users/me
func DeleteMeHandler(log *slog.Logger, userService service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteMeHandler"
		logger := log.With(slog.String("op", op))

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		if err := userService.DeleteUser(r.Context(), user.ID); err != nil {
			serviceError(w, logger, "failed to delete user", err)
			return
		}

		response.Detail(w, http.StatusOK, msgUserDeleted)
	}
}

// ListUsersHandler - GET /admin/users
func ListUsersHandler(log *slog.Logger, userService service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListUsersHandler"
		logger := log.With(slog.String("op", op))

		users, err := userService.ListUsers(r.Context())
		if err != nil {
			serviceError(w, logger, "failed to list users", err)
			return
		}

		response.JSON(w, http.StatusOK, nonNil(users))
	}
}

// DeleteUserHandler - DELETE /admin/users/{id}
func DeleteUserHandler(log *slog.Logger, userService service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteUserHandler"
		logger := log.With(slog.String("op", op))

		id, ok := idParam(w, r, "id")
		if !ok {
			return
		}

		if err := userService.DeleteUser(r.Context(), id); err != nil {
			serviceError(w, logger, "failed to delete user", err)
			return
		}

		response.Detail(w, http.StatusOK, msgUserDeleted)
	}
}
