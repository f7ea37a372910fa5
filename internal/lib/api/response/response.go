// Package response - единый формат JSON-ответов: данные как есть,
// ошибки и сообщения в виде {"detail": "..."}.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/linemk/shop-online-api/internal/lib/apperr"
)

type DetailResponse struct {
	Detail string `json:"detail"`
}

// JSON пишет тело v с указанным статусом
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode response", slog.Any("error", err))
	}
}

func Detail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, DetailResponse{Detail: msg})
}

// Error переводит ошибку сервиса в статус и {"detail"}. Для 401 добавляется WWW-Authenticate.
func Error(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	Detail(w, status, apperr.Message(err))
}
