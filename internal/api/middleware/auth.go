package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/glossline/detailing-booking-service/internal/api/handlers"
)

// UserIDHeader заголовок с идентификатором клиента
// Аутентификацию выполняет API gateway, сервис доверяет заголовку.
const UserIDHeader = "X-User-ID"

type ctxKey struct{}

// Auth middleware требует валидный X-User-ID и кладет его в context запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized,
				"отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, handlers.CodeUnauthorized,
				"некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает идентификатор клиента из context запроса
// Второе значение false, если запрос не проходил через Auth.
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxKey{}).(int64)
	return id, ok
}
