package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers"
)

// Заголовки аутентификации. Регистрация и выдача учётных данных вне этого сервиса
const (
	HeaderClientID = "X-Client-ID"
	HeaderAdminKey = "X-Admin-Key"
)

const (
	msgMissingClientID    = "отсутствует заголовок X-Client-ID"
	msgInvalidClientID    = "некорректный X-Client-ID"
	msgInvalidAdminKey    = "некорректный ключ администратора"
	msgAdminNotConfigured = "доступ администратора не настроен"
)

type clientIDKey struct{}

// WithClientID кладёт ID клиента в контекст
func WithClientID(ctx context.Context, clientID int64) context.Context {
	return context.WithValue(ctx, clientIDKey{}, clientID)
}

// GetClientID возвращает ID клиента, установленный ClientAuth или OptionalClient
func GetClientID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(clientIDKey{}).(int64)
	return id, ok
}

// ClientAuth требует заголовок X-Client-ID
func ClientAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderClientID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingClientID)
			return
		}

		clientID, err := parseClientID(raw)
		if err != nil {
			handlers.RespondUnauthorized(w, msgInvalidClientID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), clientID)))
	})
}

// OptionalClient читает X-Client-ID, если он передан. Без заголовка запрос анонимный
func OptionalClient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderClientID)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		clientID, err := parseClientID(raw)
		if err != nil {
			handlers.RespondUnauthorized(w, msgInvalidClientID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), clientID)))
	})
}

// AdminAuth сверяет X-Admin-Key с настроенным ключом
func AdminAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				handlers.RespondError(w, http.StatusServiceUnavailable, msgAdminNotConfigured)
				return
			}

			key := r.Header.Get(HeaderAdminKey)
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				handlers.RespondUnauthorized(w, msgInvalidAdminKey)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func parseClientID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

// ClientIDRef ID клиента из контекста или nil для администратора и анонимных запросов
func ClientIDRef(ctx context.Context) *int64 {
	id, ok := GetClientID(ctx)
	if !ok {
		return nil
	}
	return &id
}
