package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const (
	shopIDKey contextKey = "shop_id"

	// HeaderShopID выставляется шлюзом авторизации для персонала магазина
	HeaderShopID = "X-Shop-ID"
)

// Auth извлекает X-Shop-ID и кладёт его в контекст, без заголовка запрос отклоняется
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(HeaderShopID))
		if raw == "" {
			unauthorized(w, "отсутствует заголовок X-Shop-ID")
			return
		}

		shopID, err := uuid.Parse(raw)
		if err != nil || shopID == uuid.Nil {
			unauthorized(w, "некорректный X-Shop-ID")
			return
		}

		ctx := context.WithValue(r.Context(), shopIDKey, shopID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetShopID возвращает магазин персонала из контекста
func GetShopID(ctx context.Context) (uuid.UUID, bool) {
	shopID, ok := ctx.Value(shopIDKey).(uuid.UUID)
	return shopID, ok
}

// WithShopID кладёт магазин в контекст, используется в тестах обработчиков
func WithShopID(ctx context.Context, shopID uuid.UUID) context.Context {
	return context.WithValue(ctx, shopIDKey, shopID)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    http.StatusUnauthorized,
		"message": message,
	})
}
