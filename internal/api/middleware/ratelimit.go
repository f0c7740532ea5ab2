package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/TMS-InventoryService/internal/api/handlers"
)

// Logger интерфейс для логирования middleware
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RateLimiter ограничитель частоты запросов с фиксированным окном поверх
// Redis. Вешается на публичные маршруты: проверку доступности дергает
// каждый просмотр страницы пакета.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	log    Logger
}

// NewRateLimiter создает ограничитель: limit запросов на клиента за window
func NewRateLimiter(client *redis.Client, limit int, window time.Duration, log Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
		log:    log,
	}
}

// Middleware возвращает mux-совместимый middleware.
// При недоступности Redis запросы пропускаются (fail-open): лимитер
// защищает от перегрузки, а не выполняет функции безопасности.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := fmt.Sprintf("ratelimit:%s:%d", clientIP(r), time.Now().Unix()/int64(rl.window.Seconds()))

		count, err := rl.client.Incr(r.Context(), key).Result()
		if err != nil {
			rl.log.Warn("RateLimiter: redis unavailable, letting request through: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		if count == 1 {
			if err := rl.client.Expire(r.Context(), key, rl.window).Err(); err != nil {
				rl.log.Warn("RateLimiter: failed to set key expiration: %v", err)
			}
		}

		if count > int64(rl.limit) {
			handlers.RespondError(w, http.StatusTooManyRequests, "too many requests, try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP извлекает адрес клиента: X-Forwarded-For от gateway либо RemoteAddr
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
