package middleware

import (
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewRateLimiter returns a per-client-IP rate limit middleware for the public
// portal routes, using an in-memory store. The format follows limiter
// notation: "60-M" is 60 requests per minute.
//
// The admin routes are not limited — they sit behind the auth gate and the
// roster is tiny.
func NewRateLimiter(format string) (func(http.Handler) http.Handler, error) {
	rate, err := limiter.NewRateFromFormatted(format)
	if err != nil {
		return nil, err
	}

	instance := limiter.New(memory.NewStore(), rate)
	mw := stdlib.NewMiddleware(instance)

	return func(next http.Handler) http.Handler {
		return mw.Handler(next)
	}, nil
}
