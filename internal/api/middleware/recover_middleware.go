package middleware

import (
	"net/http"
	"os"
	"runtime/debug"

	"github.com/RoyceAzure/rj/api"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/rs/zerolog"
)

// RecoverMiddleware handler發生panic時記錄stack並回500, 不讓panic中斷連線
func RecoverMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if logger == nil {
						temp := zerolog.New(os.Stdout).With().Timestamp().Logger()
						logger = &temp
					}
					logger.Error().
						Str("request_id", getRequestID(r)).
						Str("method", r.Method).
						Str("url", r.URL.String()).
						Interface("panic", rec).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")

					api.ErrorJSON(w, int(er.InternalErrorCode), er.New(er.InternalErrorCode, "internal server error"), er.ErrStrMap[er.InternalErrorCode])
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
