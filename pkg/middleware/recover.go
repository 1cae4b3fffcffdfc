package middleware

import (
	"net/http"

	"storefront/pkg/utils"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Recover turns a handler panic into a logged 500. A panic raised after the
// handler started writing leaves the partial response as is.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				fields := []zap.Field{
					zap.Any("error", rec),
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
					zap.Stack("stack"),
				}
				if reqID := chimw.GetReqID(r.Context()); reqID != "" {
					fields = append(fields, zap.String("request_id", reqID))
				}
				logger.Error("PANIC recovered", fields...)

				utils.ResponseInternalError(w, "Internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
