package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type contextKey string

const exposeErrorsKey contextKey = "exposeErrors"

// ErrorDetailMiddleware marks requests whose 500 responses may carry the
// underlying error message. It is enabled in development only.
func ErrorDetailMiddleware(expose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), exposeErrorsKey, expose)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func exposeErrors(ctx context.Context) bool {
	v, _ := ctx.Value(exposeErrorsKey).(bool)
	return v
}

// RecoverMiddleware turns a panic into the 500 envelope and logs it with the
// stack. http.ErrAbortHandler is re-raised so net/http can abort the response.
func RecoverMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
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
				logger.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.ByteString("stack", debug.Stack()),
				)
				writeInternalError(w, r, fmt.Errorf("panic: %v", rec))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
