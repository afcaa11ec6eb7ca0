package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the service logger from LOG_LEVEL. Production JSON is the
// default; "debug" switches to a coloured console for local runs. Levels zap
// does not recognise are treated as info.
func NewLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if lvl == zapcore.DebugLevel {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		panic("smartgastos: build logger: " + err.Error())
	}
	return logger
}

// ZapLoggerMiddleware writes one access line per API call, tagged with the
// chi route so /api/expenses/{id} aggregates across ids.
func ZapLoggerMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			began := time.Now()
			rw := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				status := rw.Status()
				if status == 0 {
					status = http.StatusOK
				}
				if ce := logger.Check(accessLevel(status), "api call"); ce != nil {
					ce.Write(accessFields(r, rw, status, time.Since(began))...)
				}
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

// accessLevel maps server failures to error and client mistakes to warn.
func accessLevel(status int) zapcore.Level {
	if status >= http.StatusInternalServerError {
		return zapcore.ErrorLevel
	}
	if status >= http.StatusBadRequest {
		return zapcore.WarnLevel
	}
	return zapcore.InfoLevel
}

func accessFields(r *http.Request, rw middleware.WrapResponseWriter, status int, took time.Duration) []zap.Field {
	return []zap.Field{
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("method", r.Method),
		zap.String("route", RoutePattern(r)),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Int("bytes", rw.BytesWritten()),
		zap.Duration("latency", took),
	}
}

// RoutePattern returns the matched chi route pattern, e.g. /api/expenses/{id},
// or "unmatched" when no route matched.
func RoutePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// TracingMiddleware continues a caller's trace when the request carries W3C
// traceparent or baggage headers.
func TracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		carrier := propagation.HeaderCarrier(r.Header)
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), carrier)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
