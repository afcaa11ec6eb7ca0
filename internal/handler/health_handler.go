package handler

import (
	"net/http"

	"github.com/boddenberg/smart-gastos-api/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Health & Alerts Handlers
// ============================================================

func healthHandler(svc *service.FinanceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Health(r.Context()))
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func alertsHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/alerts")
		defer span.End()

		q := r.URL.Query()
		alerts, err := svc.Alerts(ctx, q.Get("month"), q.Get("today"))
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, alerts)
	}
}
