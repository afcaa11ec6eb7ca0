package handler

import (
	"net/http"

	"github.com/boddenberg/smart-gastos-api/internal/domain"
	"github.com/boddenberg/smart-gastos-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Subscription Handlers
// ============================================================

func listSubscriptionsHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/subscriptions")
		defer span.End()

		subs, err := svc.ListSubscriptions(ctx)
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, subs)
	}
}

func activeSubscriptionsHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/subscriptions/active")
		defer span.End()

		subs, err := svc.ActiveSubscriptions(ctx)
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, subs)
	}
}

func addSubscriptionHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/subscriptions")
		defer span.End()

		var in domain.SubscriptionInput
		if err := decodeJSON(w, r, &in); err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		sub, err := svc.AddSubscription(ctx, in)
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccessMessage(w, sub, "Subscription added")
	}
}

func subscriptionsTotalCostHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/subscriptions/total-cost")
		defer span.End()

		total, err := svc.SubscriptionsTotalCost(ctx)
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, map[string]float64{"totalCost": total})
	}
}

func subscriptionAnalyticsHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/subscriptions/analytics")
		defer span.End()

		a, err := svc.SubscriptionAnalytics(ctx)
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, a)
	}
}

func getSubscriptionHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /api/subscriptions/{id}")
		defer span.End()

		sub, err := svc.GetSubscription(ctx, chi.URLParam(r, "id"))
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccess(w, sub)
	}
}

func updateSubscriptionHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /api/subscriptions/{id}")
		defer span.End()

		var patch domain.SubscriptionPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		sub, err := svc.UpdateSubscription(ctx, chi.URLParam(r, "id"), patch)
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccessMessage(w, sub, "Subscription updated")
	}
}

func toggleSubscriptionHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/subscriptions/{id}/toggle")
		defer span.End()

		sub, err := svc.ToggleSubscription(ctx, chi.URLParam(r, "id"))
		if err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccessMessage(w, sub, "Subscription status changed")
	}
}

func deleteSubscriptionHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /api/subscriptions/{id}")
		defer span.End()

		if err := svc.DeleteSubscription(ctx, chi.URLParam(r, "id")); err != nil {
			handleServiceError(w, r, err, logger)
			return
		}
		writeSuccessMessage(w, nil, "Subscription deleted")
	}
}
