package service

import (
	"context"
	"fmt"

	"github.com/boddenberg/smart-gastos-api/internal/aggregate"
	"github.com/boddenberg/smart-gastos-api/internal/domain"
	"github.com/boddenberg/smart-gastos-api/internal/validate"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

func (s *FinanceService) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.ListSubscriptions")
	defer span.End()

	return s.store.ListSubscriptions(ctx)
}

func (s *FinanceService) ActiveSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.ActiveSubscriptions")
	defer span.End()

	return s.store.ActiveSubscriptions(ctx)
}

func (s *FinanceService) GetSubscription(ctx context.Context, id string) (*domain.Subscription, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.GetSubscription")
	defer span.End()
	span.SetAttributes(attribute.String("subscription.id", id))

	sub, err := s.store.SubscriptionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("subscription by id: %w", err)
	}
	if sub == nil {
		return nil, &domain.ErrNotFound{Resource: "subscription", ID: id}
	}
	return sub, nil
}

// AddSubscription validates and stores a subscription. An empty status becomes Active.
func (s *FinanceService) AddSubscription(ctx context.Context, in domain.SubscriptionInput) (*domain.Subscription, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.AddSubscription")
	defer span.End()

	if err := validate.Struct(in); err != nil {
		return nil, err
	}

	sub, err := s.store.AddSubscription(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("add subscription: %w", err)
	}
	s.recordMutation(ctx, "subscription", "create")
	s.logger.Info("subscription added",
		zap.String("subscription_id", sub.ID),
		zap.String("status", string(sub.Status)),
	)
	return &sub, nil
}

func (s *FinanceService) UpdateSubscription(ctx context.Context, id string, patch domain.SubscriptionPatch) (*domain.Subscription, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.UpdateSubscription")
	defer span.End()
	span.SetAttributes(attribute.String("subscription.id", id))

	if err := validate.Struct(patch); err != nil {
		return nil, err
	}

	sub, ok, err := s.store.UpdateSubscription(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update subscription: %w", err)
	}
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "subscription", ID: id}
	}
	s.recordMutation(ctx, "subscription", "update")
	s.logger.Info("subscription updated", zap.String("subscription_id", id))
	return &sub, nil
}

// ToggleSubscription flips Active to Cancelled and anything else to Active.
func (s *FinanceService) ToggleSubscription(ctx context.Context, id string) (*domain.Subscription, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.ToggleSubscription")
	defer span.End()
	span.SetAttributes(attribute.String("subscription.id", id))

	sub, ok, err := s.store.ToggleSubscription(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle subscription: %w", err)
	}
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "subscription", ID: id}
	}
	s.recordMutation(ctx, "subscription", "toggle")
	s.logger.Info("subscription toggled",
		zap.String("subscription_id", id),
		zap.String("status", string(sub.Status)),
	)
	return &sub, nil
}

func (s *FinanceService) DeleteSubscription(ctx context.Context, id string) error {
	ctx, span := financeTracer.Start(ctx, "FinanceService.DeleteSubscription")
	defer span.End()
	span.SetAttributes(attribute.String("subscription.id", id))

	ok, err := s.store.DeleteSubscription(ctx, id)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	if !ok {
		return &domain.ErrNotFound{Resource: "subscription", ID: id}
	}
	s.recordMutation(ctx, "subscription", "delete")
	s.logger.Info("subscription deleted", zap.String("subscription_id", id))
	return nil
}

// SubscriptionsTotalCost sums the monthly amount of the active subscriptions.
func (s *FinanceService) SubscriptionsTotalCost(ctx context.Context) (float64, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.SubscriptionsTotalCost")
	defer span.End()

	active, err := s.store.ActiveSubscriptions(ctx)
	if err != nil {
		return 0, fmt.Errorf("active subscriptions: %w", err)
	}
	return aggregate.Total(aggregate.MaterializeSubscriptions(active)), nil
}

func (s *FinanceService) SubscriptionAnalytics(ctx context.Context) (*domain.SubscriptionAnalytics, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.SubscriptionAnalytics")
	defer span.End()

	subs, err := s.store.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	a := aggregate.SubscriptionAnalytics(subs)
	return &a, nil
}
