package service

import (
	"context"
	"fmt"
	"time"

	"github.com/boddenberg/smart-gastos-api/internal/aggregate"
	"github.com/boddenberg/smart-gastos-api/internal/domain"
	"github.com/boddenberg/smart-gastos-api/internal/present"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Alert thresholds.
const (
	budgetWarnRatio     = 0.8
	categoryBudgetRatio = 0.3
	expenseBudgetRatio  = 0.2
	trendIncreaseRatio  = 1.2
	dueSoonDays         = 3
	overdueDays         = 5
)

// alertBuilder numbers alerts with a display id keyed by what raised them.
type alertBuilder struct {
	ids    *present.IDMapper
	date   string
	alerts []domain.Alert
}

func (b *alertBuilder) add(key string, typ domain.AlertType, title, message string) {
	b.alerts = append(b.alerts, domain.Alert{
		ID:      b.ids.ID(key),
		Type:    typ,
		Title:   title,
		Message: message,
		Date:    b.date,
	})
}

// Alerts derives budget, category, expense, subscription and trend alerts for
// a month as seen on day today. Budget rules are skipped without a budget.
// A failed trend load only drops the trend alert.
func (s *FinanceService) Alerts(ctx context.Context, month, today string) ([]domain.Alert, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.Alerts")
	defer span.End()

	month, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	today, err = s.resolveDay("today", today)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("month", month), attribute.String("today", today))

	d, err := s.Dashboard(ctx, month)
	if err != nil {
		return nil, err
	}
	subs, err := s.store.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	b := &alertBuilder{ids: present.NewIDMapper(), date: today, alerts: []domain.Alert{}}
	if d.Budget != nil && d.Budget.TotalBudget > 0 {
		budgetAlerts(b, d)
	}
	subscriptionAlerts(b, subs, today)

	if all, err := s.allExpenses(ctx); err != nil {
		s.logger.Warn("trend alert skipped", zap.String("month", month), zap.Error(err))
	} else {
		trendAlert(b, all, month)
	}

	return b.alerts, nil
}

func budgetAlerts(b *alertBuilder, d *domain.Dashboard) {
	budget := d.Budget.TotalBudget
	usage := d.TotalSpent / budget * 100

	switch {
	case usage >= 100:
		b.add("budget", domain.AlertError, "Budget exceeded",
			fmt.Sprintf("You exceeded your budget by %s. Total spent: %s",
				present.FormatCurrency(d.TotalSpent-budget), present.FormatCurrency(d.TotalSpent)))
	case usage >= budgetWarnRatio*100:
		b.add("budget", domain.AlertWarning, "Budget alert",
			fmt.Sprintf("You have spent %.1f%% of your monthly budget (%s of %s)",
				usage, present.FormatCurrency(d.TotalSpent), present.FormatCurrency(budget)))
	}

	for _, c := range d.CategoryChart {
		if c.TotalSpent > budget*categoryBudgetRatio {
			b.add("category:"+c.Category, domain.AlertWarning, "High category spending",
				fmt.Sprintf("Category %q accounts for %.1f%% of the budget (%s)",
					c.Category, c.TotalSpent/budget*100, present.FormatCurrency(c.TotalSpent)))
		}
	}

	for _, e := range d.Expenses {
		if e.Amount > budget*expenseBudgetRatio {
			b.add("expense:"+e.ID, domain.AlertInfo, "High expense detected",
				fmt.Sprintf("Expense %q of %s is %.1f%% of the budget",
					e.Description, present.FormatCurrency(e.Amount), e.Amount/budget*100))
		}
	}
}

func subscriptionAlerts(b *alertBuilder, subs []domain.Subscription, today string) {
	for _, sub := range subs {
		switch sub.Status {
		case domain.StatusPending:
			b.add("subscription:"+sub.ID, domain.AlertWarning, "Pending subscription",
				fmt.Sprintf("%s has a pending payment of %s", sub.Name, present.FormatCurrency(sub.Amount)))

		case domain.StatusActive:
			days, ok := daysBetween(today, sub.NextPayment)
			if !ok {
				continue
			}
			switch {
			case days >= 0 && days <= dueSoonDays:
				b.add("subscription:"+sub.ID, domain.AlertWarning, "Payment due soon",
					fmt.Sprintf("%s is due in %s - %s", sub.Name, plural(days, "day"), present.FormatCurrency(sub.Amount)))
			case days < 0 && -days <= overdueDays:
				b.add("subscription:"+sub.ID, domain.AlertError, "Payment overdue",
					fmt.Sprintf("%s is %s overdue - %s", sub.Name, plural(-days, "day"), present.FormatCurrency(sub.Amount)))
			}
		}
	}
}

// trendAlert compares the two latest months up to and including month.
func trendAlert(b *alertBuilder, all []domain.Expense, month string) {
	upTo := make([]domain.Expense, 0, len(all))
	for _, e := range all {
		if m := domain.MonthOf(e.Date); m != "" && m <= month {
			upTo = append(upTo, e)
		}
	}

	series := aggregate.MonthlyTrends(upTo, 2).Trends
	if len(series) < 2 {
		return
	}
	prev, last := series[0], series[1]
	if prev.TotalAmount <= 0 || last.TotalAmount <= prev.TotalAmount*trendIncreaseRatio {
		return
	}
	increase := (last.TotalAmount - prev.TotalAmount) / prev.TotalAmount * 100
	b.add("trend", domain.AlertWarning, "Spending trend increasing",
		fmt.Sprintf("Spending in %s rose %.1f%% compared to %s", last.Month, increase, prev.Month))
}

// daysBetween returns the whole days from one YYYY-MM-DD day to another.
func daysBetween(from, to string) (int, bool) {
	f, err := time.Parse(dateLayout, from)
	if err != nil {
		return 0, false
	}
	if len(to) < len(dateLayout) {
		return 0, false
	}
	t, err := time.Parse(dateLayout, to[:len(dateLayout)])
	if err != nil {
		return 0, false
	}
	return int(t.Sub(f).Hours() / 24), true
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
