package memstore

import (
	"context"
	"fmt"

	"github.com/boddenberg/smart-gastos-api/internal/domain"

	"go.uber.org/zap"
)

// SeedMonth is the month the development dataset is built around.
const SeedMonth = "2025-10"

const seedDate = "2025-10-24"

var seedExpenses = []domain.ExpenseInput{
	{Amount: 150.50, Description: "Supermercado - compras da semana", Category: "Alimentação", Date: seedDate},
	{Amount: 45.00, Description: "Gasolina", Category: "Transporte", Date: seedDate},
	{Amount: 89.90, Description: "Conta de luz", Category: "Casa", Date: seedDate},
	{Amount: 25.00, Description: "Lanche no trabalho", Category: "Alimentação", Date: seedDate},
	{Amount: 120.00, Description: "Consulta médica", Category: "Saúde", Date: seedDate},
	{Amount: 200.00, Description: "Roupas", Category: "Vestuário", Date: seedDate},
	{Amount: 35.50, Description: "Cinema", Category: "Entretenimento", Date: seedDate},
}

var seedSubscriptions = []domain.SubscriptionInput{
	{Name: "Netflix", Category: "Entretenimento", Amount: 29.90, NextPayment: "2025-10-06", Status: domain.StatusActive},
	{Name: "Spotify", Category: "Entretenimento", Amount: 19.90, NextPayment: "2025-10-09", Status: domain.StatusActive},
	{Name: "Adobe Creative Suite", Category: "Educação", Amount: 89.90, NextPayment: "2025-10-12", Status: domain.StatusActive},
	{Name: "Amazon Prime", Category: "Entretenimento", Amount: 14.90, NextPayment: "2025-10-15", Status: domain.StatusActive},
	{Name: "Gym Membership", Category: "Saúde", Amount: 79.90, NextPayment: "2025-10-18", Status: domain.StatusActive},
	{Name: "iCloud Storage", Category: "Outros", Amount: 9.90, NextPayment: "2025-10-21", Status: domain.StatusActive},
}

// Seed loads the development dataset: a 3000 budget for SeedMonth, seven
// expenses (665.90) and six active subscriptions (244.40).
func Seed(ctx context.Context, s *Store, logger *zap.Logger) error {
	if _, err := s.SetBudget(ctx, domain.BudgetInput{Month: SeedMonth, TotalBudget: 3000}); err != nil {
		return fmt.Errorf("seed budget: %w", err)
	}
	for _, in := range seedExpenses {
		if _, err := s.AddExpense(ctx, in); err != nil {
			return fmt.Errorf("seed expense %q: %w", in.Description, err)
		}
	}
	for _, in := range seedSubscriptions {
		if _, err := s.AddSubscription(ctx, in); err != nil {
			return fmt.Errorf("seed subscription %q: %w", in.Name, err)
		}
	}

	logger.Info("seed data loaded",
		zap.String("month", SeedMonth),
		zap.Float64("budget", 3000),
		zap.Int("expenses", len(seedExpenses)),
		zap.Int("subscriptions", len(seedSubscriptions)),
	)
	return nil
}
