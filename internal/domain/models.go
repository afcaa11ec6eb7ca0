// Package domain defines the core records of Smart Gastos.
// These models are independent of storage and transport and represent the
// canonical data structures used throughout the API.
package domain

// ============================================================
// Expenses
// ============================================================

// Expense is a single spending record. Date is a YYYY-MM-DD string and its
// first seven characters are the month bucket the expense belongs to.
type Expense struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

// ExpenseInput carries the fields of a new expense.
type ExpenseInput struct {
	Amount      float64 `json:"amount" validate:"gt=0"`
	Description string  `json:"description" validate:"required,notblank"`
	Category    string  `json:"category" validate:"required,notblank"`
	Date        string  `json:"date" validate:"required,isodate"`
}

// ExpensePatch is a partial update. Nil fields are left untouched.
type ExpensePatch struct {
	Amount      *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Description *string  `json:"description,omitempty" validate:"omitempty,notblank"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,notblank"`
	Date        *string  `json:"date,omitempty" validate:"omitempty,isodate"`
}

// ============================================================
// Budgets
// ============================================================

// Budget is the spending ceiling for one month. There is at most one per month.
type Budget struct {
	ID          string  `json:"id"`
	Month       string  `json:"month"` // YYYY-MM
	TotalBudget float64 `json:"totalBudget"`
}

// BudgetInput is the body of POST /api/budget.
type BudgetInput struct {
	Month       string  `json:"month" validate:"required,yearmonth"`
	TotalBudget float64 `json:"totalBudget" validate:"gt=0"`
}

// ============================================================
// Subscriptions
// ============================================================

// SubscriptionStatus is the lifecycle state of a subscription.
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "Active"
	StatusPending   SubscriptionStatus = "Pending"
	StatusCancelled SubscriptionStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// Toggled returns the status after a user toggle: Active becomes Cancelled,
// anything else becomes Active.
func (s SubscriptionStatus) Toggled() SubscriptionStatus {
	if s == StatusActive {
		return StatusCancelled
	}
	return StatusActive
}

// Subscription is a recurring monthly charge.
type Subscription struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Amount      float64            `json:"amount"`
	NextPayment string             `json:"nextPayment"` // YYYY-MM-DD
	Status      SubscriptionStatus `json:"status"`
}

// SubscriptionInput is the body of POST /api/subscriptions.
// An empty status defaults to Active.
type SubscriptionInput struct {
	Name        string             `json:"name" validate:"required,notblank"`
	Category    string             `json:"category" validate:"required,notblank"`
	Amount      float64            `json:"amount" validate:"gt=0"`
	NextPayment string             `json:"nextPayment" validate:"required,isodate"`
	Status      SubscriptionStatus `json:"status" validate:"omitempty,substatus"`
}

// SubscriptionPatch is a partial update. Nil fields are left untouched.
type SubscriptionPatch struct {
	Name        *string             `json:"name,omitempty" validate:"omitempty,notblank"`
	Category    *string             `json:"category,omitempty" validate:"omitempty,notblank"`
	Amount      *float64            `json:"amount,omitempty" validate:"omitempty,gt=0"`
	NextPayment *string             `json:"nextPayment,omitempty" validate:"omitempty,isodate"`
	Status      *SubscriptionStatus `json:"status,omitempty" validate:"omitempty,substatus"`
}

// ============================================================
// Derived
// ============================================================

// CategorySummary is the spending of one category within a scope.
type CategorySummary struct {
	Category     string  `json:"category"`
	TotalSpent   float64 `json:"totalSpent"`
	Percentage   float64 `json:"percentage"`
	ExpenseCount int     `json:"expenseCount"`
}

// Dashboard is the month view returned by GET /api/dashboard.
type Dashboard struct {
	Budget         *Budget           `json:"budget"`
	TotalSpent     float64           `json:"totalSpent"`
	Remaining      float64           `json:"remaining"`
	Expenses       []Expense         `json:"expenses"`
	CategoryChart  []CategorySummary `json:"categoryChart"`
	RecentExpenses []Expense         `json:"recentExpenses"`
}

// SubscriptionAnalytics summarises the active subscriptions.
type SubscriptionAnalytics struct {
	TotalMonthly      float64            `json:"totalMonthly"`
	ActiveCount       int                `json:"activeCount"`
	AverageCost       float64            `json:"averageCost"`
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
	AnnualProjection  float64            `json:"annualProjection"`
}

// MonthOf returns the YYYY-MM prefix of a date, or "" when the date is too short.
// Month membership is this string prefix, not a calendar computation.
func MonthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}

// YearOf returns the YYYY prefix of a date, or "" when the date is too short.
func YearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}
