package domain

// AlertType is the severity of an alert, as rendered by the client banner.
type AlertType string

const (
	AlertInfo    AlertType = "info"
	AlertWarning AlertType = "warning"
	AlertError   AlertType = "error"
)

// Alert is a derived notice about budgets, categories, subscriptions or trends.
// ID is a display id, stable only within one response.
type Alert struct {
	ID      int       `json:"id"`
	Type    AlertType `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Date    string    `json:"date"`
}

// ============================================================
// Display shapes
// ============================================================

// DisplayCategory is a chart slice.
type DisplayCategory struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Color      string  `json:"color"`
	Percentage string  `json:"percentage"`
}

// DisplayExpense is an expense with a numeric id and formatted amount.
type DisplayExpense struct {
	ID              int     `json:"id"`
	SourceID        string  `json:"sourceId"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Amount          float64 `json:"amount"`
	FormattedAmount string  `json:"formattedAmount"`
	Date            string  `json:"date"`
}

// DisplayDashboard is the month view shaped for the client.
type DisplayDashboard struct {
	Month              string            `json:"month"`
	Budget             float64           `json:"budget"`
	Spent              float64           `json:"spent"`
	Remaining          float64           `json:"remaining"`
	FormattedBudget    string            `json:"formattedBudget"`
	FormattedSpent     string            `json:"formattedSpent"`
	FormattedRemaining string            `json:"formattedRemaining"`
	Categories         []DisplayCategory `json:"categories"`
	RecentExpenses     []DisplayExpense  `json:"recentExpenses"`
}
