package domain

// ============================================================
// History
// ============================================================

// Pagination describes one page of a filtered listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// HistoryQuery selects a page of the combined expense history.
// Category is a case-insensitive substring; "all" or empty disables it.
type HistoryQuery struct {
	StartDate string
	EndDate   string
	Category  string
	Search    string
	Page      int
	Limit     int
}

// ExpensePage is returned by GET /api/history/expenses.
type ExpensePage struct {
	Expenses   []Expense  `json:"expenses"`
	Pagination Pagination `json:"pagination"`
}

// CategoryStat is a category line in history and report statistics.
type CategoryStat struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MonthAmount is a month bucket with its summed amount.
type MonthAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// HistoryStats is returned by GET /api/history/stats.
type HistoryStats struct {
	TotalExpenses   int            `json:"totalExpenses"`
	TotalAmount     float64        `json:"totalAmount"`
	AverageAmount   float64        `json:"averageAmount"`
	CategorySummary []CategoryStat `json:"categorySummary"`
	MonthlyData     []MonthAmount  `json:"monthlyData"`
}

// Granularity is the bucket size of a period series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// Valid reports whether g is a supported granularity.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityYear:
		return true
	}
	return false
}

// PeriodAmount is one point of a period series.
type PeriodAmount struct {
	Period string  `json:"period"`
	Amount float64 `json:"amount"`
}

// ============================================================
// Reports
// ============================================================

// TotalsSummary holds count, sum and mean of a set of expenses.
type TotalsSummary struct {
	TotalExpenses int     `json:"totalExpenses"`
	TotalAmount   float64 `json:"totalAmount"`
	AverageAmount float64 `json:"averageAmount"`
}

// ReportsData is returned by GET /api/reports/data.
type ReportsData struct {
	Summary         TotalsSummary  `json:"summary"`
	CategorySummary []CategoryStat `json:"categorySummary"`
	MonthlyStats    []MonthAmount  `json:"monthlyStats"`
	TopCategories   []CategoryStat `json:"topCategories"`
	RecentExpenses  []Expense      `json:"recentExpenses"`
}

// DateRange is an inclusive [Start, End] pair of YYYY-MM-DD strings.
type DateRange struct {
	Start string `json:"startDate"`
	End   string `json:"endDate"`
}

// PeriodStats describes the expenses that fell inside one comparison range.
type PeriodStats struct {
	TotalExpenses     int                `json:"totalExpenses"`
	TotalAmount       float64            `json:"totalAmount"`
	AverageAmount     float64            `json:"averageAmount"`
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
	StartDate         string             `json:"startDate"`
	EndDate           string             `json:"endDate"`
}

// ComparisonDelta is the change from period1 (previous) to period2 (current).
type ComparisonDelta struct {
	TotalAmountChange   float64 `json:"totalAmountChange"`
	TotalExpensesChange float64 `json:"totalExpensesChange"`
	AmountDifference    float64 `json:"amountDifference"`
	ExpensesDifference  int     `json:"expensesDifference"`
}

// PeriodComparison is returned by GET /api/reports/comparison.
type PeriodComparison struct {
	Period1    PeriodStats     `json:"period1"`
	Period2    PeriodStats     `json:"period2"`
	Comparison ComparisonDelta `json:"comparison"`
}

// TrendDirection classifies a trend series.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// MonthTrend is one month of a trend series.
type MonthTrend struct {
	Month         string             `json:"month"`
	TotalAmount   float64            `json:"totalAmount"`
	TotalCount    int                `json:"totalCount"`
	AverageAmount float64            `json:"averageAmount"`
	Categories    map[string]float64 `json:"categories"`
}

// Trends is returned by GET /api/reports/trends.
type Trends struct {
	Trends                 []MonthTrend   `json:"trends"`
	TrendDirection         TrendDirection `json:"trendDirection"`
	AverageMonthlySpending float64        `json:"averageMonthlySpending"`
	MonthsAnalyzed         int            `json:"monthsAnalyzed"`
}

// CategoryReportSummary is the header of a category report.
// Missing range bounds are reported as "N/A".
type CategoryReportSummary struct {
	TotalAmount   float64 `json:"totalAmount"`
	TotalCount    int     `json:"totalCount"`
	AverageAmount float64 `json:"averageAmount"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
}

// CategoryReport is returned by GET /api/reports/category.
type CategoryReport struct {
	Category     string                `json:"category"`
	Summary      CategoryReportSummary `json:"summary"`
	MonthlyStats []MonthAmount         `json:"monthlyStats"`
	Expenses     []Expense             `json:"expenses"`
}
