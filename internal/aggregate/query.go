package aggregate

import (
	"math"
	"sort"
	"strings"

	"github.com/boddenberg/smart-gastos-api/internal/domain"
)

// CategoryMatch selects how Query.Category is compared.
type CategoryMatch int

const (
	// MatchContains is a case-insensitive substring match; "all" disables it.
	MatchContains CategoryMatch = iota
	// MatchExact compares the category verbatim.
	MatchExact
)

// AllCategories disables the category filter under MatchContains.
const AllCategories = "all"

// Query narrows a list of expenses. Empty fields are not applied; the rest
// combine with AND semantics, so their order does not matter.
type Query struct {
	StartDate     string // inclusive, compared as a string
	EndDate       string // inclusive, compared as a string
	Category      string
	CategoryMatch CategoryMatch
	Search        string // case-insensitive substring of the description
}

// Matches reports whether e passes every active filter of q.
func (q Query) Matches(e domain.Expense) bool {
	if q.StartDate != "" && e.Date < q.StartDate {
		return false
	}
	if q.EndDate != "" && e.Date > q.EndDate {
		return false
	}
	if q.Category != "" {
		switch q.CategoryMatch {
		case MatchExact:
			if e.Category != q.Category {
				return false
			}
		default:
			if q.Category != AllCategories && !containsFold(e.Category, q.Category) {
				return false
			}
		}
	}
	if q.Search != "" && !containsFold(e.Description, q.Search) {
		return false
	}
	return true
}

// Filter returns the expenses matching q, preserving order.
func Filter(expenses []domain.Expense, q Query) []domain.Expense {
	out := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if q.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// InRange keeps the expenses dated within the inclusive range r.
func InRange(expenses []domain.Expense, r domain.DateRange) []domain.Expense {
	return Filter(expenses, Query{StartDate: r.Start, EndDate: r.End})
}

// SortByDateDesc returns a copy sorted newest first. Equal dates keep their order.
func SortByDateDesc(expenses []domain.Expense) []domain.Expense {
	out := make([]domain.Expense, len(expenses))
	copy(out, expenses)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// Paginate slices items to [offset, offset+limit) with offset=(page-1)*limit.
// Pages past the end are empty. page and limit must be positive.
func Paginate(items []domain.Expense, page, limit int) domain.ExpensePage {
	total := len(items)
	p := domain.Pagination{Page: page, Limit: limit, Total: total}
	if page < 1 || limit < 1 {
		return domain.ExpensePage{Expenses: []domain.Expense{}, Pagination: p}
	}
	p.TotalPages = int(math.Ceil(float64(total) / float64(limit)))

	// Compare in page units first: (page-1)*limit overflows for huge pages.
	if total == 0 || page-1 > (total-1)/limit {
		return domain.ExpensePage{Expenses: []domain.Expense{}, Pagination: p}
	}
	offset := (page - 1) * limit
	end := total
	if limit < total-offset {
		end = offset + limit
	}
	out := make([]domain.Expense, end-offset)
	copy(out, items[offset:end])
	return domain.ExpensePage{Expenses: out, Pagination: p}
}

// Top returns at most n items from the front of expenses.
func Top(expenses []domain.Expense, n int) []domain.Expense {
	if n < len(expenses) {
		expenses = expenses[:n]
	}
	out := make([]domain.Expense, len(expenses))
	copy(out, expenses)
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
