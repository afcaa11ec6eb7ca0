package domain

// ============================================================
// Health API Responses
// ============================================================

// HealthStatus is returned by GET /health.
type HealthStatus struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	Timestamp string        `json:"timestamp"`
	Records   RecordCounts  `json:"records"`
	Requests  RequestCounts `json:"requests"`
}

// RecordCounts is the size of each in-memory collection.
type RecordCounts struct {
	Expenses      int `json:"expenses"`
	Budgets       int `json:"budgets"`
	Subscriptions int `json:"subscriptions"`
}

// RequestCounts is the cumulative number of requests served, by status class.
type RequestCounts struct {
	Success     int64 `json:"success"`
	ClientError int64 `json:"clientError"`
	ServerError int64 `json:"serverError"`
}

// ============================================================
// Generic API Response wrapper
// ============================================================

// Response is the envelope shared by every /api route.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
