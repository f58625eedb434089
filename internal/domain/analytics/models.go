package analytics

// CategorySpending is one category's share of spending over the window
type CategorySpending struct {
	Category           string  `json:"category"`
	Total              float64 `json:"total"`
	Count              int     `json:"count"`
	Percentage         float64 `json:"percentage"`
	AverageTransaction float64 `json:"averageTransaction"`
}

// SpendingAnalysis aggregates expense transactions by category
type SpendingAnalysis struct {
	TotalSpent   float64            `json:"totalSpent"`
	Categories   []CategorySpending `json:"categories"`
	WindowMonths int                `json:"windowMonths"`
}

// MonthForecast is the projected spending for one calendar month
type MonthForecast struct {
	Month      string             `json:"month"` // YYYY-MM
	Categories map[string]float64 `json:"categories"`
	Total      float64            `json:"total"`
}

// ForecastResult carries historical averages plus the 3-month projection
type ForecastResult struct {
	MonthlyAverage   float64            `json:"monthlyAverage"`
	CategoryAverages map[string]float64 `json:"categoryAverages"`
	Forecast         []MonthForecast    `json:"forecast"`
	WindowMonths     int                `json:"windowMonths"`
}

// HealthMetrics are the raw inputs handed to the LLM health scorer
type HealthMetrics struct {
	Balance         float64 `json:"balance"`
	Income          float64 `json:"income"`
	Expenses        float64 `json:"expenses"`
	SavingsRate     float64 `json:"savingsRate"`
	MonthlyIncome   float64 `json:"monthlyIncome"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
	DebtToIncome    float64 `json:"debtToIncome"`
	EmergencyMonths float64 `json:"emergencyMonths"`
}

// ShortfallPrediction reports whether upcoming bills outrun the projected balance
type ShortfallPrediction struct {
	Balance            float64 `json:"balance"`
	Income             float64 `json:"income"`
	UpcomingBillsTotal float64 `json:"upcomingBillsTotal"`
	ProjectedBalance   float64 `json:"projectedBalance"`
	WillMissBills      bool    `json:"willMissBills"`
}

// RecurringPattern is a detected repeating charge
type RecurringPattern struct {
	Category         string  `json:"category"`
	Merchant         string  `json:"merchant"`
	Frequency        string  `json:"frequency"` // weekly, bi-weekly, monthly
	AverageAmount    float64 `json:"averageAmount"`
	TransactionCount int     `json:"transactionCount"`
	IsRegularAmount  bool    `json:"isRegularAmount"`
}
