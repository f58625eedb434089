package advisor

import (
	"context"
	"errors"
)

// TextGenerator is the narrow boundary to the LLM. Implemented by the
// Gemini client; stubbed in tests.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var ErrGeneratorUnavailable = errors.New("text generator unavailable")

// Purchase recommendation values
const (
	RecommendationRecommended    = "recommended"
	RecommendationAcceptable     = "acceptable"
	RecommendationCaution        = "caution"
	RecommendationNotRecommended = "not recommended"
)

// OptimizationAdvice is the LLM's take on a spending analysis
type OptimizationAdvice struct {
	Observations    []string           `json:"observations"`
	Recommendations []string           `json:"recommendations"`
	MonthlyTargets  map[string]float64 `json:"monthlyTargets"`
	Summary         string             `json:"summary"`
}

// Habit is one recurring pattern classified as healthy or not
type Habit struct {
	Merchant       string `json:"merchant"`
	Category       string `json:"category"`
	Classification string `json:"classification"` // healthy | unhealthy
	Reasoning      string `json:"reasoning"`
}

// HabitAnalysis wraps the classified habits
type HabitAnalysis struct {
	Habits  []Habit `json:"habits"`
	Summary string  `json:"summary"`
}

// HealthScore is the LLM-produced 0-100 assessment of the raw metrics
type HealthScore struct {
	Score           int                `json:"score"`
	Category        string             `json:"category"` // excellent | good | fair | poor
	ComponentScores map[string]float64 `json:"componentScores"`
	Summary         string             `json:"summary"`
}

// BillRiskAnalysis annotates a shortfall prediction
type BillRiskAnalysis struct {
	RiskLevel       string   `json:"riskLevel"` // low | medium | high
	Reasoning       string   `json:"reasoning"`
	Recommendations []string `json:"recommendations"`
}

// PurchaseRequest describes a purchase under consideration
type PurchaseRequest struct {
	ItemName string  `json:"itemName"`
	Cost     float64 `json:"cost"`
}

func (p PurchaseRequest) Validate() error {
	if p.ItemName == "" {
		return errors.New("item name is required")
	}
	if p.Cost <= 0 {
		return errors.New("cost must be positive")
	}
	return nil
}

// PurchaseEvaluation is the advisor's verdict on a purchase
type PurchaseEvaluation struct {
	Recommendation string   `json:"recommendation"`
	Reasoning      string   `json:"reasoning"`
	Alternatives   []string `json:"alternatives"`
}

// GoalAdvice is per-goal guidance
type GoalAdvice struct {
	Suggestions          []string `json:"suggestions"`
	MonthlySavingsNeeded float64  `json:"monthlySavingsNeeded"`
	Summary              string   `json:"summary"`
}

// StockPrediction is a BUY/HOLD/SELL call for one symbol
type StockPrediction struct {
	Symbol     string  `json:"symbol"`
	Action     string  `json:"action"` // BUY | HOLD | SELL
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// PredictRequest is the input to the stock predictor
type PredictRequest struct {
	Symbol         string  `json:"symbol"`
	SentimentScore float64 `json:"sentimentScore"`
	RiskTolerance  string  `json:"riskTolerance"` // low | medium | high
}

func (p PredictRequest) Validate() error {
	if p.Symbol == "" {
		return errors.New("symbol is required")
	}
	return nil
}

// SentimentResult is the outcome of analyzing a news text
type SentimentResult struct {
	SentimentScore float64  `json:"sentimentScore"` // -1 .. 1
	Keywords       []string `json:"keywords"`
	Summary        string   `json:"summary"`
}
