package advisor

import (
	"context"
	"fmt"
	"log"
	"strings"

	"finsight/internal/domain/analytics"
	"finsight/internal/domain/goal"
	"finsight/internal/domain/news"
)

// Service renders local numeric summaries into prompts, calls the text
// generator, and tolerantly parses the reply. Parse failures degrade to a
// typed fallback payload; they never surface as server errors.
type Service struct {
	gen  TextGenerator
	news news.Repository
}

func NewService(gen TextGenerator, newsRepo news.Repository) *Service {
	return &Service{gen: gen, news: newsRepo}
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	if s.gen == nil {
		return "", ErrGeneratorUnavailable
	}
	return s.gen.Generate(ctx, prompt)
}

// OptimizeSpending asks for savings suggestions on a spending analysis.
func (s *Service) OptimizeSpending(ctx context.Context, analysis *analytics.SpendingAnalysis) (*OptimizationAdvice, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a personal finance advisor. The user spent $%.2f over the last %d months:\n",
		analysis.TotalSpent, analysis.WindowMonths)
	for _, c := range analysis.Categories {
		fmt.Fprintf(&sb, "- %s: $%.2f across %d transactions (%.1f%% of spending)\n",
			c.Category, c.Total, c.Count, c.Percentage)
	}
	sb.WriteString(`Reply with JSON only: {"observations": [..], "recommendations": [..], "monthlyTargets": {"category": amount}, "summary": "..."}`)

	reply, err := s.generate(ctx, sb.String())
	if err != nil {
		return nil, err
	}

	advice := &OptimizationAdvice{}
	if err := extractJSON(reply, advice); err != nil {
		log.Printf("Advisor: optimization reply was not JSON, using text fallback")
		advice.Summary = strings.TrimSpace(reply)
	}
	return advice, nil
}

// ClassifyHabits labels recurring patterns healthy or unhealthy.
func (s *Service) ClassifyHabits(ctx context.Context, patterns []analytics.RecurringPattern) (*HabitAnalysis, error) {
	if len(patterns) == 0 {
		return &HabitAnalysis{Habits: []Habit{}, Summary: "No recurring spending patterns detected."}, nil
	}

	var sb strings.Builder
	sb.WriteString("Classify each recurring charge as a healthy or unhealthy financial habit:\n")
	for _, p := range patterns {
		fmt.Fprintf(&sb, "- %s (%s): $%.2f %s, %d occurrences\n",
			p.Merchant, p.Category, p.AverageAmount, p.Frequency, p.TransactionCount)
	}
	sb.WriteString(`Reply with JSON only: {"habits": [{"merchant": "...", "category": "...", "classification": "healthy|unhealthy", "reasoning": "..."}], "summary": "..."}`)

	reply, err := s.generate(ctx, sb.String())
	if err != nil {
		return nil, err
	}

	result := &HabitAnalysis{}
	if err := extractJSON(reply, result); err != nil {
		log.Printf("Advisor: habit reply was not JSON, using text fallback")
		result.Summary = strings.TrimSpace(reply)
	}
	if result.Habits == nil {
		result.Habits = []Habit{}
	}
	return result, nil
}

// ScoreHealth turns raw metrics into a 0-100 score. The score itself is
// the LLM's judgment; only the inputs are computed locally.
func (s *Service) ScoreHealth(ctx context.Context, m *analytics.HealthMetrics) (*HealthScore, error) {
	prompt := fmt.Sprintf(`Rate this person's financial health from 0 to 100.
Balance: $%.2f. Savings rate: %.2f. Monthly income: $%.2f. Monthly expenses: $%.2f.
Debt-to-income: %.2f. Emergency fund runway: %.1f months.
Reply with JSON only: {"score": 0-100, "category": "excellent|good|fair|poor", "componentScores": {"savings": n, "debt": n, "emergencyFund": n}, "summary": "..."}`,
		m.Balance, m.SavingsRate, m.MonthlyIncome, m.MonthlyExpenses, m.DebtToIncome, m.EmergencyMonths)

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	score := &HealthScore{}
	if err := extractJSON(reply, score); err != nil {
		log.Printf("Advisor: health score reply was not JSON, using text fallback")
		score.Summary = strings.TrimSpace(reply)
	}
	if score.Score < 0 {
		score.Score = 0
	}
	if score.Score > 100 {
		score.Score = 100
	}
	return score, nil
}

// AssessBillRisk annotates a shortfall prediction with risk guidance.
func (s *Service) AssessBillRisk(ctx context.Context, p *analytics.ShortfallPrediction) (*BillRiskAnalysis, error) {
	prompt := fmt.Sprintf(`A user has balance $%.2f, monthly income $%.2f, and $%.2f of upcoming bills.
Projected balance after bills: $%.2f. Will miss bills: %v.
Reply with JSON only: {"riskLevel": "low|medium|high", "reasoning": "...", "recommendations": [..]}`,
		p.Balance, p.Income, p.UpcomingBillsTotal, p.ProjectedBalance, p.WillMissBills)

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	risk := &BillRiskAnalysis{}
	if err := extractJSON(reply, risk); err != nil {
		log.Printf("Advisor: bill risk reply was not JSON, using text fallback")
		risk.Reasoning = strings.TrimSpace(reply)
	}
	if risk.RiskLevel == "" {
		if p.WillMissBills {
			risk.RiskLevel = "high"
		} else {
			risk.RiskLevel = "low"
		}
	}
	return risk, nil
}

// EvaluatePurchase judges whether a purchase fits the user's situation.
func (s *Service) EvaluatePurchase(ctx context.Context, req PurchaseRequest, m *analytics.HealthMetrics) (*PurchaseEvaluation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`A user wants to buy %q for $%.2f.
Their balance is $%.2f, monthly income $%.2f, monthly expenses $%.2f, emergency runway %.1f months.
Reply with JSON only: {"recommendation": "recommended|acceptable|caution|not recommended", "reasoning": "...", "alternatives": [..]}`,
		req.ItemName, req.Cost, m.Balance, m.MonthlyIncome, m.MonthlyExpenses, m.EmergencyMonths)

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	eval := &PurchaseEvaluation{}
	if err := extractJSON(reply, eval); err != nil {
		log.Printf("Advisor: purchase reply was not JSON, using text fallback")
		eval.Reasoning = strings.TrimSpace(reply)
	}
	if eval.Recommendation == "" {
		eval.Recommendation = RecommendationCaution
	}
	return eval, nil
}

// Chat answers a free-form question in the user's financial context.
func (s *Service) Chat(ctx context.Context, question string, m *analytics.HealthMetrics) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("question is required")
	}

	prompt := fmt.Sprintf(`You are a personal finance advisor. The user's situation:
balance $%.2f, monthly income $%.2f, monthly expenses $%.2f, savings rate %.2f, emergency runway %.1f months.
Question: %s
Answer concisely in plain text.`,
		m.Balance, m.MonthlyIncome, m.MonthlyExpenses, m.SavingsRate, m.EmergencyMonths, question)

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// SuggestForGoal offers ways to hit a specific savings goal.
func (s *Service) SuggestForGoal(ctx context.Context, g *goal.Goal, m *analytics.HealthMetrics) (*GoalAdvice, error) {
	prompt := fmt.Sprintf(`A user is saving for %q: $%.2f of $%.2f (%.0f%%), target date %s.
Monthly income $%.2f, monthly expenses $%.2f.
Reply with JSON only: {"suggestions": [..], "monthlySavingsNeeded": n, "summary": "..."}`,
		g.Name, g.CurrentAmount, g.TargetAmount, g.Progress*100, g.TargetDate.Format("2006-01-02"),
		m.MonthlyIncome, m.MonthlyExpenses)

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	advice := &GoalAdvice{}
	if err := extractJSON(reply, advice); err != nil {
		log.Printf("Advisor: goal reply was not JSON, using text fallback")
		advice.Summary = strings.TrimSpace(reply)
	}
	if advice.Suggestions == nil {
		advice.Suggestions = []string{}
	}
	return advice, nil
}

// PredictStock produces a BUY/HOLD/SELL call from sentiment and risk
// tolerance.
func (s *Service) PredictStock(ctx context.Context, req PredictRequest) (*StockPrediction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	tolerance := req.RiskTolerance
	if tolerance == "" {
		tolerance = "medium"
	}

	prompt := fmt.Sprintf(`Stock symbol %s has market sentiment score %.2f (range -1 bearish to 1 bullish).
The investor's risk tolerance is %s.
Reply with JSON only: {"action": "BUY|HOLD|SELL", "confidence": 0-1, "reasoning": "..."}`,
		strings.ToUpper(req.Symbol), req.SentimentScore, tolerance)

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	pred := &StockPrediction{Symbol: strings.ToUpper(req.Symbol)}
	if err := extractJSON(reply, pred); err != nil {
		log.Printf("Advisor: predict reply was not JSON, using text fallback")
		pred.Reasoning = strings.TrimSpace(reply)
	}
	if pred.Action == "" {
		pred.Action = "HOLD"
	}
	pred.Symbol = strings.ToUpper(req.Symbol)
	return pred, nil
}

// AnalyzeSentiment scores a news text and caches the result.
func (s *Service) AnalyzeSentiment(ctx context.Context, title, content, source string) (*SentimentResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content is required")
	}

	prompt := fmt.Sprintf(`Analyze the market sentiment of this news text:
%s
Reply with JSON only: {"sentimentScore": -1..1, "keywords": [..], "summary": "..."}`, content)

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := &SentimentResult{}
	if err := extractJSON(reply, result); err != nil {
		log.Printf("Advisor: sentiment reply was not JSON, using text fallback")
		result.Summary = strings.TrimSpace(reply)
	}
	if result.SentimentScore < -1 {
		result.SentimentScore = -1
	}
	if result.SentimentScore > 1 {
		result.SentimentScore = 1
	}
	if result.Keywords == nil {
		result.Keywords = []string{}
	}

	if s.news != nil {
		_, err := s.news.Create(ctx, news.CreateParams{
			Title:          title,
			Content:        content,
			Source:         source,
			SentimentScore: result.SentimentScore,
			Keywords:       result.Keywords,
			Summary:        result.Summary,
		})
		if err != nil {
			log.Printf("Advisor: failed to cache sentiment result: %v", err)
		}
	}

	return result, nil
}
