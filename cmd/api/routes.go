package main

import (
	"log"
	"net/http"

	httphandlers "finsight/internal/interfaces/http"
	"finsight/internal/shared/config"
	"finsight/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)
	protected := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	mux.Handle("/api/transactions", protected(deps.TransactionHandler.HandleTransactions))
	mux.Handle("/api/balance", protected(deps.TransactionHandler.HandleBalance))

	mux.Handle("/api/budget", protected(deps.BudgetHandler.HandleGetBudget))
	mux.Handle("/api/budget/update", protected(deps.BudgetHandler.HandleUpdateBudget))

	mux.Handle("/api/bills", protected(deps.BillHandler.HandleBills))
	mux.Handle("/api/bills/{id}/status", protected(deps.BillHandler.HandleBillStatus))

	mux.Handle("/api/analytics/spending", protected(deps.AnalyticsHandler.HandleSpending))
	mux.Handle("/api/analytics/habits", protected(deps.AnalyticsHandler.HandleHabits))
	mux.Handle("/api/analytics/forecast", protected(deps.AnalyticsHandler.HandleForecast))
	mux.Handle("/api/analytics/health-score", protected(deps.AnalyticsHandler.HandleHealthScore))

	mux.Handle("/api/goals", protected(deps.GoalHandler.HandleGoals))
	mux.Handle("/api/goals/progress", protected(deps.GoalHandler.HandleGoalProgress))
	mux.Handle("/api/goals/{id}/suggestions", protected(deps.GoalHandler.HandleGoalSuggestions))

	mux.Handle("/api/advice/purchase", protected(deps.AdvisorHandler.HandlePurchase))
	mux.Handle("/api/advice/chat", protected(deps.AdvisorHandler.HandleChat))
	mux.Handle("/api/advice/shortfall", protected(deps.AdvisorHandler.HandleShortfall))

	mux.Handle("/api/predict", protected(deps.AdvisorHandler.HandlePredict))
	mux.Handle("/api/sentiment", protected(deps.AdvisorHandler.HandleSentiment))
	mux.Handle("/api/news", protected(deps.NewsHandler.HandleNews))

	mux.Handle("/api/notifications", protected(deps.NotificationHandler.HandleNotifications))
	mux.Handle("/api/notifications/register-device", protected(deps.NotificationHandler.HandleRegisterDevice))
	mux.Handle("/api/notifications/preferences", protected(deps.NotificationHandler.HandlePreferences))
	mux.Handle("/api/notifications/{id}/opened", protected(deps.NotificationHandler.HandleNotificationOpened))

	// Everything else gets the JSON 404 envelope
	mux.Handle("/", httphandlers.NotFoundHandler())

	// Apply global middleware
	var handler http.Handler = mux
	handler = middleware.Tracing(handler)
	handler = middleware.Telemetry(handler)
	handler = middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(handler))

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
