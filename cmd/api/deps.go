package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"finsight/internal/domain/advisor"
	"finsight/internal/domain/analytics"
	"finsight/internal/domain/bill"
	"finsight/internal/domain/budget"
	"finsight/internal/domain/goal"
	"finsight/internal/domain/notification"
	"finsight/internal/domain/transaction"
	"finsight/internal/domain/user"
	"finsight/internal/infrastructure/firebase"
	"finsight/internal/infrastructure/gemini"
	"finsight/internal/infrastructure/postgres"
	httphandlers "finsight/internal/interfaces/http"
	"finsight/internal/shared/auth"
	"finsight/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler         *httphandlers.AuthHandler
	TransactionHandler  *httphandlers.TransactionHandler
	BudgetHandler       *httphandlers.BudgetHandler
	BillHandler         *httphandlers.BillHandler
	GoalHandler         *httphandlers.GoalHandler
	AnalyticsHandler    *httphandlers.AnalyticsHandler
	AdvisorHandler      *httphandlers.AdvisorHandler
	NewsHandler         *httphandlers.NewsHandler
	NotificationHandler *httphandlers.NotificationHandler

	// Auth
	JWT *auth.JWT

	// Repositories and services used by the scheduler jobs
	BillRepo            *postgres.BillRepository
	NotificationService *notification.Service
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	billRepo := postgres.NewBillRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)
	goalRepo := postgres.NewGoalRepository(db)
	newsRepo := postgres.NewNewsRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret)

	// Initialize the Gemini text generator. The advisor degrades to
	// deterministic fallbacks when no key is configured.
	var generator advisor.TextGenerator
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
		if err != nil {
			log.Printf("Warning: Failed to initialize Gemini client: %v", err)
		} else {
			generator = client
			log.Printf("Gemini client initialized (model=%s)", cfg.Gemini.Model)
		}
	} else {
		log.Println("GEMINI_API_KEY not set, advisor endpoints run without a generator")
	}

	// Initialize Firebase messaging if configured
	var messenger notification.Messenger
	if cfg.Firebase.CredentialsFile != "" {
		fcmClient, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, notificationRepo.DeactivateToken)
		if err != nil {
			log.Printf("Warning: Failed to initialize Firebase client: %v", err)
		} else {
			messenger = fcmClient
			log.Println("Firebase messaging client initialized")
		}
	} else {
		log.Println("FIREBASE_CREDENTIALS_FILE not set, push notifications disabled")
	}

	// Initialize domain services
	userService := user.NewService(userRepo, jwt)
	transactionService := transaction.NewService(transactionRepo)
	billService := bill.NewService(billRepo)
	budgetService := budget.NewService(budgetRepo)
	goalService := goal.NewService(goalRepo)
	notificationService := notification.NewService(notificationRepo, messenger)

	forecaster := analytics.NewForecaster(rand.New(rand.NewSource(time.Now().UnixNano())), nil)
	analyticsService := analytics.NewService(transactionRepo, billRepo, budgetRepo, forecaster)
	advisorService := advisor.NewService(generator, newsRepo)

	return &Dependencies{
		DB:                  db,
		AuthHandler:         httphandlers.NewAuthHandler(userService, cfg.TLS.Enabled),
		TransactionHandler:  httphandlers.NewTransactionHandler(transactionService),
		BudgetHandler:       httphandlers.NewBudgetHandler(budgetService, billService),
		BillHandler:         httphandlers.NewBillHandler(billService),
		GoalHandler:         httphandlers.NewGoalHandler(goalService, analyticsService, advisorService),
		AnalyticsHandler:    httphandlers.NewAnalyticsHandler(analyticsService, advisorService),
		AdvisorHandler:      httphandlers.NewAdvisorHandler(advisorService, analyticsService),
		NewsHandler:         httphandlers.NewNewsHandler(newsRepo),
		NotificationHandler: httphandlers.NewNotificationHandler(notificationService),
		JWT:                 jwt,
		BillRepo:            billRepo,
		NotificationService: notificationService,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
}
