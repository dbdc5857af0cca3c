package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sebuszqo/ExpenseTracker/db"
	"github.com/sebuszqo/ExpenseTracker/internal/config"
	emailService "github.com/sebuszqo/ExpenseTracker/internal/email"
	"github.com/sebuszqo/ExpenseTracker/internal/finance/application"
	"github.com/sebuszqo/ExpenseTracker/internal/finance/infrastructure"
	"github.com/sebuszqo/ExpenseTracker/internal/finance/interfaces"
	"github.com/sebuszqo/ExpenseTracker/internal/queue"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router            *http.ServeMux
	dbService         *database.DBService
	expenseHandler    *interfaces.ExpenseHandler
	categoryHandler   *interfaces.CategoryHandler
	limitHandler      *interfaces.LimitHandler
	recurringHandler  *interfaces.RecurringExpenseHandler
	reportHandler     *interfaces.ReportHandler
	evaluationHandler *interfaces.EvaluationHandler
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	health := s.dbService.Health()
	if health["status"] != "up" {
		respondJSON(w, http.StatusServiceUnavailable, health)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) RegisterRoutes() {
	userRoutes := http.NewServeMux()
	userRoutes.Handle("POST /api/expenses", http.HandlerFunc(s.expenseHandler.CreateExpense))
	userRoutes.Handle("GET /api/expenses", http.HandlerFunc(s.expenseHandler.GetUserExpenses))
	userRoutes.Handle("DELETE /api/expenses/{id}", http.HandlerFunc(s.expenseHandler.DeleteExpense))

	userRoutes.Handle("POST /api/categories", http.HandlerFunc(s.categoryHandler.CreateCategory))
	userRoutes.Handle("GET /api/categories", http.HandlerFunc(s.categoryHandler.GetCategories))
	userRoutes.Handle("DELETE /api/categories/{id}", http.HandlerFunc(s.categoryHandler.DeleteCategory))

	userRoutes.Handle("POST /api/limits", http.HandlerFunc(s.limitHandler.CreateLimit))
	userRoutes.Handle("GET /api/limits", http.HandlerFunc(s.limitHandler.GetUserLimits))
	userRoutes.Handle("DELETE /api/limits/{id}", http.HandlerFunc(s.limitHandler.DeleteLimit))

	userRoutes.Handle("POST /api/recurring-expenses", http.HandlerFunc(s.recurringHandler.CreateRecurringExpense))
	userRoutes.Handle("GET /api/recurring-expenses", http.HandlerFunc(s.recurringHandler.GetUserRecurringExpenses))
	userRoutes.Handle("DELETE /api/recurring-expenses/{id}", http.HandlerFunc(s.recurringHandler.DeleteRecurringExpense))

	userRoutes.Handle("GET /api/reports/monthly", http.HandlerFunc(s.reportHandler.GetMonthlyReport))

	internalRoutes := http.NewServeMux()
	internalRoutes.Handle("POST /api/internal/limits/evaluate", http.HandlerFunc(s.evaluationHandler.EvaluateLimits))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))
	mainRouter.Handle("/api/internal/", internalRoutes)
	mainRouter.Handle("/api/", interfaces.UserIdentityMiddleware(userRoutes))
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService(cfg.DBConnectionString)
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	mailer := emailService.NewEmailService(emailService.Config{
		From:         cfg.EmailAddress,
		Password:     cfg.EmailPassword,
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		TemplatesDir: cfg.TemplatesDir,
	})
	defer mailer.Close()

	expenseRepo := infrastructure.NewExpenseRepository(dbService.DB)
	limitRepo := infrastructure.NewLimitRepository(dbService.DB)
	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	recurringRepo := infrastructure.NewRecurringExpenseRepository(dbService.DB)
	userRepo := user.NewUserRepository(dbService.DB)

	userService := user.NewUserService(userRepo)
	categoryService := application.NewCategoryService(categoryRepo)
	limitService := application.NewLimitService(limitRepo, categoryService)

	notifier := application.NewEmailBreachNotifier(mailer)
	evaluator := application.NewLimitEvaluator(limitRepo, expenseRepo, categoryService, userService, notifier)

	var dispatcher application.EvaluationDispatcher
	if cfg.AMQPURL != "" {
		queueClient, err := queue.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			log.Fatalf("Could not connect to the message broker: %v", err)
		}
		defer queueClient.Close()
		dispatcher = application.NewQueueDispatcher(queueClient, cfg.EvaluationTimeout)
		log.Println("Dispatching limit evaluations to the message broker")
	} else {
		dispatcher = application.NewInProcessDispatcher(evaluator, cfg.EvaluationTimeout)
		log.Println("No AMQP_URL configured, evaluating limits in-process")
	}

	expenseService := application.NewExpenseService(expenseRepo, categoryService, dispatcher)
	recurringService := application.NewRecurringExpenseService(recurringRepo, expenseService, categoryService)
	reportService := application.NewReportService(expenseRepo, categoryService, userService, mailer)

	server := &Server{
		dbService:         dbService,
		expenseHandler:    interfaces.NewExpenseHandler(expenseService, respondJSON, respondError),
		categoryHandler:   interfaces.NewCategoryHandler(categoryService, respondJSON, respondError),
		limitHandler:      interfaces.NewLimitHandler(limitService, respondJSON, respondError),
		recurringHandler:  interfaces.NewRecurringExpenseHandler(recurringService, respondJSON, respondError),
		reportHandler:     interfaces.NewReportHandler(reportService, respondJSON, respondError),
		evaluationHandler: interfaces.NewEvaluationHandler(evaluator, respondJSON),
	}
	server.RegisterRoutes()

	if err := startSchedulers(limitService, recurringService, reportService); err != nil {
		log.Fatalf("Scheduler didn't start, stopping the app: %v", err)
	}

	handler := loggingMiddleware(server.router)
	log.Printf("Server starting on port %s...", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func startSchedulers(
	limitService *application.LimitService,
	recurringService *application.RecurringExpenseService,
	reportService *application.ReportService,
) error {
	c := cron.New()

	// roll expired limit periods forward just after midnight
	_, err := c.AddFunc("10 0 * * *", func() {
		rolled, err := limitService.RolloverExpiredLimits(time.Now())
		if err != nil {
			log.Printf("Error rolling over limit periods: %v", err)
		} else if rolled > 0 {
			log.Printf("Rolled over %d limit periods.", rolled)
		}
	})
	if err != nil {
		return err
	}

	// materialize due recurring expenses once per hour
	_, err = c.AddFunc("@hourly", func() {
		processed, err := recurringService.ProcessDueExpenses(time.Now())
		if err != nil {
			log.Printf("Error processing recurring expenses: %v", err)
		} else if processed > 0 {
			log.Printf("Materialized %d recurring expenses.", processed)
		}
	})
	if err != nil {
		return err
	}

	// mail last month's reports on the morning of the first
	_, err = c.AddFunc("0 7 1 * *", func() {
		sent, err := reportService.RunMonthlyReports(time.Now())
		if err != nil {
			log.Printf("Error sending monthly reports: %v", err)
		} else {
			log.Printf("Sent %d monthly reports.", sent)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	return nil
}
