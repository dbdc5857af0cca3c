package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sebuszqo/ExpenseTracker/db"
	"github.com/sebuszqo/ExpenseTracker/internal/config"
	emailService "github.com/sebuszqo/ExpenseTracker/internal/email"
	"github.com/sebuszqo/ExpenseTracker/internal/finance/application"
	financeErrors "github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/finance/infrastructure"
	"github.com/sebuszqo/ExpenseTracker/internal/queue"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

// LimitWorker drains the evaluation queue. Dependency read failures are
// returned to the broker for redelivery; everything else is handled inside
// the evaluator and must not cause a requeue loop.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Missing configuration, update to start worker: %v", err)
	}
	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required to run the limit worker")
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
	userRepo := user.NewUserRepository(dbService.DB)

	userService := user.NewUserService(userRepo)
	categoryService := application.NewCategoryService(categoryRepo)
	notifier := application.NewEmailBreachNotifier(mailer)
	evaluator := application.NewLimitEvaluator(limitRepo, expenseRepo, categoryService, userService, notifier)

	queueClient, err := queue.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		log.Fatalf("Could not connect to the message broker: %v", err)
	}
	defer queueClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = queueClient.ConsumeEvaluations(ctx, func(msg *queue.EvaluationMessage) error {
		result, err := evaluator.EvaluateLimits(application.EvaluationRequest{
			UserID:     msg.UserID,
			CategoryID: msg.CategoryID,
		})
		if err != nil {
			if financeErrors.IsDependencyReadError(err) {
				return err
			}
			// malformed messages can never succeed, drop them after logging
			log.Printf("Dropping unevaluable message for user %s, category %s: %v", msg.UserID, msg.CategoryID, err)
			return nil
		}
		if len(result.Breaches) > 0 {
			log.Printf("Evaluated %d limits for user %s, category %s: %d breached",
				result.LimitsEvaluated, msg.UserID, msg.CategoryID, len(result.Breaches))
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Worker stopped with error: %v", err)
	}
	log.Println("Worker shut down cleanly")
}
