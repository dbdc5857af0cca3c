package application

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
)

type ExpenseCreator interface {
	CreateExpense(expense *domain.Expense) error
}

// RecurringExpenseService materializes recurring templates into concrete
// expenses. Created expenses flow through the normal expense service, so
// they trigger limit evaluation like any hand-entered expense.
type RecurringExpenseService struct {
	repo            domain.RecurringExpenseRepository
	expenseService  ExpenseCreator
	categoryService CategoryServiceInterface
}

func NewRecurringExpenseService(
	repo domain.RecurringExpenseRepository,
	expenseService ExpenseCreator,
	categoryService CategoryServiceInterface,
) *RecurringExpenseService {
	return &RecurringExpenseService{repo: repo, expenseService: expenseService, categoryService: categoryService}
}

func (s *RecurringExpenseService) CreateRecurringExpense(recurring *domain.RecurringExpense) error {
	recurring.ID = uuid.NewString()
	if err := recurring.Validate(); err != nil {
		return err
	}

	exists, err := s.categoryService.DoesCategoryExist(recurring.CategoryID, recurring.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return financeErrors.ErrInvalidCategory
	}

	return s.repo.Save(*recurring)
}

func (s *RecurringExpenseService) GetUserRecurringExpenses(userID string) ([]domain.RecurringExpense, error) {
	recurrings, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if recurrings == nil {
		return []domain.RecurringExpense{}, nil
	}
	return recurrings, nil
}

func (s *RecurringExpenseService) DeleteRecurringExpense(recurringID, userID string) error {
	return s.repo.Delete(recurringID, userID)
}

// ProcessDueExpenses creates an expense for every template that is due at
// now and stamps its last run. One broken template does not stop the rest.
func (s *RecurringExpenseService) ProcessDueExpenses(now time.Time) (int, error) {
	recurrings, err := s.repo.FindAll()
	if err != nil {
		return 0, fmt.Errorf("find recurring expenses: %w", err)
	}

	processed := 0
	for _, recurring := range recurrings {
		if !dueForRun(recurring, now) {
			continue
		}

		expense := &domain.Expense{
			UserID:      recurring.UserID,
			CategoryID:  recurring.CategoryID,
			Amount:      recurring.Amount,
			Date:        domain.DateOnly(now),
			Description: recurring.Description,
		}
		if err := s.expenseService.CreateExpense(expense); err != nil {
			log.Printf("Failed to materialize recurring expense %s: %v", recurring.ID, err)
			continue
		}
		if err := s.repo.UpdateLastRun(recurring.ID, domain.DateOnly(now)); err != nil {
			log.Printf("Failed to stamp last run for recurring expense %s: %v", recurring.ID, err)
			continue
		}
		processed++
	}
	return processed, nil
}

// dueForRun decides whether a template should produce an expense at now.
// A template never runs before its start date and at most once per calendar
// day, week or month depending on its frequency.
func dueForRun(recurring domain.RecurringExpense, now time.Time) bool {
	today := domain.DateOnly(now)
	if today.Before(domain.DateOnly(recurring.StartDate)) {
		return false
	}
	if recurring.LastRun.IsZero() {
		return true
	}
	lastRun := domain.DateOnly(recurring.LastRun)

	switch recurring.Frequency {
	case domain.FrequencyDaily:
		return today.After(lastRun)
	case domain.FrequencyWeekly:
		return today.Sub(lastRun).Hours() >= 7*24
	case domain.FrequencyMonthly:
		if lastRun.Year() == today.Year() && lastRun.Month() == today.Month() {
			return false
		}
		// run on the template's day of month, clamped for short months
		targetDay := recurring.StartDate.Day()
		lastDayOfMonth := time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
		if targetDay > lastDayOfMonth {
			targetDay = lastDayOfMonth
		}
		return today.Day() >= targetDay
	default:
		return false
	}
}
