package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// RecurringExpense is a template from which concrete expenses are created on
// a schedule. LastRun is the date of the most recent materialization, zero if
// it never ran.
type RecurringExpense struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	CategoryID  string          `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Frequency   Frequency       `json:"frequency"`
	StartDate   time.Time       `json:"start_date"`
	LastRun     time.Time       `json:"last_run,omitempty"`
}

type RecurringExpenseRepository interface {
	Save(recurring RecurringExpense) error
	FindByUser(userID string) ([]RecurringExpense, error)
	FindAll() ([]RecurringExpense, error)
	UpdateLastRun(recurringID string, lastRun time.Time) error
	Delete(recurringID, userID string) error
}

func (r *RecurringExpense) Validate() error {
	if r.UserID == "" {
		return errors.NewValidationError("User ID is required")
	}
	if r.CategoryID == "" {
		return errors.NewValidationError("Category ID is required")
	}
	if !r.Amount.IsPositive() {
		return errors.NewValidationError("Amount must be greater than zero")
	}
	if r.Description == "" {
		return errors.NewValidationError("Description is required")
	}
	switch r.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return errors.NewValidationError("Frequency must be 'daily', 'weekly' or 'monthly'")
	}
	if r.StartDate.IsZero() {
		return errors.NewValidationError("Start date is required")
	}
	return nil
}
