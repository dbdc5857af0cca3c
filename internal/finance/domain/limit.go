package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
)

type PeriodType string

const (
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
)

// Limit is a user-defined spending ceiling for one category over a closed,
// inclusive date range. Overlapping limits for the same category are allowed
// and evaluated independently of each other.
type Limit struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	CategoryID string          `json:"category_id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	PeriodType PeriodType      `json:"period_type"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
}

type LimitRepository interface {
	Save(limit Limit) error
	// FindActive returns the limits for (userID, categoryID) whose inclusive
	// [StartDate, EndDate] range contains day.
	FindActive(userID, categoryID string, day time.Time) ([]Limit, error)
	FindByUser(userID string) ([]Limit, error)
	Delete(limitID, userID string) error
	// FindExpired returns limits whose EndDate lies strictly before day.
	FindExpired(day time.Time) ([]Limit, error)
	UpdatePeriod(limitID string, startDate, endDate time.Time) error
}

func (l *Limit) Validate() error {
	if l.UserID == "" {
		return errors.NewValidationError("User ID is required")
	}
	if l.CategoryID == "" {
		return errors.NewValidationError("Category ID is required")
	}
	if l.Name == "" {
		return errors.NewValidationError("Name is required")
	}
	if !l.Amount.IsPositive() {
		return errors.NewValidationError("Amount must be greater than zero")
	}
	if l.PeriodType != PeriodWeekly && l.PeriodType != PeriodMonthly {
		return errors.ErrInvalidPeriodType
	}
	if l.StartDate.IsZero() || l.EndDate.IsZero() {
		return errors.NewValidationError("Start and end dates are required")
	}
	if l.EndDate.Before(l.StartDate) {
		return errors.NewValidationError("End date must not be before start date")
	}
	return nil
}

// Contains reports whether day falls inside the limit's inclusive period.
// Only the calendar date matters, not the time of day.
func (l *Limit) Contains(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(l.StartDate)) && !d.After(DateOnly(l.EndDate))
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	year, month, dayOfMonth := t.Date()
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}
