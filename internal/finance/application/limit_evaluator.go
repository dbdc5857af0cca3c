package application

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

var hundred = decimal.NewFromInt(100)

type UserDirectory interface {
	GetNotificationRecipient(userID string) (*user.Recipient, error)
}

type CategoryDirectory interface {
	GetCategoryName(categoryID string) (string, error)
}

// BreachNotifier delivers one limit breach notification. Delivery failures
// must never abort evaluation of the remaining limits.
type BreachNotifier interface {
	NotifyLimitBreach(notification LimitBreachNotification) error
}

type EvaluationRequest struct {
	UserID     string `json:"user_id"`
	CategoryID string `json:"category_id"`
}

func (r EvaluationRequest) Validate() error {
	if r.UserID == "" {
		return financeErrors.NewValidationError("User ID is required")
	}
	if r.CategoryID == "" {
		return financeErrors.NewValidationError("Category ID is required")
	}
	return nil
}

type Breach struct {
	LimitName    string          `json:"limit_name"`
	CategoryName string          `json:"category_name"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
	LimitAmount  decimal.Decimal `json:"limit_amount"`
	Percentage   float64         `json:"percentage"`
}

type EvaluationResult struct {
	LimitsEvaluated int      `json:"limits_evaluated"`
	Breaches        []Breach `json:"breaches"`
}

type LimitBreachNotification struct {
	RecipientEmail string
	RecipientName  string
	LimitName      string
	CategoryName   string
	LimitAmount    decimal.Decimal
	TotalSpent     decimal.Decimal
	Percentage     float64
	PeriodType     domain.PeriodType
}

// LimitEvaluator decides, after an expense write, whether any active limit
// for that (user, category) pair is at or over its ceiling and notifies the
// owner once per breached limit and invocation. It only ever reads; spend is
// fully re-aggregated on every call so later edits and deletes are honored.
type LimitEvaluator struct {
	limits     domain.LimitRepository
	expenses   domain.ExpenseRepository
	categories CategoryDirectory
	users      UserDirectory
	notifier   BreachNotifier
}

func NewLimitEvaluator(
	limits domain.LimitRepository,
	expenses domain.ExpenseRepository,
	categories CategoryDirectory,
	users UserDirectory,
	notifier BreachNotifier,
) *LimitEvaluator {
	return &LimitEvaluator{
		limits:     limits,
		expenses:   expenses,
		categories: categories,
		users:      users,
		notifier:   notifier,
	}
}

// EvaluateLimits runs one evaluation pass. Validation and registry/ledger
// read failures return an error; everything past that point degrades to
// "this one limit was skipped" and is logged instead.
func (s *LimitEvaluator) EvaluateLimits(req EvaluationRequest) (*EvaluationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	today := time.Now()
	limits, err := s.limits.FindActive(req.UserID, req.CategoryID, today)
	if err != nil {
		return nil, financeErrors.NewDependencyReadError("limits", err)
	}

	result := &EvaluationResult{Breaches: []Breach{}}
	for _, limit := range limits {
		if !limit.Amount.IsPositive() {
			log.Printf("Skipping unevaluable limit: %v",
				financeErrors.NewDataIntegrityError(limit.ID, "amount must be greater than zero"))
			continue
		}

		totalSpent, err := s.expenses.SumAmountInRange(req.UserID, req.CategoryID, limit.StartDate, limit.EndDate)
		if err != nil {
			return nil, financeErrors.NewDependencyReadError("expenses", err)
		}
		result.LimitsEvaluated++

		percentage := totalSpent.Div(limit.Amount).Mul(hundred)
		if percentage.LessThan(hundred) {
			continue
		}
		displayPercentage, _ := percentage.Round(1).Float64()

		categoryName, err := s.categories.GetCategoryName(limit.CategoryID)
		if err != nil {
			log.Printf("Breached limit %q kept without notification: %v",
				limit.Name, financeErrors.NewLookupError("category", limit.CategoryID, err))
			result.Breaches = append(result.Breaches, Breach{
				LimitName:    limit.Name,
				CategoryName: limit.CategoryID,
				TotalSpent:   totalSpent,
				LimitAmount:  limit.Amount,
				Percentage:   displayPercentage,
			})
			continue
		}

		result.Breaches = append(result.Breaches, Breach{
			LimitName:    limit.Name,
			CategoryName: categoryName,
			TotalSpent:   totalSpent,
			LimitAmount:  limit.Amount,
			Percentage:   displayPercentage,
		})

		recipient, err := s.users.GetNotificationRecipient(limit.UserID)
		if err != nil {
			log.Printf("Breached limit %q kept without notification: %v",
				limit.Name, financeErrors.NewLookupError("user", limit.UserID, err))
			continue
		}

		notification := LimitBreachNotification{
			RecipientEmail: recipient.Email,
			RecipientName:  recipient.Name,
			LimitName:      limit.Name,
			CategoryName:   categoryName,
			LimitAmount:    limit.Amount,
			TotalSpent:     totalSpent,
			Percentage:     displayPercentage,
			PeriodType:     limit.PeriodType,
		}
		if err := s.notifier.NotifyLimitBreach(notification); err != nil {
			log.Printf("Continuing after failed notification: %v",
				financeErrors.NewNotificationDeliveryError(recipient.Email, err))
		}
	}

	return result, nil
}
