package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
)

type ExpenseRepository interface {
	Save(expense Expense) error
	FindByUser(userID string, startDate, endDate time.Time) ([]Expense, error)
	FindByID(expenseID string) (*Expense, error)
	Delete(expenseID, userID string) error
	SumAmountInRange(userID, categoryID string, startDate, endDate time.Time) (decimal.Decimal, error)
}

type Expense struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	CategoryID  string          `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Products    []Product       `json:"products,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Product is one itemized position of an expense.
type Product struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

func (e *Expense) Validate() error {
	if e.UserID == "" {
		return errors.NewValidationError("User ID is required")
	}
	if e.CategoryID == "" {
		return errors.NewValidationError("Category ID is required")
	}
	if !e.Amount.IsPositive() {
		return errors.NewValidationError("Amount must be greater than zero")
	}
	if e.Date.IsZero() {
		return errors.NewValidationError("Date is required")
	}
	if len(e.Description) > 200 {
		return errors.NewValidationError("Description must be of length less than 200")
	}
	if len(e.Products) > 0 {
		sum := decimal.Zero
		for _, product := range e.Products {
			if product.Name == "" {
				return errors.NewValidationError("Product name is required")
			}
			if !product.Amount.IsPositive() {
				return errors.NewValidationError("Product amount must be greater than zero")
			}
			sum = sum.Add(product.Amount)
		}
		if !sum.Equal(e.Amount) {
			return errors.NewValidationError("Product amounts must sum to the expense amount")
		}
	}
	return nil
}
