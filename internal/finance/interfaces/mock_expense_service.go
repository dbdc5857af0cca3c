package interfaces

import (
	"time"

	"github.com/google/uuid"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
)

// MockExpenseService validates like the real service but keeps everything
// in memory.
type MockExpenseService struct {
	Expenses        []domain.Expense
	Created         []domain.Expense
	DeleteErr       error
	KnownCategories map[string]bool
}

func (m *MockExpenseService) CreateExpense(expense *domain.Expense) error {
	expense.ID = uuid.NewString()
	if expense.Date.IsZero() {
		expense.Date = domain.DateOnly(time.Now())
	}
	if err := expense.Validate(); err != nil {
		return err
	}
	if m.KnownCategories != nil && !m.KnownCategories[expense.CategoryID] {
		return financeErrors.ErrInvalidCategory
	}
	m.Created = append(m.Created, *expense)
	m.Expenses = append(m.Expenses, *expense)
	return nil
}

func (m *MockExpenseService) GetUserExpenses(userID string, startDate, endDate time.Time) ([]domain.Expense, error) {
	expenses := []domain.Expense{}
	for _, expense := range m.Expenses {
		if expense.UserID == userID {
			expenses = append(expenses, expense)
		}
	}
	return expenses, nil
}

func (m *MockExpenseService) DeleteExpense(expenseID, userID string) error {
	return m.DeleteErr
}
