package infrastructure

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
)

type MockExpenseRepository struct {
	Expenses []domain.Expense
	SumErr   error
	SumCalls int
	Saved    []domain.Expense
	SaveErr  error
}

func (m *MockExpenseRepository) Save(expense domain.Expense) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = append(m.Saved, expense)
	m.Expenses = append(m.Expenses, expense)
	return nil
}

func (m *MockExpenseRepository) FindByUser(userID string, startDate, endDate time.Time) ([]domain.Expense, error) {
	var filtered []domain.Expense
	for _, expense := range m.Expenses {
		if expense.UserID != userID {
			continue
		}
		day := domain.DateOnly(expense.Date)
		if day.Before(domain.DateOnly(startDate)) || day.After(domain.DateOnly(endDate)) {
			continue
		}
		filtered = append(filtered, expense)
	}
	return filtered, nil
}

func (m *MockExpenseRepository) FindByID(expenseID string) (*domain.Expense, error) {
	for i := range m.Expenses {
		if m.Expenses[i].ID == expenseID {
			return &m.Expenses[i], nil
		}
	}
	return nil, ErrExpenseNotFound
}

func (m *MockExpenseRepository) Delete(expenseID, userID string) error {
	for i, expense := range m.Expenses {
		if expense.ID == expenseID && expense.UserID == userID {
			m.Expenses = append(m.Expenses[:i], m.Expenses[i+1:]...)
			return nil
		}
	}
	return ErrExpenseNotFound
}

func (m *MockExpenseRepository) SumAmountInRange(userID, categoryID string, startDate, endDate time.Time) (decimal.Decimal, error) {
	m.SumCalls++
	if m.SumErr != nil {
		return decimal.Zero, m.SumErr
	}
	total := decimal.Zero
	for _, expense := range m.Expenses {
		if expense.UserID != userID || expense.CategoryID != categoryID {
			continue
		}
		day := domain.DateOnly(expense.Date)
		if day.Before(domain.DateOnly(startDate)) || day.After(domain.DateOnly(endDate)) {
			continue
		}
		total = total.Add(expense.Amount)
	}
	return total, nil
}
