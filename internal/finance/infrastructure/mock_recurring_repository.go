package infrastructure

import (
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
)

type MockRecurringRepository struct {
	Recurrings  []domain.RecurringExpense
	FindAllErr  error
	SaveErr     error
	UpdateErr   error
	UpdatedRuns map[string]time.Time
}

func (m *MockRecurringRepository) Save(recurring domain.RecurringExpense) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Recurrings = append(m.Recurrings, recurring)
	return nil
}

func (m *MockRecurringRepository) FindByUser(userID string) ([]domain.RecurringExpense, error) {
	var filtered []domain.RecurringExpense
	for _, recurring := range m.Recurrings {
		if recurring.UserID == userID {
			filtered = append(filtered, recurring)
		}
	}
	return filtered, nil
}

func (m *MockRecurringRepository) FindAll() ([]domain.RecurringExpense, error) {
	if m.FindAllErr != nil {
		return nil, m.FindAllErr
	}
	return m.Recurrings, nil
}

func (m *MockRecurringRepository) UpdateLastRun(recurringID string, lastRun time.Time) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if m.UpdatedRuns == nil {
		m.UpdatedRuns = make(map[string]time.Time)
	}
	for i := range m.Recurrings {
		if m.Recurrings[i].ID == recurringID {
			m.Recurrings[i].LastRun = lastRun
			m.UpdatedRuns[recurringID] = lastRun
			return nil
		}
	}
	return ErrRecurringNotFound
}

func (m *MockRecurringRepository) Delete(recurringID, userID string) error {
	for i, recurring := range m.Recurrings {
		if recurring.ID == recurringID && recurring.UserID == userID {
			m.Recurrings = append(m.Recurrings[:i], m.Recurrings[i+1:]...)
			return nil
		}
	}
	return ErrRecurringNotFound
}
