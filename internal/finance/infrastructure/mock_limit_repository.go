package infrastructure

import (
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
)

type MockLimitRepository struct {
	Limits          []domain.Limit
	FindActiveErr   error
	FindActiveCalls int
	Saved           []domain.Limit
	Periods         map[string][2]time.Time // limitID -> recomputed [start, end]
}

func (m *MockLimitRepository) Save(limit domain.Limit) error {
	m.Saved = append(m.Saved, limit)
	m.Limits = append(m.Limits, limit)
	return nil
}

func (m *MockLimitRepository) FindActive(userID, categoryID string, day time.Time) ([]domain.Limit, error) {
	m.FindActiveCalls++
	if m.FindActiveErr != nil {
		return nil, m.FindActiveErr
	}
	var active []domain.Limit
	for _, limit := range m.Limits {
		if limit.UserID == userID && limit.CategoryID == categoryID && limit.Contains(day) {
			active = append(active, limit)
		}
	}
	return active, nil
}

func (m *MockLimitRepository) FindByUser(userID string) ([]domain.Limit, error) {
	var limits []domain.Limit
	for _, limit := range m.Limits {
		if limit.UserID == userID {
			limits = append(limits, limit)
		}
	}
	return limits, nil
}

func (m *MockLimitRepository) Delete(limitID, userID string) error {
	for i, limit := range m.Limits {
		if limit.ID == limitID && limit.UserID == userID {
			m.Limits = append(m.Limits[:i], m.Limits[i+1:]...)
			return nil
		}
	}
	return ErrLimitNotFound
}

func (m *MockLimitRepository) FindExpired(day time.Time) ([]domain.Limit, error) {
	var expired []domain.Limit
	for _, limit := range m.Limits {
		if domain.DateOnly(limit.EndDate).Before(domain.DateOnly(day)) {
			expired = append(expired, limit)
		}
	}
	return expired, nil
}

func (m *MockLimitRepository) UpdatePeriod(limitID string, startDate, endDate time.Time) error {
	if m.Periods == nil {
		m.Periods = make(map[string][2]time.Time)
	}
	for i := range m.Limits {
		if m.Limits[i].ID == limitID {
			m.Limits[i].StartDate = startDate
			m.Limits[i].EndDate = endDate
			m.Periods[limitID] = [2]time.Time{startDate, endDate}
			return nil
		}
	}
	return ErrLimitNotFound
}
