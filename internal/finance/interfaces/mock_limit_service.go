package interfaces

import (
	"github.com/google/uuid"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
)

type MockLimitService struct {
	Limits    []domain.Limit
	DeleteErr error
}

func (m *MockLimitService) CreateLimit(limit *domain.Limit) error {
	limit.ID = uuid.NewString()
	if limit.EndDate.IsZero() && limit.PeriodType != domain.PeriodWeekly && limit.PeriodType != domain.PeriodMonthly {
		return financeErrors.ErrInvalidPeriodType
	}
	if err := limit.Validate(); err != nil {
		return err
	}
	m.Limits = append(m.Limits, *limit)
	return nil
}

func (m *MockLimitService) GetUserLimits(userID string) ([]domain.Limit, error) {
	limits := []domain.Limit{}
	for _, limit := range m.Limits {
		if limit.UserID == userID {
			limits = append(limits, limit)
		}
	}
	return limits, nil
}

func (m *MockLimitService) DeleteLimit(limitID, userID string) error {
	return m.DeleteErr
}
