package application

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
)

type LimitService struct {
	repo            domain.LimitRepository
	categoryService CategoryServiceInterface
}

func NewLimitService(repo domain.LimitRepository, categoryService CategoryServiceInterface) *LimitService {
	return &LimitService{repo: repo, categoryService: categoryService}
}

// CreateLimit stores a new limit. When no end date is given it is derived
// from the start date and the period type.
func (s *LimitService) CreateLimit(limit *domain.Limit) error {
	limit.ID = uuid.NewString()
	if limit.EndDate.IsZero() && !limit.StartDate.IsZero() {
		if limit.PeriodType != domain.PeriodWeekly && limit.PeriodType != domain.PeriodMonthly {
			return financeErrors.ErrInvalidPeriodType
		}
		limit.EndDate = periodEnd(domain.DateOnly(limit.StartDate), limit.PeriodType)
	}
	if err := limit.Validate(); err != nil {
		return err
	}

	exists, err := s.categoryService.DoesCategoryExist(limit.CategoryID, limit.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return financeErrors.ErrInvalidCategory
	}

	return s.repo.Save(*limit)
}

func (s *LimitService) GetUserLimits(userID string) ([]domain.Limit, error) {
	limits, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if limits == nil {
		return []domain.Limit{}, nil
	}
	return limits, nil
}

func (s *LimitService) DeleteLimit(limitID, userID string) error {
	return s.repo.Delete(limitID, userID)
}

// RolloverExpiredLimits advances every limit whose period has ended to the
// period containing today, preserving the period length and phase. Run on a
// schedule; a failure on one limit does not stop the others.
func (s *LimitService) RolloverExpiredLimits(now time.Time) (int, error) {
	today := domain.DateOnly(now)
	expired, err := s.repo.FindExpired(today)
	if err != nil {
		return 0, fmt.Errorf("find expired limits: %w", err)
	}

	rolled := 0
	for _, limit := range expired {
		start := domain.DateOnly(limit.StartDate)
		end := domain.DateOnly(limit.EndDate)
		for end.Before(today) {
			start = end.AddDate(0, 0, 1)
			end = periodEnd(start, limit.PeriodType)
		}
		if err := s.repo.UpdatePeriod(limit.ID, start, end); err != nil {
			log.Printf("Failed to roll over limit %s: %v", limit.ID, err)
			continue
		}
		rolled++
	}
	return rolled, nil
}

// periodEnd returns the inclusive last day of a period starting at start.
func periodEnd(start time.Time, periodType domain.PeriodType) time.Time {
	if periodType == domain.PeriodWeekly {
		return start.AddDate(0, 0, 6)
	}
	return addMonthClamped(start).AddDate(0, 0, -1)
}

// addMonthClamped moves to the same day of the next month, clamped to that
// month's last day, so a Jan 31 start does not overshoot into March.
func addMonthClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	firstOfNext := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	lastDay := firstOfNext.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), day, 0, 0, 0, 0, time.UTC)
}
