package application

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/finance/infrastructure"
)

func TestDueForRun(t *testing.T) {
	now := date(2026, time.March, 15)
	cases := []struct {
		name      string
		frequency domain.Frequency
		startDate time.Time
		lastRun   time.Time
		expected  bool
	}{
		{"never ran and started", domain.FrequencyDaily, date(2026, time.March, 1), time.Time{}, true},
		{"not started yet", domain.FrequencyDaily, date(2026, time.April, 1), time.Time{}, false},
		{"daily ran today", domain.FrequencyDaily, date(2026, time.March, 1), date(2026, time.March, 15), false},
		{"daily ran yesterday", domain.FrequencyDaily, date(2026, time.March, 1), date(2026, time.March, 14), true},
		{"weekly ran three days ago", domain.FrequencyWeekly, date(2026, time.March, 1), date(2026, time.March, 12), false},
		{"weekly ran seven days ago", domain.FrequencyWeekly, date(2026, time.March, 1), date(2026, time.March, 8), true},
		{"monthly ran this month", domain.FrequencyMonthly, date(2026, time.January, 15), date(2026, time.March, 2), false},
		{"monthly due on target day", domain.FrequencyMonthly, date(2026, time.January, 15), date(2026, time.February, 15), true},
		{"monthly before target day", domain.FrequencyMonthly, date(2026, time.January, 20), date(2026, time.February, 20), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recurring := domain.RecurringExpense{
				Frequency: tc.frequency,
				StartDate: tc.startDate,
				LastRun:   tc.lastRun,
			}
			assert.Equal(t, tc.expected, dueForRun(recurring, now))
		})
	}
}

func TestDueForRun_MonthlyClampedToShortMonth(t *testing.T) {
	// template targets the 31st; February runs on its last day instead
	recurring := domain.RecurringExpense{
		Frequency: domain.FrequencyMonthly,
		StartDate: date(2026, time.January, 31),
		LastRun:   date(2026, time.January, 31),
	}
	assert.False(t, dueForRun(recurring, date(2026, time.February, 27)))
	assert.True(t, dueForRun(recurring, date(2026, time.February, 28)))
}

func TestProcessDueExpenses_MaterializesAndDispatches(t *testing.T) {
	now := date(2026, time.March, 15)
	recurringRepo := &infrastructure.MockRecurringRepository{Recurrings: []domain.RecurringExpense{
		{
			ID:          "recurring-rent",
			UserID:      testUserID,
			CategoryID:  testCategoryID,
			Amount:      decimal.RequireFromString("1200"),
			Description: "rent",
			Frequency:   domain.FrequencyMonthly,
			StartDate:   date(2026, time.January, 1),
			LastRun:     date(2026, time.February, 1),
		},
		{
			ID:          "recurring-future",
			UserID:      testUserID,
			CategoryID:  testCategoryID,
			Amount:      decimal.RequireFromString("10"),
			Description: "not started",
			Frequency:   domain.FrequencyDaily,
			StartDate:   date(2026, time.April, 1),
		},
	}}

	expenseRepo := &infrastructure.MockExpenseRepository{}
	dispatcher := &MockDispatcher{}
	categoryService := &MockCategoryService{Exists: true}
	expenseService := NewExpenseService(expenseRepo, categoryService, dispatcher)
	service := NewRecurringExpenseService(recurringRepo, expenseService, categoryService)

	processed, err := service.ProcessDueExpenses(now)
	assert.NoError(t, err)
	assert.Equal(t, 1, processed)

	assert.Len(t, expenseRepo.Saved, 1)
	created := expenseRepo.Saved[0]
	assert.Equal(t, "rent", created.Description)
	assert.True(t, created.Amount.Equal(decimal.RequireFromString("1200")))
	assert.Equal(t, domain.DateOnly(now), created.Date)

	// materialized expenses go through the normal create path and so
	// trigger limit evaluation like any manual expense
	assert.Len(t, dispatcher.Dispatched, 1)

	assert.Equal(t, domain.DateOnly(now), recurringRepo.UpdatedRuns["recurring-rent"])
	_, ran := recurringRepo.UpdatedRuns["recurring-future"]
	assert.False(t, ran)
}

func TestProcessDueExpenses_BrokenTemplateDoesNotStopOthers(t *testing.T) {
	now := date(2026, time.March, 15)
	recurringRepo := &infrastructure.MockRecurringRepository{Recurrings: []domain.RecurringExpense{
		{
			ID:          "recurring-broken",
			UserID:      testUserID,
			CategoryID:  "category-missing",
			Amount:      decimal.RequireFromString("5"),
			Description: "orphaned category",
			Frequency:   domain.FrequencyDaily,
			StartDate:   date(2026, time.January, 1),
		},
		{
			ID:          "recurring-ok",
			UserID:      testUserID,
			CategoryID:  testCategoryID,
			Amount:      decimal.RequireFromString("9.99"),
			Description: "streaming",
			Frequency:   domain.FrequencyDaily,
			StartDate:   date(2026, time.January, 1),
		},
	}}

	expenseRepo := &infrastructure.MockExpenseRepository{}
	categoryService := &MockCategoryService{Exists: true, Missing: map[string]bool{"category-missing": true}}
	expenseService := NewExpenseService(expenseRepo, categoryService, &MockDispatcher{})
	service := NewRecurringExpenseService(recurringRepo, expenseService, categoryService)

	processed, err := service.ProcessDueExpenses(now)
	assert.NoError(t, err)
	assert.Equal(t, 1, processed, "the broken template is skipped, the healthy one still runs")
	assert.Len(t, expenseRepo.Saved, 1)
	assert.Equal(t, "streaming", expenseRepo.Saved[0].Description)
}

func TestCreateRecurringExpense_Validates(t *testing.T) {
	repo := &infrastructure.MockRecurringRepository{}
	categoryService := &MockCategoryService{Exists: true}
	expenseService := NewExpenseService(&infrastructure.MockExpenseRepository{}, categoryService, nil)
	service := NewRecurringExpenseService(repo, expenseService, categoryService)

	err := service.CreateRecurringExpense(&domain.RecurringExpense{
		UserID:      testUserID,
		CategoryID:  testCategoryID,
		Amount:      decimal.RequireFromString("9.99"),
		Description: "streaming",
		Frequency:   "fortnightly",
		StartDate:   date(2026, time.March, 1),
	})
	assert.True(t, financeErrors.IsValidationError(err))
	assert.Empty(t, repo.Recurrings)
}
