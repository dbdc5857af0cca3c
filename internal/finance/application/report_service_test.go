package application

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	emailService "github.com/sebuszqo/ExpenseTracker/internal/email"
	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
	"github.com/sebuszqo/ExpenseTracker/internal/finance/infrastructure"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

func reportExpense(categoryID, amount string, day time.Time) domain.Expense {
	return domain.Expense{
		UserID:     testUserID,
		CategoryID: categoryID,
		Amount:     decimal.RequireFromString(amount),
		Date:       day,
	}
}

func TestBuildMonthlyReport_AggregatesPerCategory(t *testing.T) {
	expenses := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{
		reportExpense("category-food", "60", date(2026, time.February, 3)),
		reportExpense("category-food", "40", date(2026, time.February, 20)),
		reportExpense("category-fuel", "100", date(2026, time.February, 10)),
		// outside the month, must not count
		reportExpense("category-food", "999", date(2026, time.March, 1)),
	}}
	categories := &MockCategoryService{Names: map[string]string{
		"category-food": "Food",
		"category-fuel": "Fuel",
	}}
	users := &MockUserDirectory{Recipients: map[string]*user.Recipient{
		testUserID: {Name: "john", Email: "john@example.com"},
	}}
	service := NewReportService(expenses, categories, users, &MockEmailSender{})

	report, err := service.BuildMonthlyReport(testUserID, 2026, time.February)
	assert.NoError(t, err)
	assert.Equal(t, 3, report.ExpenseCount)
	assert.True(t, report.TotalSpent.Equal(decimal.RequireFromString("200")))
	assert.Len(t, report.Categories, 2)

	// sorted by total, descending, with shares of the month's total
	for _, breakdown := range report.Categories {
		assert.Equal(t, 50.0, breakdown.Percentage)
	}
	assert.ElementsMatch(t,
		[]string{"Food", "Fuel"},
		[]string{report.Categories[0].CategoryName, report.Categories[1].CategoryName},
	)
}

func TestBuildMonthlyReport_EmptyMonth(t *testing.T) {
	service := NewReportService(
		&infrastructure.MockExpenseRepository{},
		&MockCategoryService{},
		&MockUserDirectory{},
		&MockEmailSender{},
	)

	report, err := service.BuildMonthlyReport(testUserID, 2026, time.February)
	assert.NoError(t, err)
	assert.Equal(t, 0, report.ExpenseCount)
	assert.True(t, report.TotalSpent.IsZero())
	assert.Empty(t, report.Categories)
}

func TestSendMonthlyReport_QueuesFormattedEmail(t *testing.T) {
	expenses := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{
		reportExpense("category-food", "123.456", date(2026, time.February, 3)),
	}}
	categories := &MockCategoryService{Names: map[string]string{"category-food": "Food"}}
	users := &MockUserDirectory{Recipients: map[string]*user.Recipient{
		testUserID: {Name: "john", Email: "john@example.com"},
	}}
	mailer := &MockEmailSender{}
	service := NewReportService(expenses, categories, users, mailer)

	err := service.SendMonthlyReport(testUserID, 2026, time.February)
	assert.NoError(t, err)
	assert.Len(t, mailer.Queued, 1)
	assert.Equal(t, "john@example.com", mailer.Queued[0].To)

	data, ok := mailer.Queued[0].Data.(emailService.MonthlyReportData)
	assert.True(t, ok)
	assert.Equal(t, "john", data.UserName)
	assert.Equal(t, "February", data.Month)
	assert.Equal(t, 2026, data.Year)
	assert.Equal(t, "123.46", data.TotalSpent)
	assert.Len(t, data.Categories, 1)
	assert.Equal(t, "Food", data.Categories[0].Name)
	assert.Equal(t, "100.0", data.Categories[0].Percent)
}

func TestRunMonthlyReports_SkipsUsersWithoutExpenses(t *testing.T) {
	expenses := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{
		reportExpense("category-food", "50", date(2026, time.February, 10)),
	}}
	categories := &MockCategoryService{Names: map[string]string{"category-food": "Food"}}
	users := &MockUserDirectory{
		IDs: []string{testUserID, "user-idle"},
		Recipients: map[string]*user.Recipient{
			testUserID:  {Name: "john", Email: "john@example.com"},
			"user-idle": {Name: "ann", Email: "ann@example.com"},
		},
	}
	mailer := &MockEmailSender{}
	service := NewReportService(expenses, categories, users, mailer)

	// run as if cron fired on March 1st; reports cover February
	sent, err := service.RunMonthlyReports(date(2026, time.March, 1))
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Len(t, mailer.Queued, 1)
	assert.Equal(t, "john@example.com", mailer.Queued[0].To)
}
