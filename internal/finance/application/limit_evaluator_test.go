package application

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/finance/infrastructure"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

const (
	testUserID     = "user-1"
	testCategoryID = "category-groceries"
)

// currentLimit builds a limit whose period contains today.
func currentLimit(id, name, amount string) domain.Limit {
	today := domain.DateOnly(time.Now())
	return domain.Limit{
		ID:         id,
		UserID:     testUserID,
		CategoryID: testCategoryID,
		Name:       name,
		Amount:     decimal.RequireFromString(amount),
		PeriodType: domain.PeriodMonthly,
		StartDate:  today.AddDate(0, 0, -10),
		EndDate:    today.AddDate(0, 0, 10),
	}
}

func currentExpense(amount string) domain.Expense {
	return domain.Expense{
		UserID:     testUserID,
		CategoryID: testCategoryID,
		Amount:     decimal.RequireFromString(amount),
		Date:       domain.DateOnly(time.Now()),
	}
}

func newTestEvaluator(
	limits *infrastructure.MockLimitRepository,
	expenses *infrastructure.MockExpenseRepository,
) (*LimitEvaluator, *MockBreachNotifier) {
	categories := &MockCategoryService{Names: map[string]string{testCategoryID: "Groceries"}}
	users := &MockUserDirectory{Recipients: map[string]*user.Recipient{
		testUserID: {Name: "john", Email: "john@example.com"},
	}}
	notifier := &MockBreachNotifier{}
	return NewLimitEvaluator(limits, expenses, categories, users, notifier), notifier
}

func TestEvaluateLimits_BreachedLimitNotifiesOnce(t *testing.T) {
	limits := &infrastructure.MockLimitRepository{Limits: []domain.Limit{
		currentLimit("limit-1", "Groceries monthly", "100"),
	}}
	expenses := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{
		currentExpense("80"),
		currentExpense("25"),
	}}
	evaluator, notifier := newTestEvaluator(limits, expenses)

	result, err := evaluator.EvaluateLimits(EvaluationRequest{UserID: testUserID, CategoryID: testCategoryID})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.LimitsEvaluated)
	assert.Len(t, result.Breaches, 1)

	breach := result.Breaches[0]
	assert.Equal(t, "Groceries monthly", breach.LimitName)
	assert.Equal(t, "Groceries", breach.CategoryName)
	assert.True(t, breach.TotalSpent.Equal(decimal.RequireFromString("105")))
	assert.Equal(t, 105.0, breach.Percentage)

	assert.Len(t, notifier.Attempts, 1)
	assert.Equal(t, "john@example.com", notifier.Attempts[0].RecipientEmail)
	assert.Equal(t, 105.0, notifier.Attempts[0].Percentage)
}

func TestEvaluateLimits_UnderLimitDoesNotNotify(t *testing.T) {
	limits := &infrastructure.MockLimitRepository{Limits: []domain.Limit{
		currentLimit("limit-1", "Groceries monthly", "100"),
	}}
	expenses := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{
		currentExpense("99.99"),
	}}
	evaluator, notifier := newTestEvaluator(limits, expenses)

	result, err := evaluator.EvaluateLimits(EvaluationRequest{UserID: testUserID, CategoryID: testCategoryID})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.LimitsEvaluated)
	assert.Empty(t, result.Breaches)
	assert.Empty(t, notifier.Attempts)
}

func TestEvaluateLimits_ExactlyAtLimitNotifies(t *testing.T) {
	limits := &infrastructure.MockLimitRepository{Limits: []domain.Limit{
		currentLimit("limit-1", "Groceries monthly", "100"),
	}}
	expenses := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{
		currentExpense("100"),
	}}
	evaluator, notifier := newTestEvaluator(limits, expenses)

	result, err := evaluator.EvaluateLimits(EvaluationRequest{UserID: testUserID, CategoryID: testCategoryID})
	assert.NoError(t, err)
	assert.Len(t, result.Breaches, 1)
	assert.Equal(t, 100.0, result.Breaches[0].Percentage)
	assert.Len(t, notifier.Attempts, 1)
}

func TestEvaluateLimits_OutOfPeriodLimitIgnored(t *testing.T) {
	today := domain.DateOnly(time.Now())
	expired := currentLimit("limit-old", "Groceries last month", "10")
	expired.StartDate = today.AddDate(0, -2, 0)
	expired.EndDate = today.AddDate(0, -1, 0)

	limits := &infrastructure.MockLimitRepository{Limits: []domain.Limit{
		expired,
		currentLimit("limit-1", "Groceries monthly", "500"),
	}}
	expenses := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{
		currentExpense("50"),
	}}
	evaluator, notifier := newTestEvaluator(limits, expenses)

	result, err := evaluator.EvaluateLimits(EvaluationRequest{UserID: testUserID, CategoryID: testCategoryID})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.LimitsEvaluated, "only the limit whose period contains today should be evaluated")
	assert.Empty(t, result.Breaches)
	assert.Empty(t, notifier.Attempts)
}

func TestEvaluateLimits_OverlappingLimitsEvaluatedIndependently(t *testing.T) {
	limits := &infrastructure.MockLimitRepository{Limits: []domain.Limit{
		currentLimit("limit-1", "Tight weekly", "50"),
		currentLimit("limit-2", "Loose monthly", "500"),
	}}
	expenses := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{
		currentExpense("60"),
	}}
	evaluator, notifier := newTestEvaluator(limits, expenses)

	result, err := evaluator.EvaluateLimits(EvaluationRequest{UserID: testUserID, CategoryID: testCategoryID})
	assert.NoError(t, err)
	assert.Equal(t, 2, result.LimitsEvaluated)
	assert.Len(t, result.Breaches, 1)
	assert.Equal(t, "Tight weekly", result.Breaches[0].LimitName)
	assert.Equal(t, 120.0, result.Breaches[0].Percentage)
	assert.Len(t, notifier.Attempts, 1)
}

func TestEvaluateLimits_RepeatedEvaluationIsIdempotent(t *testing.T) {
	limits := &infrastructure.MockLimitRepository{Limits: []domain.Limit{
		currentLimit("limit-1", "Groceries monthly", "100"),
	}}
	expenses := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{
		currentExpense("105"),
	}}
	evaluator, notifier := newTestEvaluator(limits, expenses)

	request := EvaluationRequest{UserID: testUserID, CategoryID: testCategoryID}
	first, err := evaluator.EvaluateLimits(request)
	assert.NoError(t, err)
	second, err := evaluator.EvaluateLimits(request)
	assert.NoError(t, err)

	assert.Equal(t, first, second, "re-running without new expenses must produce the same result")
	// every invocation over a breached limit notifies again
	assert.Len(t, notifier.Attempts, 2)
}

func TestEvaluateLimits_MissingInputFailsBeforeAnyRead(t *testing.T) {
	limits := &infrastructure.MockLimitRepository{}
	expenses := &infrastructure.MockExpenseRepository{}
	evaluator, notifier := newTestEvaluator(limits, expenses)

	result, err := evaluator.EvaluateLimits(EvaluationRequest{CategoryID: testCategoryID})
	assert.Nil(t, result)
	assert.True(t, financeErrors.IsValidationError(err))

	result, err = evaluator.EvaluateLimits(EvaluationRequest{UserID: testUserID})
	assert.Nil(t, result)
	assert.True(t, financeErrors.IsValidationError(err))

	assert.Equal(t, 0, limits.FindActiveCalls, "validation failure must not touch the limit registry")
	assert.Equal(t, 0, expenses.SumCalls, "validation failure must not touch the expense ledger")
	assert.Empty(t, notifier.Attempts)
}

func TestEvaluateLimits_LimitReadFailureIsDependencyError(t *testing.T) {
	limits := &infrastructure.MockLimitRepository{FindActiveErr: errors.New("connection refused")}
	expenses := &infrastructure.MockExpenseRepository{}
	evaluator, _ := newTestEvaluator(limits, expenses)

	result, err := evaluator.EvaluateLimits(EvaluationRequest{UserID: testUserID, CategoryID: testCategoryID})
	assert.Nil(t, result)
	assert.True(t, financeErrors.IsDependencyReadError(err))
}

func TestEvaluateLimits_ExpenseSumFailureIsDependencyError(t *testing.T) {
	limits := &infrastructure.MockLimitRepository{Limits: []domain.Limit{
		currentLimit("limit-1", "Groceries monthly", "100"),
	}}
	expenses := &infrastructure.MockExpenseRepository{SumErr: errors.New("connection refused")}
	evaluator, notifier := newTestEvaluator(limits, expenses)

	result, err := evaluator.EvaluateLimits(EvaluationRequest{UserID: testUserID, CategoryID: testCategoryID})
	assert.Nil(t, result)
	assert.True(t, financeErrors.IsDependencyReadError(err))
	assert.Empty(t, notifier.Attempts)
}

func TestEvaluateLimits_NoActiveLimits(t *testing.T) {
	limits := &infrastructure.MockLimitRepository{}
	expenses := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{
		currentExpense("999"),
	}}
	evaluator, notifier := newTestEvaluator(limits, expenses)

	result, err := evaluator.EvaluateLimits(EvaluationRequest{UserID: testUserID, CategoryID: testCategoryID})
	assert.NoError(t, err)
	assert.Equal(t, 0, result.LimitsEvaluated)
	assert.NotNil(t, result.Breaches)
	assert.Empty(t, result.Breaches)
	assert.Empty(t, notifier.Attempts)
}

func TestEvaluateLimits_ZeroAmountLimitSkippedOthersStillRun(t *testing.T) {
	broken := currentLimit("limit-broken", "Broken", "1")
	broken.Amount = decimal.Zero

	limits := &infrastructure.MockLimitRepository{Limits: []domain.Limit{
		broken,
		currentLimit("limit-1", "Groceries monthly", "100"),
	}}
	expenses := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{
		currentExpense("150"),
	}}
	evaluator, notifier := newTestEvaluator(limits, expenses)

	result, err := evaluator.EvaluateLimits(EvaluationRequest{UserID: testUserID, CategoryID: testCategoryID})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.LimitsEvaluated, "unevaluable limit must not count as evaluated")
	assert.Len(t, result.Breaches, 1)
	assert.Equal(t, "Groceries monthly", result.Breaches[0].LimitName)
	assert.Len(t, notifier.Attempts, 1)
}

func TestEvaluateLimits_NotifierFailureDoesNotBlockRemainingLimits(t *testing.T) {
	limits := &infrastructure.MockLimitRepository{Limits: []domain.Limit{
		currentLimit("limit-1", "First", "50"),
		currentLimit("limit-2", "Second", "60"),
	}}
	expenses := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{
		currentExpense("70"),
	}}
	evaluator, notifier := newTestEvaluator(limits, expenses)
	notifier.FailFor = map[string]error{"First": errors.New("smtp: 550 mailbox unavailable")}

	result, err := evaluator.EvaluateLimits(EvaluationRequest{UserID: testUserID, CategoryID: testCategoryID})
	assert.NoError(t, err, "a delivery failure must not fail the evaluation")
	assert.Equal(t, 2, result.LimitsEvaluated)
	assert.Len(t, result.Breaches, 2)
	assert.Len(t, notifier.Attempts, 2, "the second limit must still get its delivery attempt")
	assert.Equal(t, "First", notifier.Attempts[0].LimitName)
	assert.Equal(t, "Second", notifier.Attempts[1].LimitName)
}

func TestEvaluateLimits_UserLookupFailureKeepsBreachSkipsNotification(t *testing.T) {
	limits := &infrastructure.MockLimitRepository{Limits: []domain.Limit{
		currentLimit("limit-1", "Groceries monthly", "100"),
	}}
	expenses := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{
		currentExpense("120"),
	}}
	categories := &MockCategoryService{Names: map[string]string{testCategoryID: "Groceries"}}
	users := &MockUserDirectory{Recipients: map[string]*user.Recipient{}}
	notifier := &MockBreachNotifier{}
	evaluator := NewLimitEvaluator(limits, expenses, categories, users, notifier)

	result, err := evaluator.EvaluateLimits(EvaluationRequest{UserID: testUserID, CategoryID: testCategoryID})
	assert.NoError(t, err)
	assert.Len(t, result.Breaches, 1)
	assert.Empty(t, notifier.Attempts)
}

func TestEvaluateLimits_CategoryLookupFailureFallsBackToRawID(t *testing.T) {
	limits := &infrastructure.MockLimitRepository{Limits: []domain.Limit{
		currentLimit("limit-1", "Groceries monthly", "100"),
	}}
	expenses := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{
		currentExpense("120"),
	}}
	categories := &MockCategoryService{Names: map[string]string{}}
	users := &MockUserDirectory{Recipients: map[string]*user.Recipient{
		testUserID: {Name: "john", Email: "john@example.com"},
	}}
	notifier := &MockBreachNotifier{}
	evaluator := NewLimitEvaluator(limits, expenses, categories, users, notifier)

	result, err := evaluator.EvaluateLimits(EvaluationRequest{UserID: testUserID, CategoryID: testCategoryID})
	assert.NoError(t, err)
	assert.Len(t, result.Breaches, 1)
	assert.Equal(t, testCategoryID, result.Breaches[0].CategoryName)
	assert.Empty(t, notifier.Attempts, "a breach without a resolvable category is kept but not mailed")
}

func TestEvaluateLimits_PercentageRoundedToOneDecimal(t *testing.T) {
	limits := &infrastructure.MockLimitRepository{Limits: []domain.Limit{
		currentLimit("limit-1", "Groceries monthly", "30"),
	}}
	expenses := &infrastructure.MockExpenseRepository{Expenses: []domain.Expense{
		currentExpense("40"),
	}}
	evaluator, _ := newTestEvaluator(limits, expenses)

	result, err := evaluator.EvaluateLimits(EvaluationRequest{UserID: testUserID, CategoryID: testCategoryID})
	assert.NoError(t, err)
	assert.Len(t, result.Breaches, 1)
	assert.Equal(t, 133.3, result.Breaches[0].Percentage)
}
