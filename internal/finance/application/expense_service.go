package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
)

type CategoryServiceInterface interface {
	DoesCategoryExist(categoryID, userID string) (bool, error)
	GetCategoryName(categoryID string) (string, error)
	GetUserCategories(userID string) ([]domain.Category, error)
}

type ExpenseService struct {
	repo            domain.ExpenseRepository
	categoryService CategoryServiceInterface
	dispatcher      EvaluationDispatcher
}

func NewExpenseService(repo domain.ExpenseRepository, categoryService CategoryServiceInterface, dispatcher EvaluationDispatcher) *ExpenseService {
	return &ExpenseService{repo: repo, categoryService: categoryService, dispatcher: dispatcher}
}

// CreateExpense stores the expense and then dispatches limit evaluation.
// The dispatch happens strictly after the write commits and can never fail
// or delay the creation itself.
func (s *ExpenseService) CreateExpense(expense *domain.Expense) error {
	expense.ID = uuid.NewString()
	for i := range expense.Products {
		expense.Products[i].ID = uuid.NewString()
	}
	if expense.Date.IsZero() {
		expense.Date = domain.DateOnly(time.Now())
	}
	if err := expense.Validate(); err != nil {
		return err
	}

	exists, err := s.categoryService.DoesCategoryExist(expense.CategoryID, expense.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return financeErrors.ErrInvalidCategory
	}

	if err := s.repo.Save(*expense); err != nil {
		return err
	}

	if s.dispatcher != nil {
		s.dispatcher.DispatchEvaluation(expense.UserID, expense.CategoryID, expense.ID)
	}
	return nil
}

func (s *ExpenseService) GetUserExpenses(userID string, startDate, endDate time.Time) ([]domain.Expense, error) {
	expenses, err := s.repo.FindByUser(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

func (s *ExpenseService) DeleteExpense(expenseID, userID string) error {
	return s.repo.Delete(expenseID, userID)
}
