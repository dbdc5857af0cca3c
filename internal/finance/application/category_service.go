package application

import (
	"github.com/google/uuid"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
	financeErrors "github.com/sebuszqo/ExpenseTracker/internal/finance/errors"
)

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) CreateCategory(category *domain.Category) error {
	if category.Name == "" {
		return financeErrors.NewValidationError("Name is required")
	}
	if category.UserID == "" {
		return financeErrors.NewValidationError("User ID is required")
	}
	category.ID = uuid.NewString()
	return s.repo.Save(*category)
}

func (s *CategoryService) DoesCategoryExist(categoryID, userID string) (bool, error) {
	return s.repo.ExistsForUser(categoryID, userID)
}

func (s *CategoryService) GetCategoryName(categoryID string) (string, error) {
	category, err := s.repo.FindByID(categoryID)
	if err != nil {
		return "", err
	}
	return category.Name, nil
}

func (s *CategoryService) GetUserCategories(userID string) ([]domain.Category, error) {
	categories, err := s.repo.FindForUser(userID)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *CategoryService) DeleteCategory(categoryID, userID string) error {
	return s.repo.Delete(categoryID, userID)
}
