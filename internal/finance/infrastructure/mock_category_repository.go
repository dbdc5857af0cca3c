package infrastructure

import (
	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
)

type MockCategoryRepository struct {
	Categories []domain.Category
	FindErr    error
}

func (m *MockCategoryRepository) Save(category domain.Category) error {
	m.Categories = append(m.Categories, category)
	return nil
}

func (m *MockCategoryRepository) FindByID(categoryID string) (*domain.Category, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for i := range m.Categories {
		if m.Categories[i].ID == categoryID {
			return &m.Categories[i], nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (m *MockCategoryRepository) FindForUser(userID string) ([]domain.Category, error) {
	var categories []domain.Category
	for _, category := range m.Categories {
		if category.UserID == userID || category.IsPredefined() {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (m *MockCategoryRepository) ExistsForUser(categoryID, userID string) (bool, error) {
	for _, category := range m.Categories {
		if category.ID == categoryID && (category.UserID == userID || category.IsPredefined()) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockCategoryRepository) Delete(categoryID, userID string) error {
	for i, category := range m.Categories {
		if category.ID == categoryID && category.UserID == userID {
			m.Categories = append(m.Categories[:i], m.Categories[i+1:]...)
			return nil
		}
	}
	return ErrCategoryNotFound
}
