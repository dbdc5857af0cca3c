package application

import (
	"errors"

	emailService "github.com/sebuszqo/ExpenseTracker/internal/email"
	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

var errCategoryNameUnknown = errors.New("category name unknown")

// MockCategoryService satisfies both CategoryServiceInterface and
// CategoryDirectory for service tests.
type MockCategoryService struct {
	Names      map[string]string
	Categories []domain.Category
	Exists     bool
	Missing    map[string]bool
	ExistsErr  error
	NameErr    error
}

func (m *MockCategoryService) DoesCategoryExist(categoryID, userID string) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	if m.Missing[categoryID] {
		return false, nil
	}
	return m.Exists, nil
}

func (m *MockCategoryService) GetCategoryName(categoryID string) (string, error) {
	if m.NameErr != nil {
		return "", m.NameErr
	}
	if name, ok := m.Names[categoryID]; ok {
		return name, nil
	}
	return "", errCategoryNameUnknown
}

func (m *MockCategoryService) GetUserCategories(userID string) ([]domain.Category, error) {
	return m.Categories, nil
}

type MockUserDirectory struct {
	Recipients map[string]*user.Recipient
	Err        error
	IDs        []string
	ListErr    error
}

func (m *MockUserDirectory) GetNotificationRecipient(userID string) (*user.Recipient, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if recipient, ok := m.Recipients[userID]; ok {
		return recipient, nil
	}
	return nil, user.ErrUserNotFound
}

func (m *MockUserDirectory) ListUserIDs() ([]string, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.IDs, nil
}

// MockBreachNotifier records every delivery attempt. FailFor maps a limit
// name to the error its delivery should return.
type MockBreachNotifier struct {
	Attempts []LimitBreachNotification
	FailFor  map[string]error
}

func (m *MockBreachNotifier) NotifyLimitBreach(notification LimitBreachNotification) error {
	m.Attempts = append(m.Attempts, notification)
	if err, ok := m.FailFor[notification.LimitName]; ok {
		return err
	}
	return nil
}

type DispatchedEvaluation struct {
	UserID     string
	CategoryID string
	ExpenseID  string
}

type MockDispatcher struct {
	Dispatched []DispatchedEvaluation
}

func (m *MockDispatcher) DispatchEvaluation(userID, categoryID, expenseID string) {
	m.Dispatched = append(m.Dispatched, DispatchedEvaluation{userID, categoryID, expenseID})
}

type QueuedEmail struct {
	To   string
	Data emailService.EmailData
}

type MockEmailSender struct {
	Queued []QueuedEmail
	Err    error
}

func (m *MockEmailSender) QueueEmail(to string, data emailService.EmailData) error {
	if m.Err != nil {
		return m.Err
	}
	m.Queued = append(m.Queued, QueuedEmail{to, data})
	return nil
}
