package user

import (
	"fmt"
	"time"

	"github.com/badoux/checkmail"
)

const (
	maxEmailLength = 35
	minEmailLength = 3
)

var (
	ErrInvalidEmail = fmt.Errorf("email address is not valid")
	ErrEmailLength  = fmt.Errorf("email address is too long or too short, max length: %d, min length: %d", maxEmailLength, minEmailLength)
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Recipient is what the notification flow needs to know about a user: a
// display name and a deliverable address.
type Recipient struct {
	Name  string
	Email string
}

type Service interface {
	GetNotificationRecipient(userID string) (*Recipient, error)
	ListUserIDs() ([]string, error)
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) ListUserIDs() ([]string, error) {
	return s.repo.getAllUserIDs()
}

// GetNotificationRecipient resolves a user's display name and email and
// refuses addresses that cannot possibly be delivered to.
func (s *service) GetNotificationRecipient(userID string) (*Recipient, error) {
	u, err := s.repo.getUserByID(userID)
	if err != nil {
		return nil, err
	}
	if err := validateEmailAddress(u.Email); err != nil {
		return nil, err
	}
	return &Recipient{Name: u.Login, Email: u.Email}, nil
}

// validateEmailAddress does a format check only. No MX lookup here, this
// runs inline with limit evaluation.
func validateEmailAddress(email string) error {
	err := checkmail.ValidateFormat(email)
	if err != nil {
		return ErrInvalidEmail
	}
	if len(email) > maxEmailLength || len(email) <= minEmailLength {
		return ErrEmailLength
	}
	return nil
}
