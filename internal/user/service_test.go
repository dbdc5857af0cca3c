package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRepository struct {
	users map[string]*User
}

func (r *fakeRepository) getUserByID(id string) (*User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (r *fakeRepository) getAllUserIDs() ([]string, error) {
	var ids []string
	for id := range r.users {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestGetNotificationRecipient(t *testing.T) {
	service := NewUserService(&fakeRepository{users: map[string]*User{
		"user-1": {ID: "user-1", Login: "john", Email: "john@example.com"},
		"user-2": {ID: "user-2", Login: "ann", Email: "not-an-email"},
		"user-3": {ID: "user-3", Login: "bob", Email: "x@y"},
	}})

	recipient, err := service.GetNotificationRecipient("user-1")
	assert.NoError(t, err)
	assert.Equal(t, "john", recipient.Name)
	assert.Equal(t, "john@example.com", recipient.Email)

	_, err = service.GetNotificationRecipient("user-2")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = service.GetNotificationRecipient("user-missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestValidateEmailAddress_Length(t *testing.T) {
	tooLong := "a-very-long-local-part-indeed@example.com"
	assert.Greater(t, len(tooLong), maxEmailLength)
	assert.ErrorIs(t, validateEmailAddress(tooLong), ErrEmailLength)
}
