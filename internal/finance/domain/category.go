package domain

type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"user_id,omitempty"` // empty for predefined categories
}

func (c Category) IsPredefined() bool {
	return c.UserID == ""
}

type CategoryRepository interface {
	Save(category Category) error
	FindByID(categoryID string) (*Category, error)
	FindForUser(userID string) ([]Category, error)
	ExistsForUser(categoryID, userID string) (bool, error)
	Delete(categoryID, userID string) error
}
