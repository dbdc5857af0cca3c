package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Save(category domain.Category) error {
	var userID interface{}
	if category.UserID != "" {
		userID = category.UserID
	}
	_, err := r.db.Exec(
		`INSERT INTO categories (id, user_id, name) VALUES ($1, $2, $3)`,
		category.ID, userID, category.Name,
	)
	return err
}

func (r *CategoryRepository) FindByID(categoryID string) (*domain.Category, error) {
	var category domain.Category
	var userID sql.NullString
	err := r.db.QueryRow(
		`SELECT id, user_id, name FROM categories WHERE id = $1`,
		categoryID,
	).Scan(&category.ID, &userID, &category.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if userID.Valid {
		category.UserID = userID.String
	}
	return &category, nil
}

// FindForUser returns the user's own categories plus the predefined ones.
func (r *CategoryRepository) FindForUser(userID string) ([]domain.Category, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name FROM categories
        WHERE user_id = $1 OR user_id IS NULL
        ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		var owner sql.NullString
		if err := rows.Scan(&category.ID, &owner, &category.Name); err != nil {
			return nil, err
		}
		if owner.Valid {
			category.UserID = owner.String
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) ExistsForUser(categoryID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS (
            SELECT 1 FROM categories
            WHERE id = $1 AND (user_id = $2 OR user_id IS NULL)
        )`,
		categoryID, userID,
	).Scan(&exists)
	return exists, err
}

func (r *CategoryRepository) Delete(categoryID, userID string) error {
	// predefined categories cannot be deleted through the user surface
	result, err := r.db.Exec(
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`,
		categoryID, userID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
