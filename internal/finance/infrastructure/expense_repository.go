package infrastructure

import (
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
)

var ErrExpenseNotFound = errors.New("expense not found")

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Save(expense domain.Expense) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO expenses (id, user_id, category_id, amount, expense_date, description)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		expense.ID, expense.UserID, expense.CategoryID, expense.Amount, expense.Date, expense.Description,
	)
	if err != nil {
		return err
	}

	for _, product := range expense.Products {
		_, err = tx.Exec(
			`INSERT INTO expense_products (id, expense_id, name, amount) VALUES ($1, $2, $3, $4)`,
			product.ID, expense.ID, product.Name, product.Amount,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *ExpenseRepository) FindByUser(userID string, startDate, endDate time.Time) ([]domain.Expense, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, category_id, amount, expense_date, description, created_at
        FROM expenses
        WHERE user_id = $1 AND expense_date BETWEEN $2 AND $3
        ORDER BY expense_date DESC, created_at DESC`,
		userID, startDate, endDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var expense domain.Expense
		if err := rows.Scan(&expense.ID, &expense.UserID, &expense.CategoryID,
			&expense.Amount, &expense.Date, &expense.Description, &expense.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepository) FindByID(expenseID string) (*domain.Expense, error) {
	var expense domain.Expense
	err := r.db.QueryRow(
		`SELECT id, user_id, category_id, amount, expense_date, description, created_at
        FROM expenses WHERE id = $1`,
		expenseID,
	).Scan(&expense.ID, &expense.UserID, &expense.CategoryID,
		&expense.Amount, &expense.Date, &expense.Description, &expense.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(
		`SELECT id, name, amount FROM expense_products WHERE expense_id = $1`,
		expenseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Amount); err != nil {
			return nil, err
		}
		expense.Products = append(expense.Products, product)
	}
	return &expense, rows.Err()
}

func (r *ExpenseRepository) Delete(expenseID, userID string) error {
	result, err := r.db.Exec(`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, expenseID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

// SumAmountInRange re-aggregates spend for one (user, category) pair over an
// inclusive date window. Always a full sum, never an incremental counter, so
// edits and deletes are reflected on the next evaluation.
func (r *ExpenseRepository) SumAmountInRange(userID, categoryID string, startDate, endDate time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0)
        FROM expenses
        WHERE user_id = $1 AND category_id = $2 AND expense_date BETWEEN $3 AND $4`,
		userID, categoryID, startDate, endDate,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
