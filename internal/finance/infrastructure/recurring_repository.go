package infrastructure

import (
	"database/sql"
	"errors"
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
)

var ErrRecurringNotFound = errors.New("recurring expense not found")

type RecurringExpenseRepository struct {
	db *sql.DB
}

func NewRecurringExpenseRepository(db *sql.DB) *RecurringExpenseRepository {
	return &RecurringExpenseRepository{db: db}
}

func (r *RecurringExpenseRepository) Save(recurring domain.RecurringExpense) error {
	var lastRun interface{}
	if !recurring.LastRun.IsZero() {
		lastRun = recurring.LastRun
	}
	_, err := r.db.Exec(
		`INSERT INTO recurring_expenses (id, user_id, category_id, amount, description, frequency, start_date, last_run)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		recurring.ID, recurring.UserID, recurring.CategoryID, recurring.Amount,
		recurring.Description, string(recurring.Frequency), recurring.StartDate, lastRun,
	)
	return err
}

func (r *RecurringExpenseRepository) FindByUser(userID string) ([]domain.RecurringExpense, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, category_id, amount, description, frequency, start_date, last_run
        FROM recurring_expenses
        WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecurring(rows)
}

func (r *RecurringExpenseRepository) FindAll() ([]domain.RecurringExpense, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, category_id, amount, description, frequency, start_date, last_run
        FROM recurring_expenses`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecurring(rows)
}

func (r *RecurringExpenseRepository) UpdateLastRun(recurringID string, lastRun time.Time) error {
	result, err := r.db.Exec(
		`UPDATE recurring_expenses SET last_run = $1 WHERE id = $2`,
		lastRun, recurringID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecurringNotFound
	}
	return nil
}

func (r *RecurringExpenseRepository) Delete(recurringID, userID string) error {
	result, err := r.db.Exec(
		`DELETE FROM recurring_expenses WHERE id = $1 AND user_id = $2`,
		recurringID, userID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecurringNotFound
	}
	return nil
}

func scanRecurring(rows *sql.Rows) ([]domain.RecurringExpense, error) {
	var recurrings []domain.RecurringExpense
	for rows.Next() {
		var recurring domain.RecurringExpense
		var frequency string
		var lastRun sql.NullTime
		if err := rows.Scan(&recurring.ID, &recurring.UserID, &recurring.CategoryID,
			&recurring.Amount, &recurring.Description, &frequency,
			&recurring.StartDate, &lastRun); err != nil {
			return nil, err
		}
		recurring.Frequency = domain.Frequency(frequency)
		if lastRun.Valid {
			recurring.LastRun = lastRun.Time
		}
		recurrings = append(recurrings, recurring)
	}
	return recurrings, rows.Err()
}
