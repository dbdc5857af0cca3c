package infrastructure

import (
	"database/sql"
	"errors"
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
)

var ErrLimitNotFound = errors.New("limit not found")

type LimitRepository struct {
	db *sql.DB
}

func NewLimitRepository(db *sql.DB) *LimitRepository {
	return &LimitRepository{db: db}
}

func (r *LimitRepository) Save(limit domain.Limit) error {
	_, err := r.db.Exec(
		`INSERT INTO limits (id, user_id, category_id, name, amount, period_type, start_date, end_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		limit.ID, limit.UserID, limit.CategoryID, limit.Name, limit.Amount,
		string(limit.PeriodType), limit.StartDate, limit.EndDate,
	)
	return err
}

// FindActive returns limits whose inclusive [start_date, end_date] window
// contains day. Both bounds count.
func (r *LimitRepository) FindActive(userID, categoryID string, day time.Time) ([]domain.Limit, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, category_id, name, amount, period_type, start_date, end_date
        FROM limits
        WHERE user_id = $1 AND category_id = $2 AND start_date <= $3 AND end_date >= $3`,
		userID, categoryID, domain.DateOnly(day),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLimits(rows)
}

func (r *LimitRepository) FindByUser(userID string) ([]domain.Limit, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, category_id, name, amount, period_type, start_date, end_date
        FROM limits
        WHERE user_id = $1
        ORDER BY start_date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLimits(rows)
}

func (r *LimitRepository) Delete(limitID, userID string) error {
	result, err := r.db.Exec(`DELETE FROM limits WHERE id = $1 AND user_id = $2`, limitID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLimitNotFound
	}
	return nil
}

func (r *LimitRepository) FindExpired(day time.Time) ([]domain.Limit, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, category_id, name, amount, period_type, start_date, end_date
        FROM limits
        WHERE end_date < $1`,
		domain.DateOnly(day),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLimits(rows)
}

func (r *LimitRepository) UpdatePeriod(limitID string, startDate, endDate time.Time) error {
	result, err := r.db.Exec(
		`UPDATE limits SET start_date = $1, end_date = $2 WHERE id = $3`,
		startDate, endDate, limitID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLimitNotFound
	}
	return nil
}

func scanLimits(rows *sql.Rows) ([]domain.Limit, error) {
	var limits []domain.Limit
	for rows.Next() {
		var limit domain.Limit
		var periodType string
		if err := rows.Scan(&limit.ID, &limit.UserID, &limit.CategoryID, &limit.Name,
			&limit.Amount, &periodType, &limit.StartDate, &limit.EndDate); err != nil {
			return nil, err
		}
		limit.PeriodType = domain.PeriodType(periodType)
		limits = append(limits, limit)
	}
	return limits, rows.Err()
}
