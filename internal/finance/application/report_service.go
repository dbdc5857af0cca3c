package application

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	emailService "github.com/sebuszqo/ExpenseTracker/internal/email"
	"github.com/sebuszqo/ExpenseTracker/internal/finance/domain"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

type ReportUserDirectory interface {
	GetNotificationRecipient(userID string) (*user.Recipient, error)
	ListUserIDs() ([]string, error)
}

type CategoryBreakdown struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Percentage   float64         `json:"percentage"`
}

type MonthlyReport struct {
	UserID       string              `json:"user_id"`
	Year         int                 `json:"year"`
	Month        time.Month          `json:"month"`
	TotalSpent   decimal.Decimal     `json:"total_spent"`
	ExpenseCount int                 `json:"expense_count"`
	Categories   []CategoryBreakdown `json:"categories"`
}

// ReportService aggregates one calendar month of spending per user and
// mails the result. No file rendering; the report is an HTML email.
type ReportService struct {
	expenses        domain.ExpenseRepository
	categoryService CategoryServiceInterface
	users           ReportUserDirectory
	mailer          emailService.EmailSender
}

func NewReportService(
	expenses domain.ExpenseRepository,
	categoryService CategoryServiceInterface,
	users ReportUserDirectory,
	mailer emailService.EmailSender,
) *ReportService {
	return &ReportService{expenses: expenses, categoryService: categoryService, users: users, mailer: mailer}
}

func (s *ReportService) BuildMonthlyReport(userID string, year int, month time.Month) (*MonthlyReport, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	expenses, err := s.expenses.FindByUser(userID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("read month expenses: %w", err)
	}

	report := &MonthlyReport{
		UserID:     userID,
		Year:       year,
		Month:      month,
		TotalSpent: decimal.Zero,
		Categories: []CategoryBreakdown{},
	}

	totals := make(map[string]decimal.Decimal)
	for _, expense := range expenses {
		report.ExpenseCount++
		report.TotalSpent = report.TotalSpent.Add(expense.Amount)
		totals[expense.CategoryID] = totals[expense.CategoryID].Add(expense.Amount)
	}

	for categoryID, total := range totals {
		name, err := s.categoryService.GetCategoryName(categoryID)
		if err != nil {
			name = categoryID
		}
		breakdown := CategoryBreakdown{
			CategoryID:   categoryID,
			CategoryName: name,
			Total:        total,
		}
		if report.TotalSpent.IsPositive() {
			percentage, _ := total.Div(report.TotalSpent).Mul(hundred).Round(1).Float64()
			breakdown.Percentage = percentage
		}
		report.Categories = append(report.Categories, breakdown)
	}
	sort.Slice(report.Categories, func(i, j int) bool {
		return report.Categories[i].Total.GreaterThan(report.Categories[j].Total)
	})

	return report, nil
}

func (s *ReportService) SendMonthlyReport(userID string, year int, month time.Month) error {
	report, err := s.BuildMonthlyReport(userID, year, month)
	if err != nil {
		return err
	}

	recipient, err := s.users.GetNotificationRecipient(userID)
	if err != nil {
		return fmt.Errorf("resolve report recipient: %w", err)
	}

	data := emailService.MonthlyReportData{
		UserName:     recipient.Name,
		Month:        month.String(),
		Year:         year,
		TotalSpent:   report.TotalSpent.StringFixed(2),
		ExpenseCount: report.ExpenseCount,
	}
	for _, breakdown := range report.Categories {
		data.Categories = append(data.Categories, emailService.ReportCategoryRow{
			Name:    breakdown.CategoryName,
			Total:   breakdown.Total.StringFixed(2),
			Percent: fmt.Sprintf("%.1f", breakdown.Percentage),
		})
	}

	return s.mailer.QueueEmail(recipient.Email, data)
}

// RunMonthlyReports mails the previous month's report to every user who had
// at least one expense in it. Meant to run from cron on the first of the
// month; per-user failures are logged and skipped.
func (s *ReportService) RunMonthlyReports(now time.Time) (int, error) {
	previousMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	year, month := previousMonth.Year(), previousMonth.Month()

	userIDs, err := s.users.ListUserIDs()
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	sent := 0
	for _, userID := range userIDs {
		report, err := s.BuildMonthlyReport(userID, year, month)
		if err != nil {
			log.Printf("Failed to build monthly report for user %s: %v", userID, err)
			continue
		}
		if report.ExpenseCount == 0 {
			continue
		}
		if err := s.SendMonthlyReport(userID, year, month); err != nil {
			log.Printf("Failed to send monthly report for user %s: %v", userID, err)
			continue
		}
		sent++
	}
	return sent, nil
}
