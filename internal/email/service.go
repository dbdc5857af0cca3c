package emailService

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
	"path/filepath"
)

const (
	subjectLimitBreach  = "Spending limit reached"
	templateLimitBreach = "limit_breach.html"

	subjectMonthlyReport  = "Your monthly expense report"
	templateMonthlyReport = "monthly_report.html"
)

type EmailData interface {
	TemplateFileName() string
	Subject() string
}

type EmailSender interface {
	QueueEmail(to string, data EmailData) error
}

// LimitBreachData fills the limit breach template. Amounts and the
// percentage are preformatted strings so the template stays dumb.
type LimitBreachData struct {
	UserName     string
	LimitName    string
	CategoryName string
	LimitAmount  string
	TotalSpent   string
	Percentage   string
	PeriodType   string
}

func (d LimitBreachData) TemplateFileName() string {
	return templateLimitBreach
}

func (d LimitBreachData) Subject() string {
	return subjectLimitBreach
}

type ReportCategoryRow struct {
	Name    string
	Total   string
	Percent string
}

type MonthlyReportData struct {
	UserName     string
	Month        string
	Year         int
	TotalSpent   string
	ExpenseCount int
	Categories   []ReportCategoryRow
}

func (d MonthlyReportData) TemplateFileName() string {
	return templateMonthlyReport
}

func (d MonthlyReportData) Subject() string {
	return subjectMonthlyReport
}

type Config struct {
	From         string
	Password     string
	SMTPHost     string
	SMTPPort     string
	TemplatesDir string
}

type EmailService struct {
	from         string
	password     string
	templatesDir string
	smtpHost     string
	smtpPort     string
	taskQueue    chan EmailTask
}

type EmailTask struct {
	to           string
	templateFile string
	data         EmailData
	subject      string
}

func NewEmailService(cfg Config) *EmailService {
	service := &EmailService{
		from:         cfg.From,
		password:     cfg.Password,
		templatesDir: cfg.TemplatesDir,
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		taskQueue:    make(chan EmailTask, 100),
	}

	go service.worker()
	return service
}

func (s *EmailService) worker() {
	for task := range s.taskQueue {
		err := s.sendTemplatedEmail(task.to, task.templateFile, task.data, task.subject)
		if err != nil {
			log.Printf("Error sending email to %s: %v", task.to, err)
		}
	}
}

// QueueEmail hands a mail off to the background worker. It never blocks; a
// full queue is reported as an error so the caller can log and move on.
func (s *EmailService) QueueEmail(to string, data EmailData) error {
	task := EmailTask{to, data.TemplateFileName(), data, data.Subject()}
	select {
	case s.taskQueue <- task:
		return nil
	default:
		return fmt.Errorf("email queue is full, dropping mail to %s", to)
	}
}

func (s *EmailService) Close() {
	close(s.taskQueue)
}

func (s *EmailService) sendTemplatedEmail(to, templateFileName string, data EmailData, subject string) error {
	templatePath := filepath.Join(s.templatesDir, templateFileName)
	if _, err := os.Stat(templatePath); os.IsNotExist(err) {
		return fmt.Errorf("template file does not exist: %v", err)
	}

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("error parsing template: %v", err)
	}

	var body bytes.Buffer
	err = tmpl.Execute(&body, data)
	if err != nil {
		return fmt.Errorf("error executing template: %v", err)
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\";\r\n\r\n" +
		body.String())

	auth := smtp.PlainAuth("", s.from, s.password, s.smtpHost)
	err = smtp.SendMail(s.smtpHost+":"+s.smtpPort, auth, s.from, []string{to}, message)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}
