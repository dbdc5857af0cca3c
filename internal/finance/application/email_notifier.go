package application

import (
	"fmt"

	emailService "github.com/sebuszqo/ExpenseTracker/internal/email"
)

// EmailBreachNotifier delivers breach notifications through the mail queue.
type EmailBreachNotifier struct {
	mailer emailService.EmailSender
}

func NewEmailBreachNotifier(mailer emailService.EmailSender) *EmailBreachNotifier {
	return &EmailBreachNotifier{mailer: mailer}
}

func (n *EmailBreachNotifier) NotifyLimitBreach(notification LimitBreachNotification) error {
	data := emailService.LimitBreachData{
		UserName:     notification.RecipientName,
		LimitName:    notification.LimitName,
		CategoryName: notification.CategoryName,
		LimitAmount:  notification.LimitAmount.StringFixed(2),
		TotalSpent:   notification.TotalSpent.StringFixed(2),
		Percentage:   fmt.Sprintf("%.1f", notification.Percentage),
		PeriodType:   string(notification.PeriodType),
	}
	return n.mailer.QueueEmail(notification.RecipientEmail, data)
}
