package services

import (
	"log"

	"github.com/LearnGrowCode/water-timeout-backend/utils"
)

// MailSink emails daily summary notifications to the configured recipient.
// Reminder-kind notifications are ignored; nobody wants an hourly email.
type MailSink struct {
	To string
}

func (m *MailSink) Deliver(n Notification) {
	if n.Kind != "summary" || m.To == "" {
		return
	}
	if err := utils.SendDailySummaryEmail(m.To, n.Body); err != nil {
		log.Printf("[mail] summary send failed: %v", err)
	}
}
