package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	mail "github.com/wneessen/go-mail"
)

// Mailer sends admin notifications for new contact requests. Delivery is
// best-effort: the submission succeeds as soon as the row is durably
// written, a failed send is only logged.
type Mailer interface {
	NotifyContactRequest(requestID, subject, email, phone string)
}

type SMTPMailer struct {
	DB *sqlx.DB
}

func (m *SMTPMailer) NotifyContactRequest(requestID, subject, email, phone string) {
	settings, err := LoadSiteSettings(m.DB)
	if err != nil {
		log.Printf("contact mail %s: load settings: %v", requestID, err)
		return
	}
	if settings.SMTPHost == "" || settings.NotifyEmail == "" {
		log.Printf("contact mail %s: smtp not configured, skipping", requestID)
		return
	}
	from := settings.SMTPFrom
	if from == "" {
		from = settings.SMTPUsername
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		log.Printf("contact mail %s: from: %v", requestID, err)
		return
	}
	if err := msg.To(settings.NotifyEmail); err != nil {
		log.Printf("contact mail %s: to: %v", requestID, err)
		return
	}
	msg.Subject("New contact request: " + subject)
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"A new contact request was submitted.\n\nRequest: %s\nSubject: %s\nEmail: %s\nPhone: %s\n",
		requestID, subject, email, phone))

	options := []mail.Option{
		mail.WithPort(settings.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if strings.TrimSpace(settings.SMTPUsername) != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(settings.SMTPUsername),
			mail.WithPassword(settings.SMTPPassword),
		)
	}
	client, err := mail.NewClient(settings.SMTPHost, options...)
	if err != nil {
		log.Printf("contact mail %s: client: %v", requestID, err)
		return
	}
	if err := client.DialAndSend(msg); err != nil {
		log.Printf("contact mail %s: send: %v", requestID, err)
	}
}
