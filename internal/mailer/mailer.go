package mailer

import (
	"os"

	"gopkg.in/gomail.v2"
)

// Mailer sends seller-facing notification mail. Callers treat failures as
// best-effort: a lost mail never fails the publish flow.
type Mailer interface {
	SendListingPublishedEmail(toEmail, listingTitle string) error
}

type SMTPMailer struct{}

func (SMTPMailer) SendListingPublishedEmail(toEmail, listingTitle string) error {
	from := os.Getenv("SMTP_EMAIL")
	password := os.Getenv("SMTP_PASSWORD")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Votre annonce est en ligne")
	m.SetBody("text/plain", "Votre annonce « "+listingTitle+" » est maintenant visible sur Brumerie.")

	d := gomail.NewDialer("smtp.gmail.com", 587, from, password)
	return d.DialAndSend(m)
}
