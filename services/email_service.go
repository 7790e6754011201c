// services/email_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailService sends transactional mail over SMTP. Every send is
// fire-and-log: a delivery failure is reported as false, never as an error
// that could roll back completed work.
type EmailService struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

func NewEmailService() *EmailService {
	port := 587
	if env := os.Getenv("SMTP_PORT"); env != "" {
		if p, err := strconv.Atoi(env); err == nil {
			port = p
		}
	}

	return &EmailService{
		dialer: gomail.NewDialer(
			os.Getenv("SMTP_HOST"),
			port,
			os.Getenv("SMTP_USERNAME"),
			os.Getenv("SMTP_PASSWORD"),
		),
		from:    os.Getenv("SMTP_FROM"),
		baseURL: os.Getenv("APP_BASE_URL"),
	}
}

// SendEmail delivers one HTML message. Returns true on success.
func (s *EmailService) SendEmail(to, subject, htmlBody string) bool {
	if to == "" || subject == "" {
		log.Printf("Email send skipped: missing recipient or subject (to=%q)", to)
		return false
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Printf("Failed to send email to %s (%q): %v", to, subject, err)
		return false
	}

	log.Printf("Email sent to %s: %q", to, subject)
	return true
}

// SendVerificationEmail mails the account-activation link.
func (s *EmailService) SendVerificationEmail(to, username, token string) bool {
	link := fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, token)
	body := fmt.Sprintf(`
		<h2>Hello %s!</h2>
		<p>Thanks for signing up. Click the link below to verify your email address.
		The link expires in 24 hours.</p>
		<p><a href="%s">Verify email</a></p>
		<p>If you did not create this account, ignore this message.</p>`,
		username, link)
	return s.SendEmail(to, "Verify your email address", body)
}

// SendPasswordResetEmail mails the reset link.
func (s *EmailService) SendPasswordResetEmail(to, username, token string) bool {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	body := fmt.Sprintf(`
		<h2>Hello %s!</h2>
		<p>A password reset was requested for your account. The link below is
		valid for 1 hour.</p>
		<p><a href="%s">Reset password</a></p>
		<p>If you did not request this, your password is unchanged.</p>`,
		username, link)
	return s.SendEmail(to, "Reset your password", body)
}

// SendOrderConfirmationEmail mails a receipt after a committed checkout.
func (s *EmailService) SendOrderConfirmationEmail(to, username, invoiceCode string, total float64) bool {
	body := fmt.Sprintf(`
		<h2>Thanks for your order, %s!</h2>
		<p>Your invoice <strong>%s</strong> has been confirmed.</p>
		<p>Total: %.2f</p>`,
		username, invoiceCode, total)
	return s.SendEmail(to, "Order confirmation "+invoiceCode, body)
}
