package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP credentials.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPService creates a gomail-backed sender.
func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendVerification(_ context.Context, to, name, code string) error {
	body := fmt.Sprintf(`
		<h3>Hello %s,</h3>
		<p>Thank you for registering with our medical portal.</p>
		<p>Your email verification code is:</p>
		<h2>%s</h2>
		<p>Please enter this code to verify your account and access the system.</p>
		<p>If you did not request this, please ignore this email.</p>
		<br/>
		<p>&mdash; The Medical Portal Team</p>
	`, name, code)

	return s.send(to, "Verify Your Email - Medical Portal", body)
}

func (s *smtpService) SendWelcome(_ context.Context, to, name string) error {
	body := fmt.Sprintf(`
		<h3>Hello %s,</h3>
		<p>Welcome to our medical patient portal.</p>
		<p>If you have any questions or need assistance, feel free to contact our support team.</p>
		<br/>
		<p>&mdash; The Medical Portal Team</p>
	`, name)

	return s.send(to, "Welcome to Medical Portal", body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
