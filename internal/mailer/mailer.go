package mailer

import (
	"fmt"

	"github.com/joshua-takyi/kedai/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail. The interface keeps services testable
// without an SMTP server.
type Mailer interface {
	SendVerificationCode(email, code string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPUser,
	}
}

func (m *SMTPMailer) SendVerificationCode(email, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Verify Your Email - KedaiCuple")
	msg.SetBody("text/html", verificationBody(code))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send verification email: %v", err)
	}
	return nil
}

func verificationBody(code string) string {
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
          <h2>Welcome to KedaiCuple!</h2>
          <p>Thank you for signing up. To complete your registration, please use the following verification code:</p>
          <div style="background-color: #f4f4f4; padding: 15px; text-align: center; font-size: 24px; letter-spacing: 5px; font-weight: bold;">
            %s
          </div>
          <p>This code will expire in 30 minutes.</p>
          <p>If you didn't request this verification, please ignore this email.</p>
        </div>
      `, code)
}
