// Package mailer sends transactional email for the auth service.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer dispatches transactional email. Implementations must be safe for
// concurrent use by request handlers.
type Mailer interface {
	SendOTP(to, code string) error
	SendResetLink(to, link string) error
	SendResetConfirmation(to string) error
	SendContact(name, email, message string) error
}

// Config holds SMTP settings for the gomail-backed mailer.
type Config struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	AdminEmail string
}

type smtpMailer struct {
	dialer *gomail.Dialer
	cfg    Config
}

// New creates an SMTP Mailer.
func New(cfg Config) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		cfg:    cfg,
	}
}

func (m *smtpMailer) send(to, subject, text, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	if html != "" {
		msg.AddAlternative("text/html", html)
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

func (m *smtpMailer) SendOTP(to, code string) error {
	return m.send(to,
		"ChatCode - Email Verification",
		fmt.Sprintf("Your verification code is: %s. This code will expire soon.", code),
		fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Verify Your Email</h2>
  <p>Thank you for signing up with ChatCode! Please use the following code to verify your email address:</p>
  <div style="background-color: #f3f4f6; padding: 15px; border-radius: 5px; text-align: center;">
    <span style="font-size: 24px; font-weight: bold; letter-spacing: 5px;">%s</span>
  </div>
  <p>If you didn't create an account with ChatCode, please ignore this email.</p>
</div>`, code))
}

func (m *smtpMailer) SendResetLink(to, link string) error {
	return m.send(to,
		"Password Reset",
		fmt.Sprintf("You requested a password reset. Click the link to reset your password: %s", link),
		fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Password Reset</h2>
  <p>You requested a password reset for your ChatCode account.</p>
  <a href="%s" style="display: inline-block; padding: 10px 20px; background-color: #5469d4; color: white; text-decoration: none; border-radius: 4px;">Reset Password</a>
  <p>If you didn't request this, you can safely ignore this email.</p>
</div>`, link))
}

func (m *smtpMailer) SendResetConfirmation(to string) error {
	return m.send(to,
		"Password Reset Successful",
		"Your password has been reset successfully.",
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Password Reset Successful</h2>
  <p>Your password for ChatCode has been reset successfully.</p>
  <p>If you did not request this change, please contact support immediately.</p>
</div>`)
}

func (m *smtpMailer) SendContact(name, email, message string) error {
	return m.send(m.cfg.AdminEmail,
		"New Contact Form Submission",
		fmt.Sprintf("Name: %s\nEmail: %s\nMessage: %s", name, email, message),
		fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New Contact Form Submission</h2>
  <p><strong>Name:</strong> %s</p>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Message:</strong> %s</p>
</div>`, name, email, message))
}
