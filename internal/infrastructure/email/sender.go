package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"pet-ai.backend/internal/config"
)

// Sender delivers verification and password reset codes by email
type Sender interface {
	SendVerificationCode(ctx context.Context, to, code string) error
	SendPasswordResetCode(ctx context.Context, to, code string) error
}

var smtpSendMail = smtp.SendMail

// SMTPSender implements Sender over plain SMTP with STARTTLS
type SMTPSender struct {
	cfg     config.SMTPConfig
	appName string
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(cfg config.SMTPConfig, appName string) *SMTPSender {
	return &SMTPSender{cfg: cfg, appName: appName}
}

// SendVerificationCode sends an email verification code
func (s *SMTPSender) SendVerificationCode(_ context.Context, to, code string) error {
	intro := fmt.Sprintf("Thank you for registering with %s!", s.appName)
	outro := "If you didn't request this code, please ignore this email."
	return s.send(to, "Email Verification Code", "Email Verification", intro, code, outro)
}

// SendPasswordResetCode sends a password reset code
func (s *SMTPSender) SendPasswordResetCode(_ context.Context, to, code string) error {
	intro := fmt.Sprintf("You requested to reset your password for %s.", s.appName)
	outro := "If you didn't request this code, please ignore this email and your password will remain unchanged."
	return s.send(to, "Password Reset Code", "Password Reset", intro, code, outro)
}

func (s *SMTPSender) send(to, subject, heading, intro, code, outro string) error {
	if !s.cfg.Configured() {
		return fmt.Errorf("smtp configuration is incomplete: set SMTP_USER, SMTP_PASSWORD and SMTP_FROM_EMAIL")
	}

	msg := buildMessage(s.cfg.FromName, s.cfg.FromEmail, to, subject, heading, intro, code, outro)
	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)

	if err := smtpSendMail(addr, auth, s.cfg.FromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildMessage assembles a multipart/alternative message with plain text and
// HTML bodies carrying the code.
func buildMessage(fromName, fromEmail, to, subject, heading, intro, code, outro string) []byte {
	const boundary = "pet-ai-alt-boundary"

	text := fmt.Sprintf("%s\r\n\r\nHello,\r\n\r\n%s\r\n\r\nYour code is: %s\r\n\r\nThis code will expire in 10 minutes.\r\n\r\n%s\r\n",
		heading, intro, code, outro)

	html := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
<h2 style="color: #6c5ce7;">%s</h2>
<p>Hello,</p>
<p>%s</p>
<p>Your code is:</p>
<div style="background-color: #f5f5f5; border: 2px solid #6c5ce7; border-radius: 8px; padding: 20px; text-align: center;">
<h1 style="color: #6c5ce7; margin: 0; font-size: 32px; letter-spacing: 4px;">%s</h1>
</div>
<p>This code will expire in 10 minutes.</p>
<p>%s</p>
</div></body></html>`, heading, intro, code, outro)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s <%s>\r\n", fromName, fromEmail))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", boundary))
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(text)
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(html)
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}
