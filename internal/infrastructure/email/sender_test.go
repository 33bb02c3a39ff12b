package email

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pet-ai.backend/internal/config"
)

func testSMTPConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host:      "smtp.example.com",
		Port:      587,
		User:      "mailer",
		Password:  "secret",
		FromEmail: "noreply@example.com",
		FromName:  "Pet AI",
	}
}

func captureSendMail(t *testing.T, fn func(addr string, a smtp.Auth, from string, to []string, msg []byte) error) {
	t.Helper()
	orig := smtpSendMail
	smtpSendMail = fn
	t.Cleanup(func() { smtpSendMail = orig })
}

func TestSMTPSender_SendVerificationCode(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	captureSendMail(t, func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	})

	sender := NewSMTPSender(testSMTPConfig(), "Pet AI Model API")
	require.NoError(t, sender.SendVerificationCode(context.Background(), "user@example.com", "123456"))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"user@example.com"}, gotTo)

	body := string(gotMsg)
	assert.Contains(t, body, "From: Pet AI <noreply@example.com>")
	assert.Contains(t, body, "To: user@example.com")
	assert.Contains(t, body, "Subject: Email Verification Code")
	assert.Contains(t, body, "multipart/alternative")
	assert.Contains(t, body, "123456")
	assert.Contains(t, body, "expire in 10 minutes")
}

func TestSMTPSender_SendPasswordResetCode(t *testing.T) {
	var gotMsg []byte
	captureSendMail(t, func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotMsg = msg
		return nil
	})

	sender := NewSMTPSender(testSMTPConfig(), "Pet AI Model API")
	require.NoError(t, sender.SendPasswordResetCode(context.Background(), "user@example.com", "654321"))

	body := string(gotMsg)
	assert.Contains(t, body, "Subject: Password Reset Code")
	assert.Contains(t, body, "654321")
	assert.Contains(t, body, "password will remain unchanged")
}

func TestSMTPSender_UnconfiguredFails(t *testing.T) {
	captureSendMail(t, func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("should not attempt delivery without configuration")
		return nil
	})

	sender := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 587}, "Pet AI Model API")
	err := sender.SendVerificationCode(context.Background(), "user@example.com", "123456")
	assert.ErrorContains(t, err, "smtp configuration is incomplete")
}

func TestSMTPSender_PropagatesDeliveryError(t *testing.T) {
	captureSendMail(t, func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	})

	sender := NewSMTPSender(testSMTPConfig(), "Pet AI Model API")
	err := sender.SendPasswordResetCode(context.Background(), "user@example.com", "654321")
	assert.ErrorContains(t, err, "failed to send email")
}
