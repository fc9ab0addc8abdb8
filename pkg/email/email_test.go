package email

import (
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestService(t *testing.T, fail error) (*EmailService, *capturedMail) {
	t.Helper()
	s := NewEmailService(EmailConfig{
		SMTPHost:    "smtp.test",
		SMTPPort:    2525,
		FromName:    "BizHub",
		FromEmail:   "no-reply@bizhub.test",
		FrontendURL: "https://app.bizhub.test",
	})
	got := &capturedMail{}
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		got.addr, got.from, got.to, got.msg = addr, from, to, string(msg)
		return fail
	}
	return s, got
}

func TestSendPasswordResetEmail(t *testing.T) {
	s, got := newTestService(t, nil)
	require.NoError(t, s.SendPasswordResetEmail("a+b@example.com", "tok123"))

	assert.Equal(t, "smtp.test:2525", got.addr)
	assert.Equal(t, []string{"a+b@example.com"}, got.to)
	assert.Contains(t, got.msg, "Subject: Reset Your Password - BizHub")
	assert.Contains(t, got.msg, "https://app.bizhub.test/reset-password?token=tok123")
	assert.Contains(t, got.msg, "email=a%2Bb%40example.com")
}

func TestSendComplianceAlertEmail(t *testing.T) {
	s, got := newTestService(t, nil)
	exp := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	err := s.SendComplianceAlertEmail("owner@acme.test", "Acme", []ComplianceAlertItem{
		{Name: "Tax Clearance", Status: "expiring", ExpiryDate: &exp},
		{Name: "COIDA Letter", Status: "expired"},
	})
	require.NoError(t, err)

	assert.Contains(t, got.msg, "Subject: 2 compliance document(s) need attention - Acme")
	assert.Contains(t, got.msg, "Tax Clearance")
	assert.Contains(t, got.msg, "01 May 2024")
	assert.Contains(t, got.msg, "https://app.bizhub.test/compliance")
}

func TestSendComplianceAlertEmail_NoItems(t *testing.T) {
	s, got := newTestService(t, errors.New("should not be called"))
	require.NoError(t, s.SendComplianceAlertEmail("owner@acme.test", "Acme", nil))
	assert.Empty(t, got.msg)
}

func TestSendEmail_Failure(t *testing.T) {
	s, _ := newTestService(t, errors.New("connection refused"))
	err := s.SendPasswordResetEmail("a@example.com", "tok")
	assert.ErrorContains(t, err, "connection refused")
}
