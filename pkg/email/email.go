package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
	"time"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
	AppName      string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	if config.AppName == "" {
		config.AppName = "BizHub"
	}
	return &EmailService{config: config, send: smtp.SendMail}
}

// IsConfigured reports whether an SMTP host and sender address are set
func (s *EmailService) IsConfigured() bool {
	return s.config.SMTPHost != "" && s.config.FromEmail != ""
}

// SendPasswordResetEmail sends a password reset email
func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	body, err := s.render(passwordResetTemplate, map[string]interface{}{
		"Email":    toEmail,
		"ResetURL": resetURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Reset Your Password - " + s.config.AppName
	return s.sendEmail(toEmail, s.buildHTMLEmail(toEmail, subject, body))
}

// ComplianceAlertItem is one document listed in a compliance alert
type ComplianceAlertItem struct {
	Name       string
	Status     string
	ExpiryDate *time.Time
}

// SendComplianceAlertEmail tells a business which compliance documents are
// expiring or have expired
func (s *EmailService) SendComplianceAlertEmail(toEmail, businessName string, items []ComplianceAlertItem) error {
	if len(items) == 0 {
		return nil
	}

	body, err := s.render(complianceAlertTemplate, map[string]interface{}{
		"BusinessName":  businessName,
		"Items":         items,
		"ComplianceURL": s.config.FrontendURL + "/compliance",
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("%d compliance document(s) need attention - %s", len(items), businessName)
	return s.sendEmail(toEmail, s.buildHTMLEmail(toEmail, subject, body))
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	if err := s.send(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// render executes a content template inside the shared layout
func (s *EmailService) render(content string, data map[string]interface{}) (string, error) {
	tmpl, err := template.New("layout").Funcs(template.FuncMap{
		"date": func(t *time.Time) string {
			if t == nil {
				return "-"
			}
			return t.Format("02 Jan 2006")
		},
	}).Parse(layoutTemplate)
	if err != nil {
		return "", err
	}
	if _, err := tmpl.New("content").Parse(content); err != nil {
		return "", err
	}

	data["AppName"] = s.config.AppName
	data["Year"] = time.Now().Year()

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
