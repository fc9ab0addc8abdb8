package service

import "github.com/sangkips/bizhub-api/pkg/email"

// Mailer sends the transactional emails the services need
type Mailer interface {
	SendPasswordResetEmail(toEmail, token string) error
	SendComplianceAlertEmail(toEmail, businessName string, items []email.ComplianceAlertItem) error
}
