package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bizhub-api/internal/domain/compliance"
	"github.com/sangkips/bizhub-api/internal/domain/entity"
	"github.com/sangkips/bizhub-api/internal/domain/repository"
	infraRepo "github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/sangkips/bizhub-api/pkg/email"
	"github.com/sangkips/bizhub-api/pkg/notify"
	"github.com/sourcegraph/conc/pool"
)

var errNoChannel = errors.New("no alert channel configured")

// SweepConfig tunes the daily compliance sweep
type SweepConfig struct {
	// Concurrency bounds how many businesses are processed at once
	Concurrency int
	// Cooldown is the minimum time between two alerts for the same document
	Cooldown time.Duration
	// WindowDays limits alerts for expiring documents to those expiring
	// within this many days; expired documents are always alerted
	WindowDays int
}

// SweepResult counts what a sweep did
type SweepResult struct {
	Businesses int `json:"businesses"`
	Alerted    int `json:"alerted"`
	Documents  int `json:"documents"`
	Failures   int `json:"failures"`
}

// ComplianceSweeper reclassifies every business's documents and alerts
// owners about expiring and expired ones by email and SMS
type ComplianceSweeper struct {
	compliance   *ComplianceService
	businessRepo repository.BusinessRepository
	docRepo      repository.ComplianceDocumentRepository
	mailer       Mailer
	sms          notify.SMSSender
	cfg          SweepConfig
	now          func() time.Time
}

// NewComplianceSweeper creates a new sweeper
func NewComplianceSweeper(
	complianceService *ComplianceService,
	businessRepo repository.BusinessRepository,
	docRepo repository.ComplianceDocumentRepository,
	mailer Mailer,
	sms notify.SMSSender,
	cfg SweepConfig,
) *ComplianceSweeper {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if sms == nil {
		sms = notify.NewNullSender()
	}
	return &ComplianceSweeper{
		compliance:   complianceService,
		businessRepo: businessRepo,
		docRepo:      docRepo,
		mailer:       mailer,
		sms:          sms,
		cfg:          cfg,
		now:          time.Now,
	}
}

// Run sweeps all businesses. A failing business is logged and counted; it
// does not stop the others.
func (s *ComplianceSweeper) Run(ctx context.Context) (*SweepResult, error) {
	businesses, err := s.businessRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}

	var alerted, documents, failures atomic.Int64
	p := pool.New().WithMaxGoroutines(s.cfg.Concurrency)
	for i := range businesses {
		business := &businesses[i]
		p.Go(func() {
			n, err := s.sweepBusiness(ctx, business)
			if err != nil {
				failures.Add(1)
				log.Printf("Warning: compliance sweep failed for business %s: %v", business.ID, err)
				return
			}
			if n > 0 {
				alerted.Add(1)
				documents.Add(int64(n))
			}
		})
	}
	p.Wait()

	result := &SweepResult{
		Businesses: len(businesses),
		Alerted:    int(alerted.Load()),
		Documents:  int(documents.Load()),
		Failures:   int(failures.Load()),
	}
	log.Printf("Compliance sweep: %d businesses, %d alerted about %d documents, %d failed",
		result.Businesses, result.Alerted, result.Documents, result.Failures)
	return result, nil
}

// sweepBusiness returns the number of documents an alert went out for
func (s *ComplianceSweeper) sweepBusiness(ctx context.Context, business *entity.Business) (int, error) {
	ctx = infraRepo.WithBusiness(ctx, business.ID)
	docs, err := s.compliance.evaluate(ctx, business)
	if err != nil {
		return 0, err
	}

	now := s.now()
	due := s.dueForAlert(docs, now)
	if len(due) == 0 {
		return 0, nil
	}

	if err := s.alert(ctx, business, due); err != nil {
		if errors.Is(err, errNoChannel) {
			return 0, nil
		}
		return 0, err
	}

	ids := make([]uuid.UUID, 0, len(due))
	for _, d := range due {
		if d.ID != uuid.Nil {
			ids = append(ids, d.ID)
		}
	}
	if err := s.docRepo.MarkNotified(ctx, ids, now); err != nil {
		log.Printf("Warning: failed to record alert time for business %s: %v", business.ID, err)
	}
	return len(due), nil
}

func (s *ComplianceSweeper) dueForAlert(docs []entity.ComplianceDocument, now time.Time) []entity.ComplianceDocument {
	var due []entity.ComplianceDocument
	horizon := now.AddDate(0, 0, s.cfg.WindowDays)
	for _, d := range docs {
		// A catalog slot without a stored record has no file and never alerts.
		if d.ID == uuid.Nil || !d.DueForAlert(now, s.cfg.Cooldown) {
			continue
		}
		if s.cfg.WindowDays > 0 && d.Status != compliance.StatusExpired && d.ExpiryDate != nil && d.ExpiryDate.After(horizon) {
			continue
		}
		due = append(due, d)
	}
	return due
}

// alert sends the enabled channels. It succeeds when at least one channel
// delivered.
func (s *ComplianceSweeper) alert(ctx context.Context, business *entity.Business, docs []entity.ComplianceDocument) error {
	settings := business.Settings
	var sent int
	var errs []error

	if settings.EmailAlerts && settings.AlertEmail != "" && s.mailer != nil {
		items := make([]email.ComplianceAlertItem, len(docs))
		for i, d := range docs {
			items[i] = email.ComplianceAlertItem{Name: d.Name, Status: d.Status.String(), ExpiryDate: d.ExpiryDate}
		}
		if err := s.mailer.SendComplianceAlertEmail(settings.AlertEmail, business.Name, items); err != nil {
			errs = append(errs, fmt.Errorf("email: %w", err))
		} else {
			sent++
		}
	}

	if settings.SMSAlerts && settings.AlertPhone != "" && s.sms.Enabled() {
		if err := s.sms.Send(ctx, settings.AlertPhone, smsBody(business.Name, docs)); err != nil {
			errs = append(errs, fmt.Errorf("sms: %w", err))
		} else {
			sent++
		}
	}

	if sent > 0 {
		for _, err := range errs {
			log.Printf("Warning: compliance alert for business %s partly failed: %v", business.ID, err)
		}
		return nil
	}
	if len(errs) == 0 {
		return errNoChannel
	}
	return errors.Join(errs...)
}

func smsBody(businessName string, docs []entity.ComplianceDocument) string {
	var expired, expiring []string
	for _, d := range docs {
		if d.Status == compliance.StatusExpired {
			expired = append(expired, d.Name)
		} else {
			expiring = append(expiring, d.Name)
		}
	}
	var b strings.Builder
	b.WriteString(businessName + " compliance:")
	if len(expired) > 0 {
		b.WriteString(" expired: " + strings.Join(expired, ", ") + ".")
	}
	if len(expiring) > 0 {
		b.WriteString(" expiring soon: " + strings.Join(expiring, ", ") + ".")
	}
	return b.String()
}
