package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// ErrNoRecipient is returned when a message has no phone number to go to
var ErrNoRecipient = errors.New("notify: no recipient")

// SMSSender delivers short text messages.
type SMSSender interface {
	// Send delivers body to the phone number to.
	Send(ctx context.Context, to, body string) error
	// Enabled reports whether messages are actually delivered.
	Enabled() bool
}

// --- Twilio sender ---

// TwilioConfig holds the Twilio account credentials and sender number
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

type twilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender creates a sender backed by the Twilio messages API.
func NewTwilioSender(cfg TwilioConfig) SMSSender {
	return &twilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		from: cfg.FromNumber,
	}
}

func (s *twilioSender) Send(ctx context.Context, to, body string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("notify: failed to send sms to %s: %w", to, err)
	}
	if resp.Sid != nil {
		log.Printf("SMS sent to %s, SID: %s", to, *resp.Sid)
	}
	return nil
}

func (s *twilioSender) Enabled() bool {
	return true
}

// --- Log sender (writes messages to the log, for development) ---

type logSender struct{}

// NewLogSender creates a sender that only logs messages.
func NewLogSender() SMSSender {
	return &logSender{}
}

func (s *logSender) Send(_ context.Context, to, body string) error {
	if strings.TrimSpace(to) == "" {
		return ErrNoRecipient
	}
	log.Printf("SMS to %s: %s", to, body)
	return nil
}

func (s *logSender) Enabled() bool {
	return true
}

// --- Null sender (no-op, SMS disabled) ---

type nullSender struct{}

// NewNullSender creates a sender that silently drops messages.
func NewNullSender() SMSSender {
	return &nullSender{}
}

func (s *nullSender) Send(context.Context, string, string) error {
	return nil
}

func (s *nullSender) Enabled() bool {
	return false
}

// NewSMSSenderFromConfig creates the sender for the configured provider.
// Twilio falls back to the null sender when credentials are missing.
func NewSMSSenderFromConfig(provider string, cfg TwilioConfig) (SMSSender, error) {
	switch strings.ToLower(provider) {
	case "twilio":
		if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
			log.Printf("Warning: Twilio credentials not set, SMS alerts disabled")
			return NewNullSender(), nil
		}
		return NewTwilioSender(cfg), nil
	case "log":
		return NewLogSender(), nil
	case "none", "":
		return NewNullSender(), nil
	default:
		return nil, fmt.Errorf("notify: unknown sms provider %q (use twilio, log, or none)", provider)
	}
}
