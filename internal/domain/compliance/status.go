package compliance

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Status is the derived state of a compliance document slot.
type Status string

const (
	StatusMissing  Status = "missing"
	StatusValid    Status = "valid"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
)

// ExpiryWindowMonths is how far ahead of its expiry date a document starts to be
// reported as expiring.
const ExpiryWindowMonths = 3

// Classify derives the status of a document slot from whether a file exists,
// its optional expiry date and the current time. Only calendar days count:
// the expiry is a date without a zone and is compared against today in now's
// location.
func Classify(hasFile bool, expiry *time.Time, now time.Time) Status {
	if !hasFile {
		return StatusMissing
	}
	if expiry == nil || expiry.IsZero() {
		return StatusValid
	}

	today := dateOf(now, now.Location())
	exp := dateOf(*expiry, now.Location())

	if !exp.After(today) {
		return StatusExpired
	}
	if exp.Before(today.AddDate(0, ExpiryWindowMonths, 0)) {
		return StatusExpiring
	}
	return StatusValid
}

// Progress is the completion percentage shown next to a document.
func (s Status) Progress() int {
	switch s {
	case StatusValid:
		return 100
	case StatusExpiring:
		return 60
	case StatusExpired:
		return 25
	default:
		return 0
	}
}

// NeedsAttention reports whether the owner should be alerted about s.
func (s Status) NeedsAttention() bool {
	return s == StatusExpiring || s == StatusExpired
}

func (s Status) String() string {
	if s == "" {
		return string(StatusMissing)
	}
	return string(s)
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func (s *Status) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = Status(v)
	case []byte:
		*s = Status(string(v))
	default:
		*s = StatusMissing
	}
	return nil
}

// dateOf keeps the calendar date of t and places it at midnight in loc.
func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
