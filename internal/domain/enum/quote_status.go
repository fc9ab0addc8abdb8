package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// QuoteStatus represents the status of a quote
type QuoteStatus int

const (
	QuoteStatusDraft    QuoteStatus = 0
	QuoteStatusSent     QuoteStatus = 1
	QuoteStatusAccepted QuoteStatus = 2
	QuoteStatusDeclined QuoteStatus = 3
)

var quoteStatusNames = [...]string{"Draft", "Sent", "Accepted", "Declined"}

func (s QuoteStatus) String() string {
	if int(s) < 0 || int(s) >= len(quoteStatusNames) {
		return "Draft"
	}
	return quoteStatusNames[s]
}

// Valid reports whether s is one of the defined statuses
func (s QuoteStatus) Valid() bool {
	return int(s) >= 0 && int(s) < len(quoteStatusNames)
}

// ParseQuoteStatus accepts a status name (case-insensitive) or its numeric value
func ParseQuoteStatus(str string) (QuoteStatus, bool) {
	for i, name := range quoteStatusNames {
		if strings.EqualFold(name, str) {
			return QuoteStatus(i), true
		}
	}
	if len(str) == 1 && str[0] >= '0' && str[0] <= '9' {
		s := QuoteStatus(str[0] - '0')
		return s, s.Valid()
	}
	return QuoteStatusDraft, false
}

func (s QuoteStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuoteStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = QuoteStatus(i)
		return nil
	}
	if parsed, ok := ParseQuoteStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s QuoteStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuoteStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuoteStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuoteStatus(v)
	case int:
		*s = QuoteStatus(v)
	}
	return nil
}
