package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// LeadStatus represents where a lead sits in the sales pipeline
type LeadStatus int

const (
	LeadStatusNew       LeadStatus = 0
	LeadStatusContacted LeadStatus = 1
	LeadStatusQualified LeadStatus = 2
	LeadStatusProposal  LeadStatus = 3
	LeadStatusWon       LeadStatus = 4
	LeadStatusLost      LeadStatus = 5
)

var leadStatusNames = [...]string{"New", "Contacted", "Qualified", "Proposal", "Won", "Lost"}

func (s LeadStatus) String() string {
	if int(s) < 0 || int(s) >= len(leadStatusNames) {
		return "New"
	}
	return leadStatusNames[s]
}

// Valid reports whether s is one of the defined statuses
func (s LeadStatus) Valid() bool {
	return int(s) >= 0 && int(s) < len(leadStatusNames)
}

// ParseLeadStatus accepts a status name (case-insensitive) or its numeric value
func ParseLeadStatus(str string) (LeadStatus, bool) {
	for i, name := range leadStatusNames {
		if strings.EqualFold(name, str) {
			return LeadStatus(i), true
		}
	}
	if len(str) == 1 && str[0] >= '0' && str[0] <= '9' {
		s := LeadStatus(str[0] - '0')
		return s, s.Valid()
	}
	return LeadStatusNew, false
}

// LeadStatuses returns every status in pipeline order
func LeadStatuses() []LeadStatus {
	out := make([]LeadStatus, len(leadStatusNames))
	for i := range leadStatusNames {
		out[i] = LeadStatus(i)
	}
	return out
}

func (s LeadStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *LeadStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = LeadStatus(i)
		return nil
	}
	if parsed, ok := ParseLeadStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s LeadStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *LeadStatus) Scan(value interface{}) error {
	if value == nil {
		*s = LeadStatusNew
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = LeadStatus(v)
	case int:
		*s = LeadStatus(v)
	}
	return nil
}
