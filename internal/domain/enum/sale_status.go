package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// SaleStatus represents the payment state of a sale
type SaleStatus int

const (
	SaleStatusPending   SaleStatus = 0
	SaleStatusPaid      SaleStatus = 1
	SaleStatusCancelled SaleStatus = 2
)

var saleStatusNames = [...]string{"Pending", "Paid", "Cancelled"}

func (s SaleStatus) String() string {
	if int(s) < 0 || int(s) >= len(saleStatusNames) {
		return "Pending"
	}
	return saleStatusNames[s]
}

// Valid reports whether s is one of the defined statuses
func (s SaleStatus) Valid() bool {
	return int(s) >= 0 && int(s) < len(saleStatusNames)
}

// ParseSaleStatus accepts a status name (case-insensitive) or its numeric value
func ParseSaleStatus(str string) (SaleStatus, bool) {
	for i, name := range saleStatusNames {
		if strings.EqualFold(name, str) {
			return SaleStatus(i), true
		}
	}
	if len(str) == 1 && str[0] >= '0' && str[0] <= '9' {
		s := SaleStatus(str[0] - '0')
		return s, s.Valid()
	}
	return SaleStatusPending, false
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	if parsed, ok := ParseSaleStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s SaleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SaleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SaleStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SaleStatus(v)
	case int:
		*s = SaleStatus(v)
	}
	return nil
}
