package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// BusinessType represents the industry a business operates in. It selects the
// compliance documents the business is expected to hold.
type BusinessType string

const (
	BusinessTypeGeneral      BusinessType = "general"
	BusinessTypeRetail       BusinessType = "retail"
	BusinessTypeProfessional BusinessType = "professional_services"
	BusinessTypeConstruction BusinessType = "construction"
	BusinessTypeFoodService  BusinessType = "food_service"
	BusinessTypeTransport    BusinessType = "transport"
	BusinessTypeHealthcare   BusinessType = "healthcare"
)

// BusinessTypes lists every supported business type
func BusinessTypes() []BusinessType {
	return []BusinessType{
		BusinessTypeGeneral,
		BusinessTypeRetail,
		BusinessTypeProfessional,
		BusinessTypeConstruction,
		BusinessTypeFoodService,
		BusinessTypeTransport,
		BusinessTypeHealthcare,
	}
}

// Valid reports whether t is a supported business type
func (t BusinessType) Valid() bool {
	for _, known := range BusinessTypes() {
		if t == known {
			return true
		}
	}
	return false
}

func (t BusinessType) String() string {
	return string(t)
}

func (t BusinessType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *BusinessType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = BusinessType(str)
	return nil
}

func (t BusinessType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *BusinessType) Scan(value interface{}) error {
	if value == nil {
		*t = BusinessTypeGeneral
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = BusinessType(v)
	case []byte:
		*t = BusinessType(string(v))
	}
	return nil
}
