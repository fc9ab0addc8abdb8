package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// TaskPriority represents how urgent a task is
type TaskPriority int

const (
	TaskPriorityLow    TaskPriority = 0
	TaskPriorityMedium TaskPriority = 1
	TaskPriorityHigh   TaskPriority = 2
)

func (p TaskPriority) String() string {
	names := [...]string{"Low", "Medium", "High"}
	if int(p) < 0 || int(p) >= len(names) {
		return "Medium"
	}
	return names[p]
}

// Valid reports whether p is one of the defined priorities
func (p TaskPriority) Valid() bool {
	return p >= TaskPriorityLow && p <= TaskPriorityHigh
}

func (p TaskPriority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *TaskPriority) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = TaskPriority(i)
		return nil
	}
	switch strings.ToLower(str) {
	case "low":
		*p = TaskPriorityLow
	case "medium":
		*p = TaskPriorityMedium
	case "high":
		*p = TaskPriorityHigh
	}
	return nil
}

func (p TaskPriority) Value() (driver.Value, error) {
	return int64(p), nil
}

func (p *TaskPriority) Scan(value interface{}) error {
	if value == nil {
		*p = TaskPriorityMedium
		return nil
	}
	switch v := value.(type) {
	case int64:
		*p = TaskPriority(v)
	case int:
		*p = TaskPriority(v)
	}
	return nil
}
