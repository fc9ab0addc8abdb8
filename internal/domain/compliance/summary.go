package compliance

import "math"

// Summary aggregates the statuses of a business's documents.
type Summary struct {
	OverallPercent int `json:"overall_percent"`
	Total          int `json:"total"`
	ValidCount     int `json:"valid_count"`
	ExpiringCount  int `json:"expiring_count"`
	ExpiredCount   int `json:"expired_count"`
	MissingCount   int `json:"missing_count"`
}

// Summarize tallies statuses. OverallPercent is the rounded share of valid
// documents and is 0 for an empty list.
func Summarize(statuses []Status) Summary {
	var s Summary
	for _, st := range statuses {
		switch st {
		case StatusValid:
			s.ValidCount++
		case StatusExpiring:
			s.ExpiringCount++
		case StatusExpired:
			s.ExpiredCount++
		default:
			s.MissingCount++
		}
	}
	s.Total = len(statuses)
	if s.Total > 0 {
		s.OverallPercent = int(math.Round(100 * float64(s.ValidCount) / float64(s.Total)))
	}
	return s
}
