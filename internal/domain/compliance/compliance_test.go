package compliance

import (
	"testing"
	"time"

	"github.com/sangkips/bizhub-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestClassify(t *testing.T) {
	now := time.Date(2024, time.January, 15, 14, 30, 0, 0, time.UTC)
	today := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		hasFile bool
		expiry  *time.Time
		want    Status
	}{
		{"no file no expiry", false, nil, StatusMissing},
		{"no file with past expiry", false, datePtr(today.AddDate(0, 0, -10)), StatusMissing},
		{"no file with future expiry", false, datePtr(today.AddDate(1, 0, 0)), StatusMissing},
		{"file without expiry", true, nil, StatusValid},
		{"expired yesterday", true, datePtr(today.AddDate(0, 0, -1)), StatusExpired},
		{"expires today", true, datePtr(today), StatusExpired},
		{"expires tomorrow", true, datePtr(today.AddDate(0, 0, 1)), StatusExpiring},
		{"three months minus a day", true, datePtr(today.AddDate(0, 3, -1)), StatusExpiring},
		{"exactly three months", true, datePtr(today.AddDate(0, 3, 0)), StatusValid},
		{"three months plus a day", true, datePtr(today.AddDate(0, 3, 1)), StatusValid},
		{"next year", true, datePtr(today.AddDate(1, 0, 0)), StatusValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.hasFile, tt.expiry, now))
		})
	}
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("SAST", 2*60*60)
	now := time.Date(2024, time.March, 1, 23, 59, 0, 0, loc)
	// A date column comes back as UTC midnight.
	expiry := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusExpiring, Classify(true, &expiry, now))

	sameDay := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusExpired, Classify(true, &sameDay, now))
}

func TestStatusProgress(t *testing.T) {
	assert.Equal(t, 100, StatusValid.Progress())
	assert.Equal(t, 60, StatusExpiring.Progress())
	assert.Equal(t, 25, StatusExpired.Progress())
	assert.Equal(t, 0, StatusMissing.Progress())
	assert.Equal(t, 0, Status("").Progress())
}

func TestStatusNeedsAttention(t *testing.T) {
	assert.True(t, StatusExpiring.NeedsAttention())
	assert.True(t, StatusExpired.NeedsAttention())
	assert.False(t, StatusValid.NeedsAttention())
	assert.False(t, StatusMissing.NeedsAttention())
}

func TestRequiredFor(t *testing.T) {
	general := RequiredFor(enum.BusinessTypeGeneral)
	require.Len(t, general, len(baseTemplates))
	assert.Equal(t, "cipc-registration", general[0].Slot)

	construction := RequiredFor(enum.BusinessTypeConstruction)
	require.Len(t, construction, len(baseTemplates)+2)
	assert.Equal(t, "cidb-registration", construction[len(baseTemplates)].Slot)

	// Unknown types fall back to the base set.
	assert.Len(t, RequiredFor(enum.BusinessType("space_mining")), len(baseTemplates))

	// Callers cannot mutate the catalog through the returned slice.
	general[0].Name = "changed"
	assert.Equal(t, "CIPC Registration Certificate", RequiredFor(enum.BusinessTypeGeneral)[0].Name)
}

func TestRequiredFor_SlotsUnique(t *testing.T) {
	for _, bt := range enum.BusinessTypes() {
		seen := map[string]bool{}
		for _, tmpl := range RequiredFor(bt) {
			assert.False(t, seen[tmpl.Slot], "duplicate slot %s for %s", tmpl.Slot, bt)
			seen[tmpl.Slot] = true
		}
	}
}

func TestLookup(t *testing.T) {
	tmpl, ok := Lookup(enum.BusinessTypeFoodService, "certificate-of-acceptability")
	require.True(t, ok)
	assert.Equal(t, CategoryIndustry, tmpl.Category)

	_, ok = Lookup(enum.BusinessTypeRetail, "certificate-of-acceptability")
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		s := Summarize(nil)
		assert.Equal(t, Summary{}, s)
	})

	t.Run("mixed statuses", func(t *testing.T) {
		s := Summarize([]Status{StatusValid, StatusValid, StatusExpiring, StatusExpired, StatusMissing, StatusMissing})
		assert.Equal(t, 6, s.Total)
		assert.Equal(t, 2, s.ValidCount)
		assert.Equal(t, 1, s.ExpiringCount)
		assert.Equal(t, 1, s.ExpiredCount)
		assert.Equal(t, 2, s.MissingCount)
		assert.Equal(t, 33, s.OverallPercent)
	})

	t.Run("rounds half up", func(t *testing.T) {
		// 1 of 8 valid is 12.5%.
		statuses := []Status{StatusValid}
		for i := 0; i < 7; i++ {
			statuses = append(statuses, StatusMissing)
		}
		assert.Equal(t, 13, Summarize(statuses).OverallPercent)
	})

	t.Run("all valid", func(t *testing.T) {
		assert.Equal(t, 100, Summarize([]Status{StatusValid, StatusValid}).OverallPercent)
	})
}
