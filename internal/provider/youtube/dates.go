package youtube

import (
	"strings"
	"time"
)

// Shelf headings are locale-dependent. The tables below map keyword
// sets to day offsets from the current local date; adding a locale is
// a matter of extending the relevant list.
var relativeDayKeywords = []struct {
	offset   int
	keywords []string
}{
	{0, []string{"today", "hoy", "hoje", "oggi", "aujourd'hui"}},
	{-1, []string{"yesterday", "ayer", "ontem", "ieri", "hier"}},
}

// "Last week" headings cover a range of days, so they resolve to a
// fixed 4-day-ago fallback rather than guessing per item.
var lastWeekKeywords = []string{"last week", "última semana", "semana passada"}

const lastWeekFallbackDays = 4

// resolveShelfDate maps a shelf heading to the timestamp its items are
// attributed to. Returns false for headings no table recognizes, which
// excludes the shelf's items.
func resolveShelfDate(label string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(label)

	for _, rel := range relativeDayKeywords {
		if containsAny(lower, rel.keywords) {
			return middayUTC(now.AddDate(0, 0, rel.offset)), true
		}
	}

	if d, err := time.ParseInLocation("2006-01-02", label, now.Location()); err == nil {
		return middayUTC(d), true
	}

	if containsAny(lower, lastWeekKeywords) {
		return now.Add(-lastWeekFallbackDays * 24 * time.Hour), true
	}

	return time.Time{}, false
}

// middayUTC anchors a calendar date at 12:00 UTC so day-window
// filtering is not thrown off by timezone boundaries.
func middayUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
