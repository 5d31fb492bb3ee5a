package reconcile

import "time"

// Accepted date-time layouts, most specific first. The mobile clients send
// RFC3339; older records carry bare dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RentalDays computes the billable day count for a date range. Both ends are
// normalised to midnight and the whole-day difference taken; anything under a
// day bills as 1 (rental days are nights-equivalent, not calendar spans).
// Unparseable input yields 0; the caller must treat the order as invalid.
func RentalDays(start, end string) int {
	s, ok := parseDate(start)
	if !ok {
		return 0
	}
	e, ok := parseDate(end)
	if !ok {
		return 0
	}
	days := int(atMidnight(e).Sub(atMidnight(s)).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}
