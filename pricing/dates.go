package pricing

import (
	"strings"
	"time"
)

// JST is the fixed UTC+9 offset used for all calendar math. Check-in
// dates are hotel-local calendar dates, never machine-local ones.
var JST = time.FixedZone("JST", 9*60*60)

var dowNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
var dowNamesJP = [7]string{"日", "月", "火", "水", "木", "金", "土"}

var checkinLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseCheckinDateJst parses a check-in date string ("2025-10-10",
// "2025/10/10" and a few looser forms) as midnight JST.
func ParseCheckinDateJst(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	normalized := strings.ReplaceAll(s, "/", "-")
	for _, layout := range checkinLayouts {
		if t, err := time.ParseInLocation(layout, normalized, JST); err == nil {
			return t, true
		}
	}
	if t, err := time.ParseInLocation("Jan 2, 2006", s, JST); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// jstDow returns the day-of-week index (Sunday=0) of t in JST.
func jstDow(t time.Time) int {
	return int(t.In(JST).Weekday())
}

// dateIsoJst renders t's JST calendar date as YYYY-MM-DD.
func dateIsoJst(t time.Time) string {
	return t.In(JST).Format("2006-01-02")
}

func addDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}
