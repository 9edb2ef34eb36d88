// Package timeutil normalizes server timestamps and renders relative ages.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Parse reads an ISO-8601 timestamp from the server. Older server rows lack a
// zone designator even though they are stored in UTC; a bare timestamp gets a
// "Z" suffix before parsing so relative ages do not drift by the local offset.
func Parse(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if !hasZone(s) {
		s += "Z"
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05Z07:00", "2006-01-02 15:04:05.999999999Z07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func hasZone(s string) bool {
	if strings.HasSuffix(s, "Z") {
		return true
	}
	// A +hh:mm or -hh:mm offset sits after the time part; a '-' earlier in
	// the string is a date separator.
	if i := strings.IndexAny(s, "T "); i >= 0 {
		return strings.ContainsAny(s[i+1:], "+-")
	}
	return false
}

// RelativeAge renders how long ago t happened, relative to now:
// "just now", "Nm ago", "Nh ago", "Nd ago", then the plain date.
func RelativeAge(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
