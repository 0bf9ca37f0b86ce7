package util

import (
	"strings"
	"time"
)

func NowISO() string {
	return time.Now().Format(time.RFC3339)
}

// ParseTimestamp reads the timestamps we write (RFC3339) and the
// "2006-01-02 15:04:05" form the earliest sheets used. Zero time on
// anything else.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}

func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
