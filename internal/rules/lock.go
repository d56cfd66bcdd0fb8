// Package rules derives round, pick and standings state from data fetched
// from the LMS API. Every function here is pure.
package rules

import (
	"strings"
	"time"
)

// lockTimeLayouts are the timestamp formats accepted from the API
var lockTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// IsLocked reports whether picks are closed. A nil lock time means the round
// is always open; otherwise the round locks at exactly lockTime.
func IsLocked(lockTime *time.Time, now time.Time) bool {
	if lockTime == nil || lockTime.IsZero() {
		return false
	}
	return !now.Before(*lockTime)
}

// ParseLockTime parses a lock timestamp. An empty string returns nil without error.
func ParseLockTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var lastErr error
	for _, layout := range lockTimeLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return &t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
