// Package time holds time helpers for storage boundaries
package time

import "time"

// UTCPtr returns t in UTC, or nil when t is zero so a column default applies
func UTCPtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
