// Package dbtime normalizes timestamps before they are persisted.
// Rows always store UTC so ordering comparisons are stable across hosts.
package dbtime

import "time"

// DBNow returns the current time normalized for storage.
func DBNow() time.Time {
	return DBTime(time.Now())
}

// DBTime converts t to the canonical storage timezone.
func DBTime(t time.Time) time.Time {
	return t.UTC()
}
