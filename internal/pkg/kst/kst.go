// Package kst provides the time helpers shared by the scheduling and timeline
// packages.
//
// Every civil-day computation in the application happens in Korea Standard
// Time, a fixed UTC+9 offset without daylight saving. Instants themselves are
// always kept in UTC.
package kst

import (
	"fmt"
	"time"
)

const offsetSeconds = 9 * 60 * 60

// Location is the fixed UTC+9 zone. It does not depend on the tz database.
var Location = time.FixedZone("KST", offsetSeconds)

const (
	// ISOLayout is the format used for every instant leaving the application.
	ISOLayout = "2006-01-02T15:04:05.000Z"

	// DateLayout is the format of a civil date.
	DateLayout = "2006-01-02"
)

// MidnightOf returns the instant at which the KST calendar day containing t
// begins, expressed in UTC.
func MidnightOf(t time.Time) time.Time {
	local := t.In(Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Location).UTC()
}

// FormatISO renders t in UTC with millisecond precision and a Z suffix.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// ParseISO parses an RFC 3339 timestamp (fractional seconds optional, any
// offset) and returns it in UTC.
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Date is a civil calendar day in KST.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the KST calendar day containing t.
func DateOf(t time.Time) Date {
	local := t.In(Location)
	return Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

// NewDate normalizes its arguments the way time.Date does, so
// NewDate(2026, 1, 32) is February 1st.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, Location))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, Location)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Midnight returns the instant the day begins, in UTC.
func (d Date) Midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, Location).UTC()
}

// End returns the last representable millisecond of the day (23:59:59.999 KST).
func (d Date) End() time.Time {
	return d.AddDays(1).Midnight().Add(-time.Millisecond)
}

// AddDays returns the date n days later (or earlier when n is negative).
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// Before reports whether d comes strictly before other.
func (d Date) Before(other Date) bool {
	return d.Midnight().Before(other.Midnight())
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
