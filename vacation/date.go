/*
Package vacation implements anniversary-based vacation entitlement and
balance calculation.

PURPOSE:
  This package contains the domain core of the vacation service: calendar
  date arithmetic, accrual period resolution, entitlement calculation with
  proration, balance aggregation over approved leave, the organizational
  hierarchy traversal, and the leave request lifecycle.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: A calendar date (year/month/day) with no time-of-day component.
    All period-boundary arithmetic happens on Date, never on raw
    time.Time values, so a timestamp's clock or zone can never shift a
    boundary by a day.
  - Anniversary projection: mapping a hire date onto a target year.
  - Leap-year handling: Feb 29 anchors clamp to Feb 28 in non-leap years.

DESIGN PRINCIPLES:
  1. Dates are values: comparisons and arithmetic never mutate.
  2. Precision: entitlement math uses decimal.Decimal (see entitlement.go).
  3. Explicit dependencies: stores are injected, never global (see balance.go).

SEE ALSO:
  - period.go: Accrual period resolution
  - entitlement.go: Entitlement and proration rules
  - balance.go: Balance aggregation over approved leave
*/
package vacation

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar date, no time-of-day
// =============================================================================

// Date is a calendar date. The zero value is not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Today returns the current calendar date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return Date{Year: now.Year(), Month: now.Month(), Day: now.Day()}
}

// ParseDate parses an ISO date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf truncates a timestamp to its UTC calendar date.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return Date{Year: u.Year(), Month: u.Month(), Day: u.Day()}
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Comparison goes through Time() so denormalized values (e.g. {2025, Jan, 32})
// compare by the calendar date they actually name.
func (d Date) Before(other Date) bool { return d.Time().Before(other.Time()) }
func (d Date) After(other Date) bool  { return d.Time().After(other.Time()) }
func (d Date) Equal(other Date) bool  { return d.Time().Equal(other.Time()) }

func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return DateOf(d.Time().AddDate(0, 0, n)) }

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) String() string { return d.Time().Format("2006-01-02") }

// =============================================================================
// CALENDAR UTILITIES
// =============================================================================

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in the date's calendar year.
func DaysInYear(d Date) int {
	if IsLeapYear(d.Year) {
		return 366
	}
	return 365
}

// AnniversaryForYear projects an anchor date onto a target year: same month
// and day, year substituted. A Feb 29 anchor clamps to Feb 28 when the
// target year is not a leap year; the platform's date rollover (which would
// yield Mar 1) is never relied on.
func AnniversaryForYear(anchor Date, year int) Date {
	day := anchor.Day
	if anchor.Month == time.February && day == 29 && !IsLeapYear(year) {
		day = 28
	}
	return Date{Year: year, Month: anchor.Month, Day: day}
}

// DaysBetween returns the ceiling of (b - a) expressed in whole days.
// Valid flows always call it with b >= a.
func DaysBetween(a, b Date) int {
	diff := b.Time().Sub(a.Time())
	days := int(diff.Hours() / 24)
	if diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}
