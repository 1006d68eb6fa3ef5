package vacation_test

import (
	"testing"
	"time"

	"github.com/hrcore/vacation-engine/vacation"
)

// =============================================================================
// LEAP YEARS
// =============================================================================

func TestIsLeapYear(t *testing.T) {
	cases := []struct {
		year int
		want bool
	}{
		{2000, true},  // divisible by 400
		{1900, false}, // divisible by 100 but not 400
		{2024, true},
		{2023, false},
	}
	for _, tc := range cases {
		if got := vacation.IsLeapYear(tc.year); got != tc.want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", tc.year, got, tc.want)
		}
	}
}

func TestDaysInYear(t *testing.T) {
	if got := vacation.DaysInYear(vacation.NewDate(2024, time.June, 1)); got != 366 {
		t.Errorf("DaysInYear(2024) = %d, want 366", got)
	}
	if got := vacation.DaysInYear(vacation.NewDate(2025, time.June, 1)); got != 365 {
		t.Errorf("DaysInYear(2025) = %d, want 365", got)
	}
}

// =============================================================================
// ANNIVERSARY PROJECTION
// =============================================================================

func TestAnniversaryForYear(t *testing.T) {
	hire := vacation.NewDate(2020, time.March, 15)

	got := vacation.AnniversaryForYear(hire, 2025)
	want := vacation.NewDate(2025, time.March, 15)
	if !got.Equal(want) {
		t.Errorf("AnniversaryForYear = %s, want %s", got, want)
	}
}

func TestAnniversaryForYear_Feb29ClampsInNonLeapYear(t *testing.T) {
	// A Feb 29 anchor must clamp to Feb 28, never roll over to Mar 1.
	hire := vacation.NewDate(2020, time.February, 29)

	got := vacation.AnniversaryForYear(hire, 2021)
	want := vacation.NewDate(2021, time.February, 28)
	if !got.Equal(want) {
		t.Errorf("AnniversaryForYear(Feb 29, 2021) = %s, want %s", got, want)
	}

	// In a leap year the anchor projects unchanged.
	got = vacation.AnniversaryForYear(hire, 2024)
	want = vacation.NewDate(2024, time.February, 29)
	if !got.Equal(want) {
		t.Errorf("AnniversaryForYear(Feb 29, 2024) = %s, want %s", got, want)
	}
}

// =============================================================================
// DAY SPANS
// =============================================================================

func TestDaysBetween(t *testing.T) {
	a := vacation.NewDate(2020, time.March, 15)
	if got := vacation.DaysBetween(a, a.AddDays(1)); got != 1 {
		t.Errorf("DaysBetween(+1 day) = %d, want 1", got)
	}
	if got := vacation.DaysBetween(a, a); got != 0 {
		t.Errorf("DaysBetween(same date) = %d, want 0", got)
	}

	// Spanning a leap day.
	from := vacation.NewDate(2024, time.February, 28)
	to := vacation.NewDate(2024, time.March, 1)
	if got := vacation.DaysBetween(from, to); got != 2 {
		t.Errorf("DaysBetween(Feb 28, Mar 1, leap year) = %d, want 2", got)
	}
}

func TestRangeDays_SingleDayCountsAsOne(t *testing.T) {
	start := vacation.NewDate(2025, time.June, 1)
	days, err := vacation.RangeDays(start, start)
	if err != nil {
		t.Fatalf("RangeDays(start, start) error: %v", err)
	}
	if days != 1 {
		t.Errorf("RangeDays(start, start) = %d, want 1", days)
	}
}

func TestRangeDays_Inclusive(t *testing.T) {
	start := vacation.NewDate(2025, time.June, 1)
	end := vacation.NewDate(2025, time.June, 5)
	days, err := vacation.RangeDays(start, end)
	if err != nil {
		t.Fatalf("RangeDays error: %v", err)
	}
	if days != 5 {
		t.Errorf("RangeDays(Jun 1, Jun 5) = %d, want 5", days)
	}
}

func TestRangeDays_ReversedRangeIsAnError(t *testing.T) {
	// Order matters: a reversed range is a caller error, not a valid span.
	start := vacation.NewDate(2025, time.June, 5)
	end := vacation.NewDate(2025, time.June, 1)
	if _, err := vacation.RangeDays(start, end); err == nil {
		t.Error("RangeDays(reversed) did not fail")
	}
}

// =============================================================================
// PERIOD MEMBERSHIP
// =============================================================================

func TestPeriodContainsTime_BoundaryBelongsToIncomingPeriod(t *testing.T) {
	// An approval timestamped exactly on the shared anniversary boundary
	// counts toward the incoming (later) period, per the half-open
	// convention: >= Start of the later period, < End of the earlier one.
	boundary := vacation.NewDate(2025, time.March, 15)
	earlier := vacation.Period{Start: vacation.NewDate(2024, time.March, 15), End: boundary}
	later := vacation.Period{Start: boundary, End: vacation.NewDate(2026, time.March, 15)}

	at := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	if earlier.ContainsTime(at) {
		t.Error("boundary timestamp must not count toward the outgoing period")
	}
	if !later.ContainsTime(at) {
		t.Error("boundary timestamp must count toward the incoming period")
	}
}
