/*
entitlement_test.go - Specification tests for entitlement and periods

These tests document the entitlement rules directly:
  - nothing vests during the first year
  - 20 days after completing the first year, +1 per further completed
    year, capped at 35
  - period resolution anchors to the hire-date anniversary
  - proration only applies when activation falls strictly inside a period
*/
package vacation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hrcore/vacation-engine/vacation"
)

func date(y int, m time.Month, d int) vacation.Date {
	return vacation.NewDate(y, m, d)
}

func wantDecimal(t *testing.T, got decimal.Decimal, want string, msg string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s: got %s, want %s", msg, got, want)
	}
}

// =============================================================================
// ENTITLEMENT AS OF A DATE
// =============================================================================

func TestEntitlementForDate_NothingVestsInFirstYear(t *testing.T) {
	hire := date(2024, time.March, 15)

	// Any reference date before hire + 1 year yields zero.
	for _, ref := range []vacation.Date{
		hire,
		date(2024, time.December, 31),
		date(2025, time.March, 14), // one day short of the anniversary
	} {
		got := vacation.EntitlementForDate(hire, ref)
		wantDecimal(t, got, "0", "entitlement before first anniversary at "+ref.String())
	}
}

func TestEntitlementForDate_GrowsOneDayPerYearCappedAt35(t *testing.T) {
	hire := date(2000, time.March, 15)

	cases := []struct {
		years int
		want  string
	}{
		{1, "20"},
		{2, "21"},
		{5, "24"},
		{16, "35"},
		{20, "35"}, // capped
		{40, "35"}, // still capped
	}
	for _, tc := range cases {
		ref := date(2000+tc.years, time.March, 15)
		got := vacation.EntitlementForDate(hire, ref)
		wantDecimal(t, got, tc.want, "entitlement after "+ref.String())
	}
}

func TestEntitlementForDate_AnniversaryNotYetReachedDecrements(t *testing.T) {
	hire := date(2020, time.March, 15)

	// Day before the fifth anniversary: only 4 years completed.
	got := vacation.EntitlementForDate(hire, date(2025, time.March, 14))
	wantDecimal(t, got, "23", "entitlement the day before an anniversary")

	// On the anniversary itself: 5 years completed.
	got = vacation.EntitlementForDate(hire, date(2025, time.March, 15))
	wantDecimal(t, got, "24", "entitlement on the anniversary")
}

// =============================================================================
// PERIOD RESOLUTION
// =============================================================================

func TestDetermineCurrentPeriod_WorkedExample(t *testing.T) {
	// GIVEN: hire date 2020-03-15, evaluation date 2025-06-01
	// THEN:  current period  [2025-03-15, 2026-03-15)
	//        previous period [2024-03-15, 2025-03-15)
	hire := date(2020, time.March, 15)
	today := date(2025, time.June, 1)

	current, previous := vacation.DetermineCurrentPeriod(hire, today)

	if !current.Start.Equal(date(2025, time.March, 15)) || !current.End.Equal(date(2026, time.March, 15)) {
		t.Errorf("current period = %s", current)
	}
	if !previous.Start.Equal(date(2024, time.March, 15)) || !previous.End.Equal(date(2025, time.March, 15)) {
		t.Errorf("previous period = %s", previous)
	}

	// Entitlement for the current period: 5 completed years = 20 + 4 = 24.
	got := vacation.EntitlementForPeriod(hire, current)
	wantDecimal(t, got, "24", "entitlement for current period")
}

func TestDetermineCurrentPeriod_BeforeAnniversaryThisYear(t *testing.T) {
	// Evaluation before this year's anniversary: the active period started
	// last year.
	hire := date(2020, time.March, 15)
	today := date(2025, time.February, 1)

	current, previous := vacation.DetermineCurrentPeriod(hire, today)

	if !current.Start.Equal(date(2024, time.March, 15)) || !current.End.Equal(date(2025, time.March, 15)) {
		t.Errorf("current period = %s", current)
	}
	if !previous.Start.Equal(date(2023, time.March, 15)) || !previous.End.Equal(date(2024, time.March, 15)) {
		t.Errorf("previous period = %s", previous)
	}
}

// =============================================================================
// PERIOD ENTITLEMENT BRANCHES
// =============================================================================

func TestEntitlementForPeriod_NotYetVested(t *testing.T) {
	// Activation on or after the period end: zero for the whole period.
	hire := date(2024, time.January, 10)
	period := vacation.Period{
		Start: date(2024, time.January, 10),
		End:   date(2025, time.January, 10), // activation == end
	}
	got := vacation.EntitlementForPeriod(hire, period)
	wantDecimal(t, got, "0", "entitlement during first employment year")
}

func TestEntitlementForPeriod_ActivationOnPeriodStartIsNotProrated(t *testing.T) {
	// Boundary equality takes the non-prorated branch: activation equal to
	// the period start means the employee is vested for the whole period.
	hire := date(2024, time.January, 10)
	period := vacation.Period{
		Start: date(2025, time.January, 10), // activation == start
		End:   date(2026, time.January, 10),
	}
	got := vacation.EntitlementForPeriod(hire, period)
	wantDecimal(t, got, "20", "entitlement when activation equals period start")
}

func TestEntitlementForPeriod_ProratesWhenActivationFallsInside(t *testing.T) {
	// GIVEN: hired 2023-07-01, so activation 2024-07-01, evaluated against
	//        the calendar-year period [2024-01-01, 2025-01-01)
	// THEN:  184 active days of a 365-day year at the 20-day rate:
	//        20 * 184 / 365 = 10.08 (rounded to 2 decimal places)
	hire := date(2023, time.July, 1)
	period := vacation.Period{
		Start: date(2024, time.January, 1),
		End:   date(2025, time.January, 1),
	}
	got := vacation.EntitlementForPeriod(hire, period)
	wantDecimal(t, got, "10.08", "prorated entitlement")
}

func TestEntitlementForPeriod_NeverNegative(t *testing.T) {
	hire := date(2030, time.June, 1)
	period := vacation.Period{
		Start: date(2024, time.January, 1),
		End:   date(2025, time.January, 1),
	}
	got := vacation.EntitlementForPeriod(hire, period)
	if got.IsNegative() {
		t.Errorf("entitlement went negative: %s", got)
	}
}

// =============================================================================
// FEB 29 HIRES - Clamped anniversaries vest on Feb 28
// =============================================================================

func TestEntitlementForDate_Feb29HireVestsOnClampedAnniversary(t *testing.T) {
	hire := date(2024, time.February, 29)

	// Day before the clamped anniversary: still in the first year.
	got := vacation.EntitlementForDate(hire, date(2025, time.February, 27))
	wantDecimal(t, got, "0", "entitlement before the clamped anniversary")

	// The clamped Feb 28 anniversary completes the year; counting against
	// the raw hire day (29) would miss it.
	got = vacation.EntitlementForDate(hire, date(2025, time.February, 28))
	wantDecimal(t, got, "20", "entitlement on the clamped anniversary")

	// A later leap year restores the real Feb 29 anniversary.
	got = vacation.EntitlementForDate(hire, date(2028, time.February, 28))
	wantDecimal(t, got, "22", "entitlement the day before a leap-year anniversary")
	got = vacation.EntitlementForDate(hire, date(2028, time.February, 29))
	wantDecimal(t, got, "23", "entitlement on a leap-year anniversary")
}

func TestEntitlementForPeriod_Feb29HireFirstVestedPeriod(t *testing.T) {
	// Period boundaries and the activation date clamp the same way, so the
	// first vested period starts exactly at activation and carries the full
	// base entitlement.
	hire := date(2024, time.February, 29)
	current, previous := vacation.DetermineCurrentPeriod(hire, date(2025, time.June, 1))

	if !current.Start.Equal(date(2025, time.February, 28)) || !current.End.Equal(date(2026, time.February, 28)) {
		t.Errorf("current period = %s", current)
	}
	wantDecimal(t, vacation.EntitlementForPeriod(hire, current), "20", "first vested period entitlement")
	wantDecimal(t, vacation.EntitlementForPeriod(hire, previous), "0", "first employment year entitlement")
}

// =============================================================================
// ACTIVATION DATE
// =============================================================================

func TestActivationDate_IsCalendarYearAddition(t *testing.T) {
	got := vacation.ActivationDate(date(2024, time.January, 10))
	if !got.Equal(date(2025, time.January, 10)) {
		t.Errorf("ActivationDate = %s, want 2025-01-10", got)
	}

	// Feb 29 hire activates on Feb 28 of the following non-leap year,
	// not 365/366 days later.
	got = vacation.ActivationDate(date(2024, time.February, 29))
	if !got.Equal(date(2025, time.February, 28)) {
		t.Errorf("ActivationDate(Feb 29) = %s, want 2025-02-28", got)
	}
}
