/*
entitlement.go - Vacation entitlement rules

PURPOSE:
  Computes how many vacation days an employee is owed, either as of a
  reference date or for a whole accrual period.

THE RULE:
  Nothing vests during the first year of employment. On completing the
  first year the employee is entitled to 20 days per accrual year, plus
  one extra day for every further completed year, capped at +15
  (35 days maximum).

PRORATION:
  When eligibility begins partway through a period (the activation date
  falls strictly inside it), the full-period entitlement is scaled by the
  active fraction of the period and rounded to 2 decimal places. The
  non-prorated branches yield whole-day counts by construction and are
  not rounded.

PRECISION:
  All arithmetic uses decimal.Decimal. Entitlement values are never
  passed through float64 on the way to a balance.

SEE ALSO:
  - period.go: Period resolution
  - balance.go: Consumes these functions per period
*/
package vacation

import "github.com/shopspring/decimal"

const (
	// BaseEntitlementDays is granted after completing the first year.
	BaseEntitlementDays = 20

	// MaxSeniorityBonusDays caps the +1 day per additional completed year.
	MaxSeniorityBonusDays = 15
)

// ActivationDate returns the date at which an employee first becomes
// eligible to request leave: the hire date shifted forward by exactly one
// calendar year (not 365 days). Feb 29 hires activate on Feb 28 of the
// following (non-leap) year, consistent with AnniversaryForYear.
func ActivationDate(hire Date) Date {
	return AnniversaryForYear(hire, hire.Year+1)
}

// CompletedYears returns the number of full employment years completed as
// of ref: the calendar year difference, minus one if the anniversary has
// not yet occurred within ref's year. The comparison goes through
// AnniversaryForYear so a Feb 29 hire completes a year on the clamped
// Feb 28 anniversary, the same date every period boundary uses.
func CompletedYears(hire, ref Date) int {
	years := ref.Year - hire.Year
	if ref.Before(AnniversaryForYear(hire, ref.Year)) {
		years--
	}
	return years
}

// EntitlementForDate returns the full-period entitlement in days as of a
// reference date. Employees with less than one completed year have no
// entitlement.
func EntitlementForDate(hire, ref Date) decimal.Decimal {
	years := CompletedYears(hire, ref)
	if years < 1 {
		return decimal.Zero
	}
	extra := years - 1
	if extra > MaxSeniorityBonusDays {
		extra = MaxSeniorityBonusDays
	}
	return decimal.NewFromInt(int64(BaseEntitlementDays + extra))
}

// EntitlementForPeriod returns the entitlement for one accrual period.
//
// Three branches, keyed on where the activation date falls:
//   - at or after the period end: not yet vested, 0
//   - at or before the period start: fully vested, entitlement fixed at
//     the period-start rate (boundary equality takes this branch)
//   - strictly inside the period: prorated by days active over the length
//     of the year the period ends in, rounded to 2 decimal places
func EntitlementForPeriod(hire Date, p Period) decimal.Decimal {
	activation := ActivationDate(hire)

	if activation.AfterOrEqual(p.End) {
		return decimal.Zero
	}
	if activation.BeforeOrEqual(p.Start) {
		return EntitlementForDate(hire, p.Start)
	}

	daysActive := DaysBetween(activation, p.End)
	full := EntitlementForDate(hire, activation)
	return full.
		Mul(decimal.NewFromInt(int64(daysActive))).
		Div(decimal.NewFromInt(int64(DaysInYear(p.End)))).
		Round(2)
}
