package vacation

import "time"

// =============================================================================
// ACCRUAL PERIOD - Half-open anniversary year [Start, End)
// =============================================================================

// Period is a half-open date interval [Start, End) anchored to the
// employee's hire-date anniversary. Balance is always evaluated against a
// period, never at a bare point in time.
type Period struct {
	Start Date
	End   Date
}

// Contains reports whether the date falls within [Start, End).
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.Before(p.End)
}

// ContainsTime reports whether a timestamp falls within the period.
// A timestamp exactly on a period boundary belongs to the incoming period:
// it satisfies >= Start of the later period and < End of the earlier one.
// This is a fixed convention, matching the half-open interval.
func (p Period) ContainsTime(t time.Time) bool {
	u := t.UTC()
	return !u.Before(p.Start.Time()) && u.Before(p.End.Time())
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + ")"
}

// =============================================================================
// PERIOD RESOLUTION
// =============================================================================

// DetermineCurrentPeriod resolves the two accrual periods relevant as of
// today for an employee hired on hire:
//
//  1. lastAnniv = anniversary of hire in today's year
//  2. if today precedes lastAnniv, the active period started the year before
//  3. current  = [lastAnniv, next anniversary)
//  4. previous = [anniversary one year before lastAnniv, lastAnniv)
func DetermineCurrentPeriod(hire, today Date) (current, previous Period) {
	lastAnniv := AnniversaryForYear(hire, today.Year)
	if today.Before(lastAnniv) {
		lastAnniv = AnniversaryForYear(hire, today.Year-1)
	}
	nextAnniv := AnniversaryForYear(hire, lastAnniv.Year+1)
	prevAnniv := AnniversaryForYear(hire, lastAnniv.Year-1)

	current = Period{Start: lastAnniv, End: nextAnniv}
	previous = Period{Start: prevAnniv, End: lastAnniv}
	return current, previous
}
