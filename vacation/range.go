package vacation

// =============================================================================
// RANGE DAY COUNTING - Inclusive spans
// =============================================================================

// RangeDays returns the inclusive day count of [start, end]: a range that
// starts and ends on the same date counts as 1 day. A reversed range is a
// caller error and returns ErrInvalidRange.
func RangeDays(start, end Date) (int, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return DaysBetween(start, end) + 1, nil
}

// Days returns the range's inclusive day count.
func (r DateRange) Days() (int, error) {
	return RangeDays(r.Start, r.End)
}

// PrimaryRange returns the range marked primary. Exactly one range per
// request carries the flag; a request without one is in an invalid state.
func PrimaryRange(ranges []DateRange) (DateRange, error) {
	for _, r := range ranges {
		if r.IsPrimary {
			return r, nil
		}
	}
	return DateRange{}, ErrNoPrimaryRange
}

// =============================================================================
// REQUEST TRANSLATION - Stored rows to a domain shape with day spans
// =============================================================================

// RequestSummary is a leave request joined with its authoritative range
// and the computed inclusive day count.
type RequestSummary struct {
	Request LeaveRequest
	Primary DateRange
	Days    int
}

// SummarizeRequest maps a stored request and its ranges into a
// RequestSummary. Fails with ErrNoPrimaryRange or ErrInvalidRange when the
// stored rows violate the range invariants.
func SummarizeRequest(req LeaveRequest, ranges []DateRange) (RequestSummary, error) {
	primary, err := PrimaryRange(ranges)
	if err != nil {
		return RequestSummary{}, err
	}
	days, err := primary.Days()
	if err != nil {
		return RequestSummary{}, err
	}
	return RequestSummary{Request: req, Primary: primary, Days: days}, nil
}
