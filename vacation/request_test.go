package vacation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrcore/vacation-engine/vacation"
	"github.com/hrcore/vacation-engine/vacation/store"
)

type requestFixture struct {
	mem     *store.Memory
	svc     *vacation.RequestService
	sender  int
	manager int
	hr      int
}

func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()
	ctx := context.Background()
	mem := store.NewMemory()

	mk := func(name, area string) int {
		id, err := mem.CreateEmployee(ctx, vacation.Employee{
			Name:     name,
			Area:     area,
			Email:    name + "@example.com",
			HireDate: vacation.NewDate(2020, time.March, 15),
		})
		require.NoError(t, err)
		return id
	}

	f := &requestFixture{
		mem:     mem,
		sender:  mk("sender", "Engineering"),
		manager: mk("manager", "Engineering"),
		hr:      mk("hrlead", "HR"),
	}
	f.svc = vacation.NewRequestService(mem, mem, mem)
	f.svc.Now = func() time.Time {
		return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	}
	return f
}

func (f *requestFixture) submit(t *testing.T, requiresHR bool) *vacation.LeaveRequest {
	t.Helper()
	req, err := f.svc.Submit(context.Background(), vacation.SubmitInput{
		SenderID:   f.sender,
		ReceiverID: f.manager,
		Message:    "summer trip",
		RequiresHR: requiresHR,
		Ranges: []vacation.RangeInput{
			{Start: vacation.NewDate(2025, time.July, 7), End: vacation.NewDate(2025, time.July, 11), IsPrimary: true},
		},
	})
	require.NoError(t, err)
	return req
}

// =============================================================================
// SUBMISSION
// =============================================================================

func TestSubmit_CreatesWaitingRequestWithRanges(t *testing.T) {
	f := newRequestFixture(t)
	req := f.submit(t, false)

	assert.Equal(t, vacation.StatusWaiting, req.Status)
	assert.Equal(t, f.sender, req.SenderID)
	assert.Equal(t, f.manager, req.ReceiverID)

	ranges, err := f.mem.RangesByRequest(context.Background(), req.ID)
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.True(t, ranges[0].IsPrimary)

	summary, err := vacation.SummarizeRequest(*req, ranges)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Days) // Jul 7..Jul 11 inclusive
}

func TestSubmit_RejectsMissingPrimaryRange(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.svc.Submit(context.Background(), vacation.SubmitInput{
		SenderID:   f.sender,
		ReceiverID: f.manager,
		Ranges: []vacation.RangeInput{
			{Start: vacation.NewDate(2025, time.July, 7), End: vacation.NewDate(2025, time.July, 11)},
		},
	})
	assert.ErrorIs(t, err, vacation.ErrNoPrimaryRange)
}

func TestSubmit_RejectsMultiplePrimaryRanges(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.svc.Submit(context.Background(), vacation.SubmitInput{
		SenderID:   f.sender,
		ReceiverID: f.manager,
		Ranges: []vacation.RangeInput{
			{Start: vacation.NewDate(2025, time.July, 7), End: vacation.NewDate(2025, time.July, 8), IsPrimary: true},
			{Start: vacation.NewDate(2025, time.August, 1), End: vacation.NewDate(2025, time.August, 2), IsPrimary: true},
		},
	})
	assert.ErrorIs(t, err, vacation.ErrNoPrimaryRange)
}

func TestSubmit_RejectsReversedRange(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.svc.Submit(context.Background(), vacation.SubmitInput{
		SenderID:   f.sender,
		ReceiverID: f.manager,
		Ranges: []vacation.RangeInput{
			{Start: vacation.NewDate(2025, time.July, 11), End: vacation.NewDate(2025, time.July, 7), IsPrimary: true},
		},
	})
	assert.ErrorIs(t, err, vacation.ErrInvalidRange)
}

func TestSubmit_UnknownSender(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.svc.Submit(context.Background(), vacation.SubmitInput{
		SenderID:   999,
		ReceiverID: f.manager,
		Ranges: []vacation.RangeInput{
			{Start: vacation.NewDate(2025, time.July, 7), End: vacation.NewDate(2025, time.July, 8), IsPrimary: true},
		},
	})
	assert.ErrorIs(t, err, vacation.ErrEmployeeNotFound)
}

// =============================================================================
// APPROVAL
// =============================================================================

func TestApprove_FinalizesAndWritesLeaveRecord(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()
	req := f.submit(t, false)

	approved, err := f.svc.Approve(ctx, req.ID, f.manager)
	require.NoError(t, err)
	assert.Equal(t, vacation.StatusApproved, approved.Status)

	records, err := f.mem.LeaveByEmployee(ctx, f.sender)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "5", rec.Days.String())
	require.NotNil(t, rec.ApprovedAt, "approved leave must carry a non-null approved-at")
	require.NotNil(t, rec.RequestID)
	assert.Equal(t, req.ID, *rec.RequestID)
}

func TestApprove_RequiresHRReRoutesInsteadOfFinalizing(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()
	req := f.submit(t, true)

	// Manager approval of an HR-flagged request forwards it to HR.
	forwarded, err := f.svc.Approve(ctx, req.ID, f.manager)
	require.NoError(t, err)
	assert.Equal(t, vacation.StatusWaiting, forwarded.Status)
	assert.Equal(t, f.hr, forwarded.ReceiverID)

	// No leave is recorded until HR signs off.
	records, err := f.mem.LeaveByEmployee(ctx, f.sender)
	require.NoError(t, err)
	assert.Empty(t, records)

	// HR approval finalizes.
	final, err := f.svc.Approve(ctx, req.ID, f.hr)
	require.NoError(t, err)
	assert.Equal(t, vacation.StatusApproved, final.Status)

	records, err = f.mem.LeaveByEmployee(ctx, f.sender)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestApprove_NoHRAvailable(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	sender, err := mem.CreateEmployee(ctx, vacation.Employee{
		Name: "sender", Area: "Engineering", HireDate: vacation.NewDate(2020, time.March, 15),
	})
	require.NoError(t, err)
	manager, err := mem.CreateEmployee(ctx, vacation.Employee{
		Name: "manager", Area: "Engineering", HireDate: vacation.NewDate(2019, time.March, 15),
	})
	require.NoError(t, err)

	svc := vacation.NewRequestService(mem, mem, mem)
	req, err := svc.Submit(ctx, vacation.SubmitInput{
		SenderID:   sender,
		ReceiverID: manager,
		RequiresHR: true,
		Ranges: []vacation.RangeInput{
			{Start: vacation.NewDate(2025, time.July, 7), End: vacation.NewDate(2025, time.July, 8), IsPrimary: true},
		},
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, req.ID, manager)
	assert.ErrorIs(t, err, vacation.ErrNoHRApprover)
}

// =============================================================================
// TERMINAL TRANSITIONS
// =============================================================================

func TestApprove_TerminalStatusRejected(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()
	req := f.submit(t, false)

	_, err := f.svc.Approve(ctx, req.ID, f.manager)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, req.ID, f.manager)
	require.Error(t, err)
	assert.ErrorIs(t, err, vacation.ErrTerminalStatus)

	var transition *vacation.TransitionError
	assert.ErrorAs(t, err, &transition)
	assert.Equal(t, vacation.StatusApproved, transition.From)
}

func TestReject_IsTerminal(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()
	req := f.submit(t, false)

	rejected, err := f.svc.Reject(ctx, req.ID, f.manager)
	require.NoError(t, err)
	assert.Equal(t, vacation.StatusRejected, rejected.Status)

	// Rejection is terminal: neither approval nor a second rejection works.
	_, err = f.svc.Approve(ctx, req.ID, f.manager)
	assert.ErrorIs(t, err, vacation.ErrTerminalStatus)
	_, err = f.svc.Reject(ctx, req.ID, f.manager)
	assert.ErrorIs(t, err, vacation.ErrTerminalStatus)

	// No leave is ever recorded for a rejected request.
	records, err := f.mem.LeaveByEmployee(ctx, f.sender)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestApprovedRequestFeedsBalance(t *testing.T) {
	// End to end through the domain: approval writes the leave record that
	// the balance aggregation then subtracts.
	f := newRequestFixture(t)
	ctx := context.Background()
	req := f.submit(t, false)

	_, err := f.svc.Approve(ctx, req.ID, f.manager)
	require.NoError(t, err)

	calc := vacation.NewCalculator(f.mem, f.mem)
	summary, err := calc.VacationBalanceAsOf(ctx, f.sender, vacation.NewDate(2025, time.June, 1))
	require.NoError(t, err)

	// Approval timestamp 2025-06-01 falls in the current period
	// [2025-03-15, 2026-03-15) of an employee hired 2020-03-15.
	assert.Equal(t, "5", summary.Current.Taken.String())
	assert.Equal(t, "19", summary.Current.Balance.String()) // 24 - 5
}
