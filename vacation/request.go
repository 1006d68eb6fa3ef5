/*
request.go - Leave request lifecycle

PURPOSE:
  Submission, approval, and rejection of leave requests. The request
  itself carries no balance effect; a request only touches balances at
  final approval, when an immutable LeaveRecord is written with the
  primary range's inclusive day count and a non-null approved-at.

STATE MACHINE:
  waiting -> approved
  waiting -> rejected
  Nothing transitions out of approved or rejected.

TWO-STEP APPROVAL:
  A request flagged RequiresHR needs a final HR-level sign-off beyond the
  immediate receiver. When a non-HR approver approves such a request it is
  re-routed: the status stays waiting and the receiver becomes an HR
  employee. The HR approval then finalizes it.
*/
package vacation

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RequestService drives the leave request lifecycle. All collaborators are
// injected; Now is swappable for tests and defaults to time.Now.
type RequestService struct {
	employees EmployeeStore
	requests  RequestStore
	leaves    LeaveStore

	Now func() time.Time
}

func NewRequestService(employees EmployeeStore, requests RequestStore, leaves LeaveStore) *RequestService {
	return &RequestService{
		employees: employees,
		requests:  requests,
		leaves:    leaves,
		Now:       time.Now,
	}
}

// =============================================================================
// SUBMIT
// =============================================================================

// RangeInput is one requested date span.
type RangeInput struct {
	Start     Date
	End       Date
	IsPrimary bool
}

// SubmitInput is a new leave request.
type SubmitInput struct {
	SenderID   int
	ReceiverID int
	Message    string
	RequiresHR bool
	Ranges     []RangeInput
}

// Submit validates and persists a new waiting request with its ranges.
// Exactly one range must be primary and every range must be well-formed.
//
// The request and range inserts are not wrapped in a transaction: a store
// failure partway through leaves the request and any earlier ranges
// persisted. Callers must treat a Submit error as the request not having
// been created; readers surface a stored request missing its primary range
// as ErrNoPrimaryRange rather than counting it.
func (s *RequestService) Submit(ctx context.Context, in SubmitInput) (*LeaveRequest, error) {
	if _, err := s.employees.GetEmployee(ctx, in.SenderID); err != nil {
		return nil, err
	}
	if _, err := s.employees.GetEmployee(ctx, in.ReceiverID); err != nil {
		return nil, err
	}

	primaries := 0
	for _, r := range in.Ranges {
		if _, err := RangeDays(r.Start, r.End); err != nil {
			return nil, err
		}
		if r.IsPrimary {
			primaries++
		}
	}
	if primaries != 1 {
		return nil, ErrNoPrimaryRange
	}

	now := s.Now().UTC()
	req := LeaveRequest{
		CreatedAt:  now,
		UpdatedAt:  now,
		Status:     StatusWaiting,
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Message:    in.Message,
		RequiresHR: in.RequiresHR,
	}

	id, err := s.requests.CreateRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.ID = id

	for _, r := range in.Ranges {
		if _, err := s.requests.CreateRange(ctx, DateRange{
			RequestID: id,
			Start:     r.Start,
			End:       r.End,
			IsPrimary: r.IsPrimary,
		}); err != nil {
			return nil, fmt.Errorf("creating range for request %d: %w", id, err)
		}
	}

	return &req, nil
}

// =============================================================================
// APPROVE / REJECT
// =============================================================================

// Approve advances a waiting request. A non-HR approver approving a
// RequiresHR request re-routes it to an HR receiver instead of finalizing;
// otherwise the request becomes approved and a LeaveRecord is written for
// the sender with the primary range's inclusive day count.
func (s *RequestService) Approve(ctx context.Context, requestID, approverID int) (*LeaveRequest, error) {
	req, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status.Terminal() {
		return nil, &TransitionError{RequestID: requestID, From: req.Status, To: StatusApproved}
	}

	approver, err := s.employees.GetEmployee(ctx, approverID)
	if err != nil {
		return nil, err
	}

	now := s.Now().UTC()

	if req.RequiresHR && ApprovalRole(approver.Area, 0) != RoleHR {
		hr, err := s.findHRReceiver(ctx, req.SenderID)
		if err != nil {
			return nil, err
		}
		req.ReceiverID = hr.ID
		req.UpdatedAt = now
		if err := s.requests.UpdateRequest(ctx, *req); err != nil {
			return nil, fmt.Errorf("re-routing request %d to HR: %w", requestID, err)
		}
		return req, nil
	}

	ranges, err := s.requests.RangesByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("loading ranges for request %d: %w", requestID, err)
	}
	summary, err := SummarizeRequest(*req, ranges)
	if err != nil {
		return nil, err
	}

	req.Status = StatusApproved
	req.UpdatedAt = now
	if err := s.requests.UpdateRequest(ctx, *req); err != nil {
		return nil, fmt.Errorf("approving request %d: %w", requestID, err)
	}

	start, end := summary.Primary.Start, summary.Primary.End
	if _, err := s.leaves.CreateLeave(ctx, LeaveRecord{
		EmployeeID: req.SenderID,
		Days:       decimal.NewFromInt(int64(summary.Days)),
		ApprovedAt: &now,
		StartDate:  &start,
		EndDate:    &end,
		RequestID:  &req.ID,
	}); err != nil {
		return nil, fmt.Errorf("recording leave for request %d: %w", requestID, err)
	}

	return req, nil
}

// Reject moves a waiting request to rejected. Rejection is terminal.
func (s *RequestService) Reject(ctx context.Context, requestID, approverID int) (*LeaveRequest, error) {
	req, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status.Terminal() {
		return nil, &TransitionError{RequestID: requestID, From: req.Status, To: StatusRejected}
	}
	if _, err := s.employees.GetEmployee(ctx, approverID); err != nil {
		return nil, err
	}

	req.Status = StatusRejected
	req.UpdatedAt = s.Now().UTC()
	if err := s.requests.UpdateRequest(ctx, *req); err != nil {
		return nil, fmt.Errorf("rejecting request %d: %w", requestID, err)
	}
	return req, nil
}

// findHRReceiver picks the HR employee a two-step request is routed to.
// The sender themselves is never chosen.
func (s *RequestService) findHRReceiver(ctx context.Context, senderID int) (*Employee, error) {
	all, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing employees for HR routing: %w", err)
	}
	for i := range all {
		if all[i].ID == senderID {
			continue
		}
		if ApprovalRole(all[i].Area, 0) == RoleHR {
			return &all[i], nil
		}
	}
	return nil, ErrNoHRApprover
}
