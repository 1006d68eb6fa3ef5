package vacation

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// EMPLOYEE
// =============================================================================

// Employee is an HR record. ReportsTo is nil for the top of the hierarchy.
type Employee struct {
	ID        int
	Name      string
	Area      string
	Position  string
	Email     string
	HireDate  Date
	ReportsTo *int
}

// =============================================================================
// LEAVE RECORD - An approved vacation instance
// =============================================================================

// LeaveRecord is an instance of consumed vacation. It only counts toward
// balance consumption once ApprovedAt is non-nil; records are immutable
// after approval. Start/End and RequestID are optional provenance.
type LeaveRecord struct {
	ID         int
	EmployeeID int
	Days       decimal.Decimal
	ApprovedAt *time.Time
	StartDate  *Date
	EndDate    *Date
	RequestID  *int
}

// Approved reports whether the record counts toward consumption at all.
func (r LeaveRecord) Approved() bool { return r.ApprovedAt != nil }

// =============================================================================
// LEAVE REQUEST
// =============================================================================

type RequestStatus string

const (
	StatusWaiting  RequestStatus = "waiting"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Terminal reports whether no further transitions are allowed. The only
// valid transitions are waiting -> approved and waiting -> rejected.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// LeaveRequest is a pending or decided vacation request. ReceiverID is the
// current approver; RequiresHR marks a request that needs a final HR-level
// approval step beyond the immediate receiver.
type LeaveRequest struct {
	ID         int
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Status     RequestStatus
	SenderID   int
	ReceiverID int
	Message    string
	RequiresHR bool
}

// =============================================================================
// DATE RANGE - Requested span(s) of a leave request
// =============================================================================

// DateRange is one requested date span. When a request carries several
// ranges, exactly one has IsPrimary set; that range is authoritative for
// day counting and entitlement deduction.
type DateRange struct {
	ID        int
	RequestID int
	Start     Date
	End       Date
	IsPrimary bool
}
