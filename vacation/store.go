/*
store.go - Persistence interfaces for the vacation domain

PURPOSE:
  Defines the interface between the domain logic and the record store.
  Every consumer (Calculator, Traverser, RequestService) receives its
  store as an explicit constructor dependency so tests substitute a fake
  without global state. There is no package-level store client.

INTERFACES:
  EmployeeStore: keyed and equality-filtered employee access
  LeaveStore:    approved-leave range queries and leave record writes
  RequestStore:  request and range persistence
  Store:         all three, for implementations that back the whole service

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - vacation/store: in-memory store for tests and development
*/
package vacation

import "context"

// EmployeeStore provides employee records.
type EmployeeStore interface {
	// GetEmployee returns the employee or ErrEmployeeNotFound.
	GetEmployee(ctx context.Context, id int) (*Employee, error)

	// ListEmployees returns all employees.
	ListEmployees(ctx context.Context) ([]Employee, error)

	// CreateEmployee inserts a new employee and returns its id.
	CreateEmployee(ctx context.Context, e Employee) (int, error)

	// UpdateEmployee replaces an existing employee record.
	// Returns ErrEmployeeNotFound if the id does not resolve.
	UpdateEmployee(ctx context.Context, e Employee) error

	// DirectReports returns every employee whose ReportsTo is in managerIDs.
	// One call resolves one hierarchy level.
	DirectReports(ctx context.Context, managerIDs []int) ([]Employee, error)
}

// LeaveStore provides leave records.
type LeaveStore interface {
	// ApprovedLeaveInRange returns the employee's leave records whose
	// approved-at timestamp is non-null and falls within [from, to)
	// (half-open; from and to are day boundaries at midnight UTC).
	ApprovedLeaveInRange(ctx context.Context, employeeID int, from, to Date) ([]LeaveRecord, error)

	// LeaveByEmployee returns all leave records for an employee,
	// approved or not.
	LeaveByEmployee(ctx context.Context, employeeID int) ([]LeaveRecord, error)

	// CreateLeave inserts a leave record and returns its id. Records are
	// immutable once written; there is no update.
	CreateLeave(ctx context.Context, rec LeaveRecord) (int, error)
}

// RequestStore provides leave requests and their date ranges.
type RequestStore interface {
	// GetRequest returns the request or ErrRequestNotFound.
	GetRequest(ctx context.Context, id int) (*LeaveRequest, error)

	// RequestsBySender returns requests submitted by an employee.
	RequestsBySender(ctx context.Context, employeeID int) ([]LeaveRequest, error)

	// RequestsByReceiver returns requests currently awaiting an approver.
	RequestsByReceiver(ctx context.Context, employeeID int) ([]LeaveRequest, error)

	// CreateRequest inserts a request and returns its id.
	CreateRequest(ctx context.Context, req LeaveRequest) (int, error)

	// UpdateRequest replaces an existing request (status, receiver,
	// updated-at). Returns ErrRequestNotFound if the id does not resolve.
	UpdateRequest(ctx context.Context, req LeaveRequest) error

	// RangesByRequest returns all date ranges attached to a request.
	RangesByRequest(ctx context.Context, requestID int) ([]DateRange, error)

	// CreateRange inserts a date range and returns its id.
	CreateRange(ctx context.Context, r DateRange) (int, error)
}

// Store combines all persistence interfaces.
type Store interface {
	EmployeeStore
	LeaveStore
	RequestStore
}
