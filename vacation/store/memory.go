// Package store provides vacation.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/hrcore/vacation-engine/vacation"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	employees map[int]vacation.Employee
	leaves    map[int]vacation.LeaveRecord
	requests  map[int]vacation.LeaveRequest
	ranges    map[int]vacation.DateRange

	nextEmployeeID int
	nextLeaveID    int
	nextRequestID  int
	nextRangeID    int
}

func NewMemory() *Memory {
	return &Memory{
		employees:      make(map[int]vacation.Employee),
		leaves:         make(map[int]vacation.LeaveRecord),
		requests:       make(map[int]vacation.LeaveRequest),
		ranges:         make(map[int]vacation.DateRange),
		nextEmployeeID: 1,
		nextLeaveID:    1,
		nextRequestID:  1,
		nextRangeID:    1,
	}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (m *Memory) GetEmployee(_ context.Context, id int) (*vacation.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.employees[id]
	if !ok {
		return nil, vacation.ErrEmployeeNotFound
	}
	return &e, nil
}

func (m *Memory) ListEmployees(_ context.Context) ([]vacation.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]vacation.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *Memory) CreateEmployee(_ context.Context, e vacation.Employee) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.ID == 0 {
		e.ID = m.nextEmployeeID
	}
	if e.ID >= m.nextEmployeeID {
		m.nextEmployeeID = e.ID + 1
	}
	m.employees[e.ID] = e
	return e.ID, nil
}

func (m *Memory) UpdateEmployee(_ context.Context, e vacation.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.employees[e.ID]; !ok {
		return vacation.ErrEmployeeNotFound
	}
	m.employees[e.ID] = e
	return nil
}

func (m *Memory) DirectReports(_ context.Context, managerIDs []int) ([]vacation.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	managers := make(map[int]bool, len(managerIDs))
	for _, id := range managerIDs {
		managers[id] = true
	}

	var result []vacation.Employee
	for _, e := range m.employees {
		if e.ReportsTo != nil && managers[*e.ReportsTo] {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// =============================================================================
// LEAVE RECORDS
// =============================================================================

func (m *Memory) ApprovedLeaveInRange(_ context.Context, employeeID int, from, to vacation.Date) ([]vacation.LeaveRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lower, upper := from.Time(), to.Time()
	var result []vacation.LeaveRecord
	for _, rec := range m.leaves {
		if rec.EmployeeID != employeeID || rec.ApprovedAt == nil {
			continue
		}
		at := rec.ApprovedAt.UTC()
		if !at.Before(lower) && at.Before(upper) {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *Memory) LeaveByEmployee(_ context.Context, employeeID int) ([]vacation.LeaveRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []vacation.LeaveRecord
	for _, rec := range m.leaves {
		if rec.EmployeeID == employeeID {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *Memory) CreateLeave(_ context.Context, rec vacation.LeaveRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.ID == 0 {
		rec.ID = m.nextLeaveID
	}
	if rec.ID >= m.nextLeaveID {
		m.nextLeaveID = rec.ID + 1
	}
	m.leaves[rec.ID] = rec
	return rec.ID, nil
}

// =============================================================================
// REQUESTS AND RANGES
// =============================================================================

func (m *Memory) GetRequest(_ context.Context, id int) (*vacation.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	req, ok := m.requests[id]
	if !ok {
		return nil, vacation.ErrRequestNotFound
	}
	return &req, nil
}

func (m *Memory) RequestsBySender(_ context.Context, employeeID int) ([]vacation.LeaveRequest, error) {
	return m.filterRequests(func(r vacation.LeaveRequest) bool { return r.SenderID == employeeID })
}

func (m *Memory) RequestsByReceiver(_ context.Context, employeeID int) ([]vacation.LeaveRequest, error) {
	return m.filterRequests(func(r vacation.LeaveRequest) bool { return r.ReceiverID == employeeID })
}

func (m *Memory) filterRequests(keep func(vacation.LeaveRequest) bool) ([]vacation.LeaveRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []vacation.LeaveRequest
	for _, r := range m.requests {
		if keep(r) {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *Memory) CreateRequest(_ context.Context, req vacation.LeaveRequest) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if req.ID == 0 {
		req.ID = m.nextRequestID
	}
	if req.ID >= m.nextRequestID {
		m.nextRequestID = req.ID + 1
	}
	m.requests[req.ID] = req
	return req.ID, nil
}

func (m *Memory) UpdateRequest(_ context.Context, req vacation.LeaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.requests[req.ID]; !ok {
		return vacation.ErrRequestNotFound
	}
	m.requests[req.ID] = req
	return nil
}

func (m *Memory) RangesByRequest(_ context.Context, requestID int) ([]vacation.DateRange, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []vacation.DateRange
	for _, r := range m.ranges {
		if r.RequestID == requestID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *Memory) CreateRange(_ context.Context, r vacation.DateRange) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.ID == 0 {
		r.ID = m.nextRangeID
	}
	if r.ID >= m.nextRangeID {
		m.nextRangeID = r.ID + 1
	}
	m.ranges[r.ID] = r
	return r.ID, nil
}
