/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for the HTTP surface. These decouple the domain model
  from the wire contract; handlers convert at the boundary and the
  domain never sees JSON tags.

NAMING CONVENTION:
  - *DTO: response types returned to clients
  - *Request: request body types from clients

VALIDATION:
  Done in handlers; DTOs are pure data carriers.
*/
package api

import (
	"time"

	"github.com/hrcore/vacation-engine/vacation"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

type EmployeeDTO struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Area      string `json:"area"`
	Position  string `json:"position"`
	Email     string `json:"email"`
	HireDate  string `json:"hire_date"`
	ReportsTo *int   `json:"reports_to,omitempty"`
}

type CreateEmployeeRequest struct {
	Name      string `json:"name"`
	Area      string `json:"area"`
	Position  string `json:"position"`
	Email     string `json:"email"`
	HireDate  string `json:"hire_date"`
	ReportsTo *int   `json:"reports_to,omitempty"`
}

// =============================================================================
// BALANCE
// =============================================================================

type PeriodBalanceDTO struct {
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Entitlement float64 `json:"entitlement"`
	Taken       float64 `json:"taken"`
	Balance     float64 `json:"balance"`
}

type BalanceDTO struct {
	EmployeeID     int              `json:"employee_id"`
	AsOf           string           `json:"as_of"`
	Previous       PeriodBalanceDTO `json:"previous"`
	Current        PeriodBalanceDTO `json:"current"`
	TotalAvailable float64          `json:"total_available"`
}

// =============================================================================
// HIERARCHY
// =============================================================================

type LevelsDTO struct {
	EmployeeID        int    `json:"employee_id"`
	LevelsBelow       int    `json:"levels_below"`
	TotalSubordinates int    `json:"total_subordinates"`
	Role              string `json:"role"`
}

// =============================================================================
// REQUESTS
// =============================================================================

type RangeDTO struct {
	ID        int    `json:"id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	IsPrimary bool   `json:"is_primary"`
}

type RequestDTO struct {
	ID         int        `json:"id"`
	CreatedAt  string     `json:"created_at"`
	UpdatedAt  string     `json:"updated_at"`
	Status     string     `json:"status"`
	SenderID   int        `json:"sender_id"`
	ReceiverID int        `json:"receiver_id"`
	Message    string     `json:"message,omitempty"`
	RequiresHR bool       `json:"requires_hr"`
	Days       int        `json:"days,omitempty"`
	Ranges     []RangeDTO `json:"ranges,omitempty"`
}

type SubmitRangeRequest struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	IsPrimary bool   `json:"is_primary"`
}

type SubmitRequestRequest struct {
	SenderID   int                  `json:"sender_id"`
	ReceiverID int                  `json:"receiver_id"`
	Message    string               `json:"message,omitempty"`
	RequiresHR bool                 `json:"requires_hr"`
	Ranges     []SubmitRangeRequest `json:"ranges"`
}

type DecideRequestRequest struct {
	ApproverID int `json:"approver_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(e vacation.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:        e.ID,
		Name:      e.Name,
		Area:      e.Area,
		Position:  e.Position,
		Email:     e.Email,
		HireDate:  e.HireDate.String(),
		ReportsTo: e.ReportsTo,
	}
}

func toPeriodBalanceDTO(pb vacation.PeriodBalance) PeriodBalanceDTO {
	entitlement, _ := pb.Entitlement.Float64()
	taken, _ := pb.Taken.Float64()
	balance, _ := pb.Balance.Float64()
	return PeriodBalanceDTO{
		Start:       pb.Period.Start.String(),
		End:         pb.Period.End.String(),
		Entitlement: entitlement,
		Taken:       taken,
		Balance:     balance,
	}
}

func toBalanceDTO(b vacation.BalanceSummary) BalanceDTO {
	total, _ := b.TotalAvailable.Float64()
	return BalanceDTO{
		EmployeeID:     b.EmployeeID,
		AsOf:           b.AsOf.String(),
		Previous:       toPeriodBalanceDTO(b.Previous),
		Current:        toPeriodBalanceDTO(b.Current),
		TotalAvailable: total,
	}
}

func toRequestDTO(req vacation.LeaveRequest, ranges []vacation.DateRange, days int) RequestDTO {
	dto := RequestDTO{
		ID:         req.ID,
		CreatedAt:  req.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  req.UpdatedAt.UTC().Format(time.RFC3339),
		Status:     string(req.Status),
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
		RequiresHR: req.RequiresHR,
		Days:       days,
	}
	for _, r := range ranges {
		dto.Ranges = append(dto.Ranges, RangeDTO{
			ID:        r.ID,
			Start:     r.Start.String(),
			End:       r.End.String(),
			IsPrimary: r.IsPrimary,
		})
	}
	return dto
}
