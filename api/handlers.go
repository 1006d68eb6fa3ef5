/*
handlers.go - HTTP API handlers for the vacation service

PURPOSE:
  Exposes the vacation domain over REST. Handles HTTP request/response
  and JSON serialization, delegates everything else to the domain.

ENDPOINTS:
  Employees:
    GET    /api/employees               List employees
    POST   /api/employees               Create employee
    GET    /api/employees/{id}          Get employee
    PUT    /api/employees/{id}          Update employee
    GET    /api/employees/{id}/balance  Vacation balance (optional ?as_of=)
    GET    /api/employees/{id}/levels   Hierarchy depth + approval role

  Requests:
    POST   /api/requests                Submit leave request
    GET    /api/requests                List by ?sender= or ?receiver=
    GET    /api/requests/{id}           Get request with ranges
    POST   /api/requests/{id}/approve   Approve (may re-route to HR)
    POST   /api/requests/{id}/reject    Reject (terminal)

ERROR HANDLING:
  - 400: invalid input (bad dates, reversed ranges, bad transitions)
  - 404: employee or request not found
  - 500: store failures (propagated, never retried here)

SECURITY NOTE:
  Authentication and session handling are external collaborators and not
  part of this service.

SEE ALSO:
  - dto.go: Request/response shapes
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hrcore/vacation-engine/vacation"
)

// =============================================================================
// HANDLER
// =============================================================================

// Handler holds all dependencies for HTTP handlers. The store is injected
// so tests can run against the in-memory implementation.
type Handler struct {
	store     vacation.Store
	calc      *vacation.Calculator
	traverser *vacation.Traverser
	requests  *vacation.RequestService
}

func NewHandler(store vacation.Store) *Handler {
	return &Handler{
		store:     store,
		calc:      vacation.NewCalculator(store, store),
		traverser: vacation.NewTraverser(store),
		requests:  vacation.NewRequestService(store, store, store),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.store.ListEmployees(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	emp, err := h.store.GetEmployee(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	hireDate, err := vacation.ParseDate(req.HireDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hire_date format (use YYYY-MM-DD)")
		return
	}

	emp := vacation.Employee{
		Name:      req.Name,
		Area:      req.Area,
		Position:  req.Position,
		Email:     req.Email,
		HireDate:  hireDate,
		ReportsTo: req.ReportsTo,
	}

	id, err := h.store.CreateEmployee(r.Context(), emp)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	emp.ID = id

	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	hireDate, err := vacation.ParseDate(req.HireDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hire_date format (use YYYY-MM-DD)")
		return
	}

	emp := vacation.Employee{
		ID:        id,
		Name:      req.Name,
		Area:      req.Area,
		Position:  req.Position,
		Email:     req.Email,
		HireDate:  hireDate,
		ReportsTo: req.ReportsTo,
	}

	if err := h.store.UpdateEmployee(r.Context(), emp); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// =============================================================================
// BALANCE HANDLER
// =============================================================================

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	asOf := vacation.Today()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := vacation.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid as_of format (use YYYY-MM-DD)")
			return
		}
		asOf = parsed
	}

	summary, err := h.calc.VacationBalanceAsOf(r.Context(), id, asOf)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceDTO(summary))
}

// =============================================================================
// HIERARCHY HANDLER
// =============================================================================

func (h *Handler) GetLevels(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	emp, err := h.store.GetEmployee(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	report, err := h.traverser.LevelsBelow(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LevelsDTO{
		EmployeeID:        id,
		LevelsBelow:       report.LevelsBelow,
		TotalSubordinates: report.TotalSubordinates,
		Role:              string(vacation.ApprovalRole(emp.Area, report.LevelsBelow)),
	})
}

// =============================================================================
// REQUEST HANDLERS
// =============================================================================

func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := vacation.SubmitInput{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
		RequiresHR: req.RequiresHR,
	}
	for _, rr := range req.Ranges {
		start, err := vacation.ParseDate(rr.Start)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid range start (use YYYY-MM-DD)")
			return
		}
		end, err := vacation.ParseDate(rr.End)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid range end (use YYYY-MM-DD)")
			return
		}
		in.Ranges = append(in.Ranges, vacation.RangeInput{Start: start, End: end, IsPrimary: rr.IsPrimary})
	}

	created, err := h.requests.Submit(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.writeRequestWithRanges(w, r, http.StatusCreated, created)
}

func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	req, err := h.store.GetRequest(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.writeRequestWithRanges(w, r, http.StatusOK, req)
}

func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	var (
		requests []vacation.LeaveRequest
		err      error
	)

	switch {
	case r.URL.Query().Get("sender") != "":
		id, convErr := strconv.Atoi(r.URL.Query().Get("sender"))
		if convErr != nil {
			writeError(w, http.StatusBadRequest, "Invalid sender id")
			return
		}
		requests, err = h.store.RequestsBySender(r.Context(), id)
	case r.URL.Query().Get("receiver") != "":
		id, convErr := strconv.Atoi(r.URL.Query().Get("receiver"))
		if convErr != nil {
			writeError(w, http.StatusBadRequest, "Invalid receiver id")
			return
		}
		requests, err = h.store.RequestsByReceiver(r.Context(), id)
	default:
		writeError(w, http.StatusBadRequest, "Provide ?sender= or ?receiver=")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]RequestDTO, 0, len(requests))
	for _, req := range requests {
		ranges, err := h.store.RangesByRequest(r.Context(), req.ID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		// A stored request without a primary range violates an invariant;
		// surface it rather than rendering a misleading zero day count.
		summary, err := vacation.SummarizeRequest(req, ranges)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		dtos = append(dtos, toRequestDTO(req, ranges, summary.Days))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, h.requests.Approve)
}

func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, h.requests.Reject)
}

func (h *Handler) decideRequest(w http.ResponseWriter, r *http.Request,
	decide func(ctx context.Context, requestID, approverID int) (*vacation.LeaveRequest, error)) {

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body DecideRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req, err := decide(r.Context(), id, body.ApproverID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.writeRequestWithRanges(w, r, http.StatusOK, req)
}

func (h *Handler) writeRequestWithRanges(w http.ResponseWriter, r *http.Request, status int, req *vacation.LeaveRequest) {
	ranges, err := h.store.RangesByRequest(r.Context(), req.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	summary, err := vacation.SummarizeRequest(*req, ranges)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, status, toRequestDTO(*req, ranges, summary.Days))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case vacation.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case vacation.IsClientError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, vacation.ErrNoHRApprover):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
