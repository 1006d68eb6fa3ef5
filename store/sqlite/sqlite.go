/*
Package sqlite provides a SQLite-backed implementation of the vacation
storage interfaces.

PURPOSE:
  Implements vacation.Store (EmployeeStore, LeaveStore, RequestStore)
  using SQLite via database/sql. The same patterns apply to PostgreSQL
  with minor SQL dialect differences.

KEY TABLES:
  employees:      HR records, reports_to references the hierarchy
  leave_records:  Approved vacation instances (immutable once written)
  leave_requests: Request lifecycle rows
  request_ranges: Date spans per request, one marked primary

DATE HANDLING:
  Calendar dates are stored as ISO text (YYYY-MM-DD) and timestamps as
  RFC3339 UTC. Approved-leave range queries compare the approved_at
  timestamp against [from, to) day boundaries directly in SQL.

WAL MODE:
  Opened with WAL for better read concurrency and crash recovery.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a versioned
  migration tool instead.

SEE ALSO:
  - vacation/store.go: Interface definitions
  - vacation/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hrcore/vacation-engine/vacation"
	"github.com/shopspring/decimal"
)

// Store implements vacation.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		area TEXT NOT NULL DEFAULT '',
		position TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL UNIQUE,
		hire_date TEXT NOT NULL,
		reports_to INTEGER REFERENCES employees(id)
	);

	CREATE INDEX IF NOT EXISTS idx_employees_reports_to
		ON employees(reports_to) WHERE reports_to IS NOT NULL;

	CREATE TABLE IF NOT EXISTS leave_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id INTEGER NOT NULL REFERENCES employees(id),
		days TEXT NOT NULL,
		approved_at TEXT,
		start_date TEXT,
		end_date TEXT,
		request_id INTEGER REFERENCES leave_requests(id)
	);

	-- Balance calculation hot path: approved leave per employee per period
	CREATE INDEX IF NOT EXISTS idx_leave_employee_approved
		ON leave_records(employee_id, approved_at) WHERE approved_at IS NOT NULL;

	CREATE TABLE IF NOT EXISTS leave_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		status TEXT NOT NULL,
		sender_id INTEGER NOT NULL REFERENCES employees(id),
		receiver_id INTEGER NOT NULL REFERENCES employees(id),
		message TEXT NOT NULL DEFAULT '',
		requires_hr INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_requests_sender ON leave_requests(sender_id);
	CREATE INDEX IF NOT EXISTS idx_requests_receiver ON leave_requests(receiver_id);

	CREATE TABLE IF NOT EXISTS request_ranges (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		request_id INTEGER NOT NULL REFERENCES leave_requests(id),
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		is_primary INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_ranges_request ON request_ranges(request_id);

	-- At most one primary range per request
	CREATE UNIQUE INDEX IF NOT EXISTS idx_ranges_one_primary
		ON request_ranges(request_id) WHERE is_primary = 1;
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

const employeeColumns = "id, name, area, position, email, hire_date, reports_to"

func (s *Store) GetEmployee(ctx context.Context, id int) (*vacation.Employee, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE id = ?", id)

	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, vacation.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying employee %d: %w", id, err)
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]vacation.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+employeeColumns+" FROM employees ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()
	return collectEmployees(rows)
}

func (s *Store) CreateEmployee(ctx context.Context, e vacation.Employee) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (name, area, position, email, hire_date, reports_to)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Name, e.Area, e.Position, e.Email, e.HireDate.String(), nullableInt(e.ReportsTo))
	if err != nil {
		return 0, fmt.Errorf("inserting employee: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("inserting employee: %w", err)
	}
	return int(id), nil
}

func (s *Store) UpdateEmployee(ctx context.Context, e vacation.Employee) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE employees SET name = ?, area = ?, position = ?, email = ?,
		 hire_date = ?, reports_to = ? WHERE id = ?`,
		e.Name, e.Area, e.Position, e.Email, e.HireDate.String(), nullableInt(e.ReportsTo), e.ID)
	if err != nil {
		return fmt.Errorf("updating employee %d: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating employee %d: %w", e.ID, err)
	}
	if n == 0 {
		return vacation.ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) DirectReports(ctx context.Context, managerIDs []int) ([]vacation.Employee, error) {
	if len(managerIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(managerIDs)), ",")
	args := make([]any, len(managerIDs))
	for i, id := range managerIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE reports_to IN ("+placeholders+") ORDER BY id",
		args...)
	if err != nil {
		return nil, fmt.Errorf("querying direct reports: %w", err)
	}
	defer rows.Close()
	return collectEmployees(rows)
}

// =============================================================================
// LEAVE RECORDS
// =============================================================================

const leaveColumns = "id, employee_id, days, approved_at, start_date, end_date, request_id"

func (s *Store) ApprovedLeaveInRange(ctx context.Context, employeeID int, from, to vacation.Date) ([]vacation.LeaveRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+leaveColumns+` FROM leave_records
		 WHERE employee_id = ? AND approved_at IS NOT NULL
		   AND approved_at >= ? AND approved_at < ?
		 ORDER BY id`,
		employeeID,
		from.Time().Format(time.RFC3339),
		to.Time().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("querying approved leave: %w", err)
	}
	defer rows.Close()
	return collectLeave(rows)
}

func (s *Store) LeaveByEmployee(ctx context.Context, employeeID int) ([]vacation.LeaveRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+leaveColumns+" FROM leave_records WHERE employee_id = ? ORDER BY id",
		employeeID)
	if err != nil {
		return nil, fmt.Errorf("querying leave records: %w", err)
	}
	defer rows.Close()
	return collectLeave(rows)
}

func (s *Store) CreateLeave(ctx context.Context, rec vacation.LeaveRecord) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO leave_records (employee_id, days, approved_at, start_date, end_date, request_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.EmployeeID,
		rec.Days.String(),
		nullableTime(rec.ApprovedAt),
		nullableDate(rec.StartDate),
		nullableDate(rec.EndDate),
		nullableInt(rec.RequestID))
	if err != nil {
		return 0, fmt.Errorf("inserting leave record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("inserting leave record: %w", err)
	}
	return int(id), nil
}

// =============================================================================
// REQUESTS AND RANGES
// =============================================================================

const requestColumns = "id, created_at, updated_at, status, sender_id, receiver_id, message, requires_hr"

func (s *Store) GetRequest(ctx context.Context, id int) (*vacation.LeaveRequest, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM leave_requests WHERE id = ?", id)

	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, vacation.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying request %d: %w", id, err)
	}
	return req, nil
}

func (s *Store) RequestsBySender(ctx context.Context, employeeID int) ([]vacation.LeaveRequest, error) {
	return s.queryRequests(ctx,
		"SELECT "+requestColumns+" FROM leave_requests WHERE sender_id = ? ORDER BY id", employeeID)
}

func (s *Store) RequestsByReceiver(ctx context.Context, employeeID int) ([]vacation.LeaveRequest, error) {
	return s.queryRequests(ctx,
		"SELECT "+requestColumns+" FROM leave_requests WHERE receiver_id = ? ORDER BY id", employeeID)
}

func (s *Store) queryRequests(ctx context.Context, query string, args ...any) ([]vacation.LeaveRequest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying requests: %w", err)
	}
	defer rows.Close()

	var result []vacation.LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning request: %w", err)
		}
		result = append(result, *req)
	}
	return result, rows.Err()
}

func (s *Store) CreateRequest(ctx context.Context, req vacation.LeaveRequest) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO leave_requests (created_at, updated_at, status, sender_id, receiver_id, message, requires_hr)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.CreatedAt.UTC().Format(time.RFC3339),
		req.UpdatedAt.UTC().Format(time.RFC3339),
		string(req.Status),
		req.SenderID,
		req.ReceiverID,
		req.Message,
		boolToInt(req.RequiresHR))
	if err != nil {
		return 0, fmt.Errorf("inserting request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("inserting request: %w", err)
	}
	return int(id), nil
}

func (s *Store) UpdateRequest(ctx context.Context, req vacation.LeaveRequest) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE leave_requests SET updated_at = ?, status = ?, receiver_id = ?, requires_hr = ?
		 WHERE id = ?`,
		req.UpdatedAt.UTC().Format(time.RFC3339),
		string(req.Status),
		req.ReceiverID,
		boolToInt(req.RequiresHR),
		req.ID)
	if err != nil {
		return fmt.Errorf("updating request %d: %w", req.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating request %d: %w", req.ID, err)
	}
	if n == 0 {
		return vacation.ErrRequestNotFound
	}
	return nil
}

func (s *Store) RangesByRequest(ctx context.Context, requestID int) ([]vacation.DateRange, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, request_id, start_date, end_date, is_primary
		 FROM request_ranges WHERE request_id = ? ORDER BY id`, requestID)
	if err != nil {
		return nil, fmt.Errorf("querying ranges for request %d: %w", requestID, err)
	}
	defer rows.Close()

	var result []vacation.DateRange
	for rows.Next() {
		var (
			r          vacation.DateRange
			start, end string
			primary    int
		)
		if err := rows.Scan(&r.ID, &r.RequestID, &start, &end, &primary); err != nil {
			return nil, fmt.Errorf("scanning range: %w", err)
		}
		if r.Start, err = vacation.ParseDate(start); err != nil {
			return nil, err
		}
		if r.End, err = vacation.ParseDate(end); err != nil {
			return nil, err
		}
		r.IsPrimary = primary != 0
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *Store) CreateRange(ctx context.Context, r vacation.DateRange) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO request_ranges (request_id, start_date, end_date, is_primary)
		 VALUES (?, ?, ?, ?)`,
		r.RequestID, r.Start.String(), r.End.String(), boolToInt(r.IsPrimary))
	if err != nil {
		return 0, fmt.Errorf("inserting range: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("inserting range: %w", err)
	}
	return int(id), nil
}

// =============================================================================
// ROW SCANNING
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (*vacation.Employee, error) {
	var (
		e         vacation.Employee
		hireDate  string
		reportsTo sql.NullInt64
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Area, &e.Position, &e.Email, &hireDate, &reportsTo); err != nil {
		return nil, err
	}

	var err error
	if e.HireDate, err = vacation.ParseDate(hireDate); err != nil {
		return nil, err
	}
	if reportsTo.Valid {
		v := int(reportsTo.Int64)
		e.ReportsTo = &v
	}
	return &e, nil
}

func collectEmployees(rows *sql.Rows) ([]vacation.Employee, error) {
	var result []vacation.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

func scanLeave(row scanner) (*vacation.LeaveRecord, error) {
	var (
		rec        vacation.LeaveRecord
		days       string
		approvedAt sql.NullString
		startDate  sql.NullString
		endDate    sql.NullString
		requestID  sql.NullInt64
	)
	if err := row.Scan(&rec.ID, &rec.EmployeeID, &days, &approvedAt, &startDate, &endDate, &requestID); err != nil {
		return nil, err
	}

	var err error
	if rec.Days, err = decimal.NewFromString(days); err != nil {
		return nil, fmt.Errorf("parsing days %q: %w", days, err)
	}
	if approvedAt.Valid {
		t, err := time.Parse(time.RFC3339, approvedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing approved_at %q: %w", approvedAt.String, err)
		}
		rec.ApprovedAt = &t
	}
	if startDate.Valid {
		d, err := vacation.ParseDate(startDate.String)
		if err != nil {
			return nil, err
		}
		rec.StartDate = &d
	}
	if endDate.Valid {
		d, err := vacation.ParseDate(endDate.String)
		if err != nil {
			return nil, err
		}
		rec.EndDate = &d
	}
	if requestID.Valid {
		v := int(requestID.Int64)
		rec.RequestID = &v
	}
	return &rec, nil
}

func collectLeave(rows *sql.Rows) ([]vacation.LeaveRecord, error) {
	var result []vacation.LeaveRecord
	for rows.Next() {
		rec, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning leave record: %w", err)
		}
		result = append(result, *rec)
	}
	return result, rows.Err()
}

func scanRequest(row scanner) (*vacation.LeaveRequest, error) {
	var (
		req                  vacation.LeaveRequest
		createdAt, updatedAt string
		status               string
		requiresHR           int
	)
	if err := row.Scan(&req.ID, &createdAt, &updatedAt, &status,
		&req.SenderID, &req.ReceiverID, &req.Message, &requiresHR); err != nil {
		return nil, err
	}

	var err error
	if req.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	if req.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at %q: %w", updatedAt, err)
	}
	req.Status = vacation.RequestStatus(status)
	req.RequiresHR = requiresHR != 0
	return &req, nil
}

// =============================================================================
// NULLABLE HELPERS
// =============================================================================

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(time.RFC3339)
}

func nullableDate(v *vacation.Date) any {
	if v == nil {
		return nil
	}
	return v.String()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
