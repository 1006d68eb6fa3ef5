/*
hierarchy.go - Organizational hierarchy traversal

PURPOSE:
  Breadth-first descent over the reports-to relation. Starting from one
  employee, each store query resolves one full hierarchy level (all
  employees whose ReportsTo is in the current frontier); the result set
  becomes the next frontier until a level comes back empty.

  The per-level query is an inherent data dependency, not an optimization
  opportunity: level N+1 cannot be asked for before level N has resolved.

HARDENING:
  A naive descent loops forever on a cyclic reports-to graph. The
  traverser keeps a visited set (an id never re-enters a frontier) and
  bounds the descent depth, failing with ErrHierarchyDepthExceeded
  instead of hanging.

SEE ALSO:
  - ApprovalRole: classification over (area, levelsBelow), computed purely
    from its inputs.
*/
package vacation

import (
	"context"
	"fmt"
	"strings"
)

// DefaultMaxHierarchyDepth bounds the breadth-first descent. Real
// organizations are nowhere near this deep; hitting the bound means the
// reports-to graph is malformed.
const DefaultMaxHierarchyDepth = 64

// LevelsReport summarizes an employee's subtree.
type LevelsReport struct {
	LevelsBelow       int
	TotalSubordinates int
}

// Traverser walks the reports-to hierarchy.
type Traverser struct {
	employees EmployeeStore
	maxDepth  int
}

func NewTraverser(employees EmployeeStore) *Traverser {
	return &Traverser{employees: employees, maxDepth: DefaultMaxHierarchyDepth}
}

// WithMaxDepth overrides the depth bound. Intended for tests.
func (t *Traverser) WithMaxDepth(depth int) *Traverser {
	t.maxDepth = depth
	return t
}

// LevelsBelow counts how many hierarchy tiers sit beneath an employee and
// how many subordinates they contain in total. An employee with no reports
// yields {0, 0}. The first store failure aborts the traversal.
func (t *Traverser) LevelsBelow(ctx context.Context, employeeID int) (LevelsReport, error) {
	var report LevelsReport

	visited := map[int]bool{employeeID: true}
	frontier := []int{employeeID}

	for len(frontier) > 0 {
		if report.LevelsBelow >= t.maxDepth {
			return LevelsReport{}, fmt.Errorf("descending from employee %d: %w", employeeID, ErrHierarchyDepthExceeded)
		}

		reports, err := t.employees.DirectReports(ctx, frontier)
		if err != nil {
			return LevelsReport{}, fmt.Errorf("fetching reports of level %d: %w", report.LevelsBelow, err)
		}

		next := make([]int, 0, len(reports))
		for _, e := range reports {
			if visited[e.ID] {
				continue
			}
			visited[e.ID] = true
			next = append(next, e.ID)
		}
		if len(next) == 0 {
			break
		}

		report.LevelsBelow++
		report.TotalSubordinates += len(next)
		frontier = next
	}

	return report, nil
}

// =============================================================================
// APPROVAL ROLE - Pure classification over (area, levelsBelow)
// =============================================================================

type Role string

const (
	RoleEmployee       Role = "employee"
	RoleManager        Role = "manager"
	RoleSeniorApprover Role = "senior_approver"
	RoleHR             Role = "hr"
)

// hrArea is the organizational area whose members hold final sign-off on
// requests flagged as requiring HR approval.
const hrArea = "HR"

// ApprovalRole classifies a user's approval authority from their area and
// hierarchy depth alone. It is a pure function: callers must pass current
// values, never state captured before an async refresh resolved.
//
// Convention: HR area members are HR approvers regardless of depth;
// exactly two levels of subordinates marks a senior approver; at least one
// level marks a manager.
func ApprovalRole(area string, levelsBelow int) Role {
	if strings.EqualFold(strings.TrimSpace(area), hrArea) {
		return RoleHR
	}
	switch {
	case levelsBelow == 2:
		return RoleSeniorApprover
	case levelsBelow >= 1:
		return RoleManager
	default:
		return RoleEmployee
	}
}
