package schedule

import (
	"context"
	"time"
)

// AssignmentRepository resolves which shift governs an employee on a date.
type AssignmentRepository interface {
	// ActiveShiftFor returns the shift of the active assignment covering the
	// date (fecha_inicio <= date, fecha_fin null or >= date), picking the
	// most recently started one. (nil, nil) when the employee has none.
	ActiveShiftFor(ctx context.Context, companyID, employeeID string, date time.Time) (*Shift, error)
}
