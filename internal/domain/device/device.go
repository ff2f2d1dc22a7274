package device

import (
	"context"
	"time"
)

// Device maps asistencia.dispositivo_empleado: a device registered to one
// employee of one company.
type Device struct {
	ID         string
	CompanyID  string
	EmployeeID string
	DeviceUID  *string
	LastUsedAt *time.Time
	Active     *bool
}

type Repository interface {
	// IsRegistered reports whether the device id exists and belongs to this
	// exact company+employee. An unknown or foreign device is never an error.
	IsRegistered(ctx context.Context, id, companyID, employeeID string) (bool, error)
}
