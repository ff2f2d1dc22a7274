package employee

import "time"

// Employee maps personas.empleado.
type Employee struct {
	ID         string
	CompanyID  string
	FirstNames string // nombres
	LastNames  string // apellidos
	Document   *string
	Email      *string
	UnitID     *string
	PositionID *string
	ManagerID  *string
	PhotoURL   *string
	HiredAt    *time.Time
	CreatedAt  *time.Time
}

// FullName follows the original "apellidos nombres" display convention.
func (e Employee) FullName() string {
	if e.LastNames == "" {
		return e.FirstNames
	}
	return e.LastNames + " " + e.FirstNames
}
