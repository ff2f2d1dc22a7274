package user

import "time"

// User maps seguridad.usuario. A user may or may not be linked to an
// employee record; superadmins typically are not.
type User struct {
	ID           string
	CompanyID    string
	EmployeeID   *string
	Username     string
	Email        *string
	PasswordHash *string
	IsSuperadmin bool
	Active       bool
	CreatedAt    *time.Time
}
