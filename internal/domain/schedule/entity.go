package schedule

import "time"

// Shift maps asistencia.turno. Start/end times are nullable time-of-day
// values; a second segment models split shifts.
type Shift struct {
	ID               string
	CompanyID        string
	Name             string
	StartTime        *time.Time // hora_inicio
	EndTime          *time.Time // hora_fin
	StartTime2       *time.Time // hora_inicio_2, split shifts
	EndTime2         *time.Time // hora_fin_2
	Weekdays         []int      // dias_semana, 1=Monday .. 7=Sunday
	ToleranceMinutes *int
	RequiresGPS      *bool
	RequiresPhoto    *bool
	CreatedAt        *time.Time
}

// GPSRequired resolves the nullable flag.
func (s *Shift) GPSRequired() bool {
	return s != nil && s.RequiresGPS != nil && *s.RequiresGPS
}

// PhotoRequired resolves the nullable flag.
func (s *Shift) PhotoRequired() bool {
	return s != nil && s.RequiresPhoto != nil && *s.RequiresPhoto
}

// Tolerance resolves the nullable tolerance, defaulting to zero minutes.
func (s *Shift) Tolerance() int {
	if s == nil || s.ToleranceMinutes == nil {
		return 0
	}
	return *s.ToleranceMinutes
}

// Assignment maps asistencia.asignacion_turno: a dated link between an
// employee and a shift. Overlapping assignments are a data-quality issue
// the resolver does not reject; the latest fecha_inicio wins.
type Assignment struct {
	ID         string
	CompanyID  string
	EmployeeID string
	ShiftID    string
	StartDate  time.Time
	EndDate    *time.Time
	IsRotating *bool
	IsActive   *bool
	CreatedAt  *time.Time
}
