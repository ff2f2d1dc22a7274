package catalog

import (
	"context"
	"errors"
)

// Name identifies one of the small reference tables under the config schema.
type Name string

const (
	EventType     Name = "tipo_evento_asistencia"
	MarkSource    Name = "fuente_marcacion"
	DayOutcome    Name = "estado_jornada"
	RequestStatus Name = "estado_solicitud"
)

// Well-known catalog codes.
const (
	CodeCheckIn  = "check_in"
	CodeCheckOut = "check_out"

	CodeSourceWeb = "web"

	CodeDayComplete   = "completo"
	CodeDayIncomplete = "incompleto"
	CodeDayNoRecords  = "sin_registros"
)

var ErrCodeNotFound = errors.New("catalog code not found")

// Repository looks a catalog code up in the database.
type Repository interface {
	// LookupID returns the row id for catalog+code, or ErrCodeNotFound.
	LookupID(ctx context.Context, catalog Name, code string) (string, error)
}
