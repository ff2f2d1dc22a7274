package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event maps asistencia.evento_asistencia: one punch. Immutable once
// created except for metadata enrichment when journal recomputation fails.
type Event struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	TypeID      string  // config.tipo_evento_asistencia
	SourceID    *string // config.fuente_marcacion
	RecordedAt  time.Time
	Lat         *decimal.Decimal // numeric(10,7)
	Lng         *decimal.Decimal
	InsideFence *bool // nil = not evaluated
	PhotoURL    *string
	IP          *string
	DeviceID    *string
	Metadata    map[string]any
}

// Journal maps asistencia.jornada_calculada: the derived per-employee
// per-day summary. Fully derivable from the day's events plus the active
// shift and rule; a projection, never a source of truth.
type Journal struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	Date            time.Time // calendar date
	FirstIn         *time.Time
	LastOut         *time.Time
	WorkedMinutes   int
	LatenessMinutes int
	OvertimeMinutes int
	OutcomeID       *string // config.estado_jornada
	Details         map[string]any
	ComputedAt      time.Time
}
