package attendance

import (
	"context"
	"time"
)

// EventRepository defines data access for attendance events. Methods carry
// companyID to keep tenants isolated. Events are append-only from this
// core's perspective; UpdateMetadata is the single sanctioned exception.
type EventRepository interface {
	// Create inserts the event and returns it with id filled in.
	Create(ctx context.Context, event Event) (Event, error)

	// ListByRange returns the employee's events with from <= registrado_el < to,
	// ordered by registrado_el ascending.
	ListByRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Event, error)

	// LastByEmployee returns the employee's most recent event across all
	// days, or (nil, nil) when there is none. Feeds the double-submit guard.
	LastByEmployee(ctx context.Context, companyID, employeeID string) (*Event, error)

	// UpdateMetadata replaces the event's metadata map.
	UpdateMetadata(ctx context.Context, id string, metadata map[string]any) error

	// List returns company events matching the filter, newest first, plus
	// the unpaged total.
	List(ctx context.Context, companyID string, filter EventFilter) ([]Event, int64, error)
}

// JournalRepository owns asistencia.jornada_calculada. Only the
// recomputation step writes it.
type JournalRepository interface {
	// Upsert writes the journal keyed by (empresa, empleado, fecha):
	// update in place when the row exists, insert otherwise.
	Upsert(ctx context.Context, journal Journal) error

	// GetByDate returns the journal row or (nil, nil).
	GetByDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Journal, error)

	// ListRange returns journal rows for the date range, ascending by fecha.
	ListRange(ctx context.Context, companyID string, filter JournalFilter) ([]Journal, error)
}
