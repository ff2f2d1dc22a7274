package attendance

import (
	"context"
	"time"
)

// Service defines the attendance engine's use-cases.
type Service interface {
	// State computes today's next permitted action for the caller (or the
	// selected employee for elevated roles).
	State(ctx context.Context, employeeOverride string) (StateResponse, error)

	// Mark validates and records one check-in/check-out punch, then
	// recomputes the daily journal best-effort.
	Mark(ctx context.Context, req MarkRequest) (MarkResponse, error)

	// ListEvents returns the company's event history for admin screens.
	ListEvents(ctx context.Context, filter EventFilter) (ListEventsResponse, error)

	// ListJournal returns derived day summaries for dashboards.
	ListJournal(ctx context.Context, filter JournalFilter) ([]JournalResponse, error)

	// Recompute rebuilds one employee's journal for a date (RRHH/superadmin).
	Recompute(ctx context.Context, req RecomputeRequest) error

	// RecomputeDay rebuilds one journal without caller authorization.
	// For internal jobs only; never expose it on the HTTP surface.
	RecomputeDay(ctx context.Context, companyID, employeeID string, day time.Time) error
}

// PhotoStore persists an attendance photo and yields its URL.
// (nil, nil) means the payload was not a decodable image and was skipped;
// an error means storage failed and the mark must be rejected.
type PhotoStore interface {
	SaveAttendancePhoto(ctx context.Context, companyID, employeeID, base64Data string) (*string, error)
}

// Clock abstracts "now" so time-window and double-submit rules are testable.
type Clock func() time.Time
