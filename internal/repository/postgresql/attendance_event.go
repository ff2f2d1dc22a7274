package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/attendance"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/database"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) attendance.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `
	id, empresa_id, empleado_id, tipo_evento_id, fuente_id, registrado_el,
	gps_lat, gps_lng, dentro_geocerca, foto_url, ip_origen, dispositivo_id, metadatos
`

func scanEvent(row pgx.Row) (attendance.Event, error) {
	var ev attendance.Event
	err := row.Scan(
		&ev.ID, &ev.CompanyID, &ev.EmployeeID, &ev.TypeID, &ev.SourceID, &ev.RecordedAt,
		&ev.Lat, &ev.Lng, &ev.InsideFence, &ev.PhotoURL, &ev.IP, &ev.DeviceID, &ev.Metadata,
	)
	return ev, err
}

// Create implements attendance.EventRepository.
func (r *eventRepository) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO asistencia.evento_asistencia (
			empresa_id, empleado_id, tipo_evento_id, fuente_id, registrado_el,
			gps_lat, gps_lng, dentro_geocerca, foto_url, ip_origen, dispositivo_id, metadatos
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING id
	`

	err := q.QueryRow(ctx, query,
		event.CompanyID,
		event.EmployeeID,
		event.TypeID,
		event.SourceID,
		event.RecordedAt,
		event.Lat,
		event.Lng,
		event.InsideFence,
		event.PhotoURL,
		event.IP,
		event.DeviceID,
		event.Metadata,
	).Scan(&event.ID)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return event, nil
}

// ListByRange implements attendance.EventRepository.
func (r *eventRepository) ListByRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM asistencia.evento_asistencia
		WHERE empresa_id = $1
		  AND empleado_id = $2
		  AND registrado_el >= $3
		  AND registrado_el < $4
		ORDER BY registrado_el ASC
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance events: %w", err)
	}

	return events, nil
}

// LastByEmployee implements attendance.EventRepository.
func (r *eventRepository) LastByEmployee(ctx context.Context, companyID, employeeID string) (*attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM asistencia.evento_asistencia
		WHERE empresa_id = $1
		  AND empleado_id = $2
		ORDER BY registrado_el DESC
		LIMIT 1
	`

	ev, err := scanEvent(q.QueryRow(ctx, query, companyID, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last attendance event: %w", err)
	}

	return &ev, nil
}

// UpdateMetadata implements attendance.EventRepository.
func (r *eventRepository) UpdateMetadata(ctx context.Context, id string, metadata map[string]any) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE asistencia.evento_asistencia SET metadatos = $1 WHERE id = $2`

	if _, err := q.Exec(ctx, query, metadata, id); err != nil {
		return fmt.Errorf("failed to update event metadata: %w", err)
	}

	return nil
}

// List implements attendance.EventRepository.
func (r *eventRepository) List(ctx context.Context, companyID string, filter attendance.EventFilter) ([]attendance.Event, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"empresa_id = $1"}
	args := []any{companyID}
	argIdx := 2

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("empleado_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("registrado_el >= $%d::date", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("registrado_el < $%d::date + INTERVAL '1 day'", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM asistencia.evento_asistencia WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance events: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT %s
		FROM asistencia.evento_asistencia
		WHERE %s
		ORDER BY registrado_el DESC
		LIMIT $%d OFFSET $%d
	`, eventColumns, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance events: %w", err)
	}

	return events, total, nil
}
