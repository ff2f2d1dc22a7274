package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/schedule"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/database"
)

type assignmentRepository struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) schedule.AssignmentRepository {
	return &assignmentRepository{db: db}
}

// ActiveShiftFor implements schedule.AssignmentRepository.
// Overlapping assignments resolve to the one that started most recently.
func (a *assignmentRepository) ActiveShiftFor(ctx context.Context, companyID, employeeID string, date time.Time) (*schedule.Shift, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT t.id, t.empresa_id, t.nombre,
			   t.hora_inicio, t.hora_fin, t.hora_inicio_2, t.hora_fin_2,
			   t.dias_semana, t.tolerancia_min, t.requiere_gps, t.requiere_foto,
			   t.creado_el
		FROM asistencia.asignacion_turno a
		JOIN asistencia.turno t ON t.id = a.turno_id
		WHERE a.empleado_id = $1
		  AND a.empresa_id = $2
		  AND a.es_activo = TRUE
		  AND a.fecha_inicio <= $3
		  AND (a.fecha_fin IS NULL OR a.fecha_fin >= $3)
		ORDER BY a.fecha_inicio DESC
		LIMIT 1
	`

	var shift schedule.Shift
	err := q.QueryRow(ctx, query, employeeID, companyID, date).Scan(
		&shift.ID, &shift.CompanyID, &shift.Name,
		&shift.StartTime, &shift.EndTime, &shift.StartTime2, &shift.EndTime2,
		&shift.Weekdays, &shift.ToleranceMinutes, &shift.RequiresGPS, &shift.RequiresPhoto,
		&shift.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active shift: %w", err)
	}

	return &shift, nil
}
