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

type journalRepository struct {
	db *database.DB
}

func NewJournalRepository(db *database.DB) attendance.JournalRepository {
	return &journalRepository{db: db}
}

const journalColumns = `
	id, empresa_id, empleado_id, fecha, hora_primera_entrada, hora_ultima_salida,
	minutos_trabajados, minutos_tardanza, minutos_extra, estado_id, detalle, calculado_el
`

func scanJournal(row pgx.Row) (attendance.Journal, error) {
	var j attendance.Journal
	err := row.Scan(
		&j.ID, &j.CompanyID, &j.EmployeeID, &j.Date, &j.FirstIn, &j.LastOut,
		&j.WorkedMinutes, &j.LatenessMinutes, &j.OvertimeMinutes, &j.OutcomeID, &j.Details, &j.ComputedAt,
	)
	return j, err
}

// Upsert implements attendance.JournalRepository. Update in place keyed by
// (empresa, empleado, fecha), insert when the row does not exist yet. The
// two statements run in one transaction so a concurrent recompute never
// observes the gap between them.
func (r *journalRepository) Upsert(ctx context.Context, journal attendance.Journal) error {
	if tx, ok := ctx.Value("tx").(pgx.Tx); ok {
		return r.upsertIn(ctx, tx, journal)
	}
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		return r.upsertIn(ctx, tx, journal)
	})
}

func (r *journalRepository) upsertIn(ctx context.Context, q database.Querier, journal attendance.Journal) error {
	updateQuery := `
		UPDATE asistencia.jornada_calculada SET
			hora_primera_entrada = $4,
			hora_ultima_salida = $5,
			minutos_trabajados = $6,
			minutos_tardanza = $7,
			minutos_extra = $8,
			estado_id = $9,
			detalle = $10,
			calculado_el = $11
		WHERE empresa_id = $1 AND empleado_id = $2 AND fecha = $3
	`

	tag, err := q.Exec(ctx, updateQuery,
		journal.CompanyID, journal.EmployeeID, journal.Date,
		journal.FirstIn, journal.LastOut,
		journal.WorkedMinutes, journal.LatenessMinutes, journal.OvertimeMinutes,
		journal.OutcomeID, journal.Details, journal.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update daily journal: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	insertQuery := `
		INSERT INTO asistencia.jornada_calculada (
			empresa_id, empleado_id, fecha, hora_primera_entrada, hora_ultima_salida,
			minutos_trabajados, minutos_tardanza, minutos_extra, estado_id, detalle, calculado_el
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	if _, err := q.Exec(ctx, insertQuery,
		journal.CompanyID, journal.EmployeeID, journal.Date,
		journal.FirstIn, journal.LastOut,
		journal.WorkedMinutes, journal.LatenessMinutes, journal.OvertimeMinutes,
		journal.OutcomeID, journal.Details, journal.ComputedAt,
	); err != nil {
		return fmt.Errorf("failed to insert daily journal: %w", err)
	}

	return nil
}

// GetByDate implements attendance.JournalRepository.
func (r *journalRepository) GetByDate(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Journal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + journalColumns + `
		FROM asistencia.jornada_calculada
		WHERE empresa_id = $1 AND empleado_id = $2 AND fecha = $3
	`

	j, err := scanJournal(q.QueryRow(ctx, query, companyID, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get daily journal: %w", err)
	}

	return &j, nil
}

// ListRange implements attendance.JournalRepository.
func (r *journalRepository) ListRange(ctx context.Context, companyID string, filter attendance.JournalFilter) ([]attendance.Journal, error) {
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
		conditions = append(conditions, fmt.Sprintf("fecha >= $%d::date", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("fecha <= $%d::date", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM asistencia.jornada_calculada
		WHERE %s
		ORDER BY fecha ASC
	`, journalColumns, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily journals: %w", err)
	}
	defer rows.Close()

	var journals []attendance.Journal
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily journal: %w", err)
		}
		journals = append(journals, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily journals: %w", err)
	}

	return journals, nil
}
