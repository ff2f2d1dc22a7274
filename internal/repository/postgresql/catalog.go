package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/catalog"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/database"
)

type catalogRepository struct {
	db *database.DB
}

func NewCatalogRepository(db *database.DB) catalog.Repository {
	return &catalogRepository{db: db}
}

// catalog tables share the same shape: id uuid, codigo text, activo bool.
var catalogTables = map[catalog.Name]string{
	catalog.EventType:     "config.tipo_evento_asistencia",
	catalog.MarkSource:    "config.fuente_marcacion",
	catalog.DayOutcome:    "config.estado_jornada",
	catalog.RequestStatus: "config.estado_solicitud",
}

// LookupID implements catalog.Repository.
func (c *catalogRepository) LookupID(ctx context.Context, name catalog.Name, code string) (string, error) {
	q := GetQuerier(ctx, c.db)

	table, ok := catalogTables[name]
	if !ok {
		return "", fmt.Errorf("unknown catalog table %q", name)
	}

	query := fmt.Sprintf(`SELECT id FROM %s WHERE codigo = $1 LIMIT 1`, table)

	var id string
	err := q.QueryRow(ctx, query, code).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", catalog.ErrCodeNotFound
		}
		return "", fmt.Errorf("failed to look up catalog code: %w", err)
	}

	return id, nil
}
