package postgresql

import (
	"context"
	"fmt"

	"github.com/talenttrack/talenttrack-backend-go/internal/domain/device"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/database"
)

type deviceRepository struct {
	db *database.DB
}

func NewDeviceRepository(db *database.DB) device.Repository {
	return &deviceRepository{db: db}
}

// IsRegistered implements device.Repository.
func (d *deviceRepository) IsRegistered(ctx context.Context, id, companyID, employeeID string) (bool, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM asistencia.dispositivo_empleado
			WHERE id = $1
			  AND empresa_id = $2
			  AND empleado_id = $3
			  AND activo = TRUE
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, id, companyID, employeeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check device registration: %w", err)
	}

	return exists, nil
}
