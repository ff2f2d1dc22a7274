package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/policy"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/database"
)

type ruleRepository struct {
	db *database.DB
}

func NewRuleRepository(db *database.DB) policy.RuleRepository {
	return &ruleRepository{db: db}
}

// CurrentRuleFor implements policy.RuleRepository.
// The newest rule by creation date wins when a company has several.
func (r *ruleRepository) CurrentRuleFor(ctx context.Context, companyID string) (*policy.Rule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ra.id, ra.empresa_id, ra.umbral_tardanza_min, ra.formula_extras,
			   ra.ip_permitidas, ra.creado_el,
			   g.id, g.empresa_id, g.nombre, g.coordenadas, g.activo
		FROM asistencia.regla_asistencia ra
		LEFT JOIN asistencia.geocerca g ON g.id = ra.geocerca_id
		WHERE ra.empresa_id = $1
		ORDER BY ra.creado_el DESC
		LIMIT 1
	`

	var (
		rule       policy.Rule
		rawIPs     []byte
		fenceID    *string
		fenceCo    *string
		fenceName  *string
		fenceCoord []byte
		fenceOn    *bool
	)
	err := q.QueryRow(ctx, query, companyID).Scan(
		&rule.ID, &rule.CompanyID, &rule.LatenessThresholdMin, &rule.OvertimeFormula,
		&rawIPs, &rule.CreatedAt,
		&fenceID, &fenceCo, &fenceName, &fenceCoord, &fenceOn,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance rule: %w", err)
	}

	rule.AllowedIPs = decodeAllowedIPs(rawIPs)

	if fenceID != nil {
		fence := policy.Geofence{
			ID:          *fenceID,
			Coordinates: fenceCoord,
			Active:      fenceOn,
		}
		if fenceCo != nil {
			fence.CompanyID = *fenceCo
		}
		if fenceName != nil {
			fence.Name = *fenceName
		}
		rule.Geofence = &fence
	}

	return &rule, nil
}

// decodeAllowedIPs accepts both a JSON array of strings and a bare JSON
// string. Anything else yields an empty allowlist.
func decodeAllowedIPs(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}

	return nil
}
