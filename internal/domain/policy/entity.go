package policy

import "time"

// Geofence maps asistencia.geocerca. Coordinates stay raw JSONB here; the
// geo package decodes them at evaluation time.
type Geofence struct {
	ID          string
	CompanyID   string
	Name        string
	Coordinates []byte
	Active      *bool
}

// Rule maps asistencia.regla_asistencia: the per-company attendance policy.
// At most one rule is current; the resolver takes the newest by creado_el.
type Rule struct {
	ID                   string
	CompanyID            string
	LatenessThresholdMin *int    // umbral_tardanza_min
	OvertimeFormula      *string // formula_extras, informational
	AllowedIPs           []string
	Geofence             *Geofence
	CreatedAt            *time.Time
}

// LatenessThreshold resolves the nullable threshold, defaulting to zero.
func (r *Rule) LatenessThreshold() int {
	if r == nil || r.LatenessThresholdMin == nil {
		return 0
	}
	return *r.LatenessThresholdMin
}
