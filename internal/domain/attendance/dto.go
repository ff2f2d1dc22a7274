package attendance

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ========================================
// COORDINATE NORMALIZATION
// ========================================

// CoordStatus tags the outcome of normalizing a raw lat/lng payload value.
type CoordStatus int

const (
	CoordAbsent CoordStatus = iota
	CoordPresent
	CoordInvalid
)

// Coord is the tagged result of parsing one coordinate. Value is only
// meaningful when Status is CoordPresent.
type Coord struct {
	Status CoordStatus
	Value  decimal.Decimal
}

// ParseCoord normalizes a coordinate as it arrives from JSON: a number, a
// string, or nothing. The string sentinels "", "null", "none" and "nan"
// (case-insensitive) mean absent; any other unparseable string is Invalid.
func ParseCoord(raw any) Coord {
	switch v := raw.(type) {
	case nil:
		return Coord{Status: CoordAbsent}
	case float64:
		return Coord{Status: CoordPresent, Value: decimal.NewFromFloat(v)}
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if s == "" || s == "null" || s == "none" || s == "nan" {
			return Coord{Status: CoordAbsent}
		}
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return Coord{Status: CoordInvalid}
		}
		return Coord{Status: CoordPresent, Value: d}
	default:
		return Coord{Status: CoordInvalid}
	}
}

// ========================================
// MARK DTOs
// ========================================

// MarkRequest is the POST mark payload. Lat/Lng stay untyped because the UI
// may send numbers, strings, or sentinel strings; ParseCoord normalizes them.
type MarkRequest struct {
	Lat        any    `json:"lat,omitempty"`
	Lng        any    `json:"lng,omitempty"`
	Photo      string `json:"photo,omitempty"`
	DeviceID   string `json:"device_id,omitempty"`
	EmployeeID string `json:"empleado_id,omitempty"`

	// Filled by the handler, never from the body.
	ClientIP  string `json:"-"`
	UserAgent string `json:"-"`
}

type GPSResponse struct {
	Lat *string `json:"lat"`
	Lng *string `json:"lng"`
}

type MarkResponse struct {
	OK           bool        `json:"ok"`
	Message      string      `json:"message"`
	Tipo         string      `json:"tipo"`
	RegistradoEl string      `json:"registrado_el"`
	GPS          GPSResponse `json:"gps"`
	DentroFence  *bool       `json:"dentro_geocerca"`
	FotoURL      *string     `json:"foto_url"`
}

// ========================================
// STATE DTOs
// ========================================

// StateResponse mirrors the shape the attendance widget renders.
type StateResponse struct {
	NextCode     *string `json:"next_code"`
	NextLabel    string  `json:"next_label"`
	Done         bool    `json:"mark_done"`
	Reason       *string `json:"mark_reason"`
	BtnClass     string  `json:"btn_class"`
	RequiereGPS  bool    `json:"requiere_gps"`
	RequiereFoto bool    `json:"requiere_foto"`
	FirstInISO   string  `json:"first_in_iso"`
}

// ========================================
// LIST / JOURNAL DTOs
// ========================================

type EventFilter struct {
	EmployeeID *string
	StartDate  *string // YYYY-MM-DD inclusive
	EndDate    *string
	Page       int
	Limit      int
}

type EventResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"empleado_id"`
	EmployeeName string  `json:"empleado_nombre,omitempty"`
	Tipo         string  `json:"tipo"`
	RegistradoEl string  `json:"registrado_el"`
	Lat          *string `json:"gps_lat"`
	Lng          *string `json:"gps_lng"`
	DentroFence  *bool   `json:"dentro_geocerca"`
	FotoURL      *string `json:"foto_url"`
	IP           *string `json:"ip"`
}

type ListEventsResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Events     []EventResponse `json:"events"`
}

type JournalFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
}

type JournalResponse struct {
	EmployeeID      string  `json:"empleado_id"`
	Fecha           string  `json:"fecha"`
	FirstIn         *string `json:"hora_primera_entrada"`
	LastOut         *string `json:"hora_ultima_salida"`
	WorkedMinutes   int     `json:"minutos_trabajados"`
	LatenessMinutes int     `json:"minutos_tardanza"`
	OvertimeMinutes int     `json:"minutos_extra"`
	Outcome         string  `json:"estado"`
	CalculadoEl     string  `json:"calculado_el"`
}

// RecomputeRequest is the admin-triggered journal rebuild for one
// employee+date.
type RecomputeRequest struct {
	EmployeeID string `json:"empleado_id"`
	Date       string `json:"fecha"` // YYYY-MM-DD
}
