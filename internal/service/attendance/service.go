package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/attendance"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/catalog"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/device"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/employee"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/identity"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/policy"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/schedule"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/database"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/geo"
	"github.com/talenttrack/talenttrack-backend-go/internal/pkg/ipfilter"
	"github.com/talenttrack/talenttrack-backend-go/internal/repository/postgresql"
)

// doubleSubmitWindow guards against accidental repeated taps.
const doubleSubmitWindow = 30 * time.Second

const (
	msgCheckInOK  = "Check-in registered successfully."
	msgCheckOutOK = "Check-out registered successfully."
)

// txRunner executes fn atomically; repository calls inside fn observe the
// same transaction through the context.
type txRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type AttendanceServiceImpl struct {
	events          attendance.EventRepository
	journals        attendance.JournalRepository
	assignments     schedule.AssignmentRepository
	rules           policy.RuleRepository
	catalogs        *catalog.Resolver
	employees       employee.Repository
	devices         device.Repository
	photos          attendance.PhotoStore
	loc             *time.Location
	enforceGeofence bool
	now             attendance.Clock
	runTx           txRunner
}

func NewAttendanceService(
	db *database.DB,
	events attendance.EventRepository,
	journals attendance.JournalRepository,
	assignments schedule.AssignmentRepository,
	rules policy.RuleRepository,
	catalogs *catalog.Resolver,
	employees employee.Repository,
	devices device.Repository,
	photos attendance.PhotoStore,
	loc *time.Location,
	enforceGeofence bool,
) attendance.Service {
	return &AttendanceServiceImpl{
		events:          events,
		journals:        journals,
		assignments:     assignments,
		rules:           rules,
		catalogs:        catalogs,
		employees:       employees,
		devices:         devices,
		photos:          photos,
		loc:             loc,
		enforceGeofence: enforceGeofence,
		now:             time.Now,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithSerializableTransaction(ctx, db, func(tx pgx.Tx) error {
				return fn(context.WithValue(ctx, "tx", tx))
			})
		},
	}
}

// resolveTarget decides whose attendance the caller is acting on. Elevated
// roles may select another employee within their company; superadmins may
// cross companies.
func (s *AttendanceServiceImpl) resolveTarget(ctx context.Context, ident identity.Identity, override string) (companyID, employeeID string, err error) {
	selfTargeted := override == "" || (ident.EmployeeID != nil && override == *ident.EmployeeID)

	if selfTargeted {
		if ident.EmployeeID == nil {
			return "", "", attendance.NewError(attendance.MsgNoLinkedEmployee)
		}
		return ident.CompanyID, *ident.EmployeeID, nil
	}

	if !ident.HasRole(identity.RoleSuperadmin) && !ident.HasRole(identity.RoleHRAdmin) {
		return "", "", attendance.NewForbidden(attendance.MsgMarkForOther)
	}

	emp, err := s.employees.GetByID(ctx, override)
	if err != nil {
		if err == employee.ErrEmployeeNotFound {
			return "", "", attendance.NewError(attendance.MsgEmployeeNotFound)
		}
		return "", "", fmt.Errorf("failed to resolve target employee: %w", err)
	}

	if !ident.HasRole(identity.RoleSuperadmin) && emp.CompanyID != ident.CompanyID {
		return "", "", attendance.NewForbidden(attendance.MsgMarkCrossCompany)
	}

	return emp.CompanyID, emp.ID, nil
}

// dayBounds returns the [start, end) UTC-comparable instants of the calendar
// day containing t in the service location.
func (s *AttendanceServiceImpl) dayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(s.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	return start, start.AddDate(0, 0, 1)
}

// State implements attendance.Service.
func (s *AttendanceServiceImpl) State(ctx context.Context, employeeOverride string) (attendance.StateResponse, error) {
	ident, err := identity.FromContext(ctx)
	if err != nil {
		return attendance.StateResponse{}, err
	}

	companyID, employeeID, err := s.resolveTarget(ctx, ident, employeeOverride)
	if err != nil {
		return attendance.StateResponse{}, err
	}

	now := s.now().In(s.loc)

	shift, err := s.assignments.ActiveShiftFor(ctx, companyID, employeeID, now)
	if err != nil {
		return attendance.StateResponse{}, err
	}

	checkInID, err := s.catalogs.Resolve(ctx, catalog.EventType, catalog.CodeCheckIn)
	if err != nil {
		return attendance.StateResponse{}, fmt.Errorf("failed to resolve check-in type: %w", err)
	}

	from, to := s.dayBounds(now)
	events, err := s.events.ListByRange(ctx, companyID, employeeID, from, to)
	if err != nil {
		return attendance.StateResponse{}, err
	}

	st := computeState(events, checkInID, shift, true)

	resp := attendance.StateResponse{
		NextLabel:    st.NextLabel,
		Done:         st.Done,
		BtnClass:     st.BtnClass,
		RequiereGPS:  st.RequiresGPS,
		RequiereFoto: st.RequiresPhoto,
	}
	if st.NextCode != "" {
		code := st.NextCode
		resp.NextCode = &code
	}
	if st.Reason != "" {
		reason := st.Reason
		resp.Reason = &reason
	}
	if st.FirstIn != nil {
		resp.FirstInISO = st.FirstIn.In(s.loc).Format(time.RFC3339)
	}

	return resp, nil
}

// Mark implements attendance.Service. Validation steps run in a fixed order
// so the user always sees the most fundamental failure first.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkRequest) (attendance.MarkResponse, error) {
	ident, err := identity.FromContext(ctx)
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	companyID, employeeID, err := s.resolveTarget(ctx, ident, req.EmployeeID)
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	now := s.now()
	nowLocal := now.In(s.loc)

	shift, err := s.assignments.ActiveShiftFor(ctx, companyID, employeeID, nowLocal)
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	rule, err := s.rules.CurrentRuleFor(ctx, companyID)
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	if rule != nil && !ipfilter.Allowed(req.ClientIP, rule.AllowedIPs) {
		return attendance.MarkResponse{}, attendance.NewError(attendance.MsgIPNotAllowed)
	}

	checkInID, err := s.catalogs.Resolve(ctx, catalog.EventType, catalog.CodeCheckIn)
	if err != nil {
		return attendance.MarkResponse{}, fmt.Errorf("failed to resolve check-in type: %w", err)
	}
	checkOutID, err := s.catalogs.Resolve(ctx, catalog.EventType, catalog.CodeCheckOut)
	if err != nil {
		return attendance.MarkResponse{}, fmt.Errorf("failed to resolve check-out type: %w", err)
	}

	// The day-state check, double-submit guard and insert are check-then-act
	// over the same rows, so they run in one serializable transaction: two
	// concurrent marks cannot both observe the pre-insert state.
	var (
		st          dayState
		lat, lng    *decimal.Decimal
		insideFence *bool
		photoURL    *string
		created     attendance.Event
	)
	err = s.runTx(ctx, func(ctx context.Context) error {
		from, to := s.dayBounds(nowLocal)
		todayEvents, err := s.events.ListByRange(ctx, companyID, employeeID, from, to)
		if err != nil {
			return err
		}

		st = computeState(todayEvents, checkInID, shift, true)
		if st.Done || st.NextCode == "" {
			reason := st.Reason
			if reason == "" {
				reason = attendance.MsgCannotMarkNow
			}
			return attendance.NewError(reason)
		}

		last, err := s.events.LastByEmployee(ctx, companyID, employeeID)
		if err != nil {
			return err
		}
		if last != nil && now.Sub(last.RecordedAt) < doubleSubmitWindow {
			return attendance.NewError(attendance.MsgDoubleSubmit)
		}

		latCoord := attendance.ParseCoord(req.Lat)
		lngCoord := attendance.ParseCoord(req.Lng)

		if shift.GPSRequired() && (latCoord.Status == attendance.CoordAbsent || lngCoord.Status == attendance.CoordAbsent) {
			return attendance.NewError(attendance.MsgGPSRequired)
		}
		if shift.PhotoRequired() && req.Photo == "" {
			return attendance.NewError(attendance.MsgPhotoRequired)
		}

		if werr := validateTimeWindow(shift, st.NextCode, nowLocal); werr != nil {
			return werr
		}

		if latCoord.Status == attendance.CoordInvalid || lngCoord.Status == attendance.CoordInvalid {
			return attendance.NewError(attendance.MsgInvalidCoords)
		}

		if latCoord.Status == attendance.CoordPresent {
			v := latCoord.Value
			lat = &v
		}
		if lngCoord.Status == attendance.CoordPresent {
			v := lngCoord.Value
			lng = &v
		}

		insideFence = s.evaluateGeofence(rule, lat, lng)
		if s.enforceGeofence && insideFence != nil && !*insideFence {
			return attendance.NewError(attendance.MsgOutsideGeofence)
		}

		typeID := checkInID
		if st.NextCode == catalog.CodeCheckOut {
			typeID = checkOutID
		}

		sourceID, err := s.catalogs.Resolve(ctx, catalog.MarkSource, catalog.CodeSourceWeb)
		if err != nil {
			return fmt.Errorf("failed to resolve mark source: %w", err)
		}

		if req.Photo != "" {
			photoURL, err = s.photos.SaveAttendancePhoto(ctx, companyID, employeeID, req.Photo)
			if err != nil {
				return attendance.NewError(attendance.MsgPhotoSaveFailed)
			}
		}

		metadata := map[string]any{
			"user_agent":     req.UserAgent,
			"requires_gps":   shift.GPSRequired(),
			"requires_photo": shift.PhotoRequired(),
		}

		var deviceID *string
		if req.DeviceID != "" {
			if parsed, perr := uuid.Parse(req.DeviceID); perr == nil {
				id := parsed.String()
				registered, derr := s.devices.IsRegistered(ctx, id, companyID, employeeID)
				if derr != nil {
					return derr
				}
				if registered {
					deviceID = &id
				} else {
					metadata["device_id_unregistered"] = id
				}
			}
		}

		event := attendance.Event{
			CompanyID:   companyID,
			EmployeeID:  employeeID,
			TypeID:      typeID,
			SourceID:    &sourceID,
			RecordedAt:  now,
			Lat:         lat,
			Lng:         lng,
			InsideFence: insideFence,
			PhotoURL:    photoURL,
			DeviceID:    deviceID,
			Metadata:    metadata,
		}
		if req.ClientIP != "" {
			ip := req.ClientIP
			event.IP = &ip
		}

		created, err = s.events.Create(ctx, event)
		return err
	})
	if err != nil {
		return attendance.MarkResponse{}, err
	}

	// Journal recomputation is best-effort: the mark already succeeded, so
	// a failure here is annotated on the event instead of surfaced.
	if rerr := s.recomputeJournal(ctx, companyID, employeeID, nowLocal, shift, rule); rerr != nil {
		annotated := make(map[string]any, len(created.Metadata)+1)
		for k, v := range created.Metadata {
			annotated[k] = v
		}
		annotated["journal_rebuild_error"] = rerr.Error()
		_ = s.events.UpdateMetadata(ctx, created.ID, annotated)
	}

	message := msgCheckInOK
	if st.NextCode == catalog.CodeCheckOut {
		message = msgCheckOutOK
	}

	return attendance.MarkResponse{
		OK:           true,
		Message:      message,
		Tipo:         st.NextCode,
		RegistradoEl: created.RecordedAt.In(s.loc).Format(time.RFC3339),
		GPS: attendance.GPSResponse{
			Lat: decimalString(lat),
			Lng: decimalString(lng),
		},
		DentroFence: insideFence,
		FotoURL:     photoURL,
	}, nil
}

// evaluateGeofence returns nil when the rule has no usable fence or the
// mark carries no coordinates.
func (s *AttendanceServiceImpl) evaluateGeofence(rule *policy.Rule, lat, lng *decimal.Decimal) *bool {
	if rule == nil || rule.Geofence == nil {
		return nil
	}
	if rule.Geofence.Active != nil && !*rule.Geofence.Active {
		return nil
	}

	fence := geo.ParseFence(rule.Geofence.Coordinates)
	if fence == nil {
		return nil
	}

	var flat, flng *float64
	if lat != nil {
		v, _ := lat.Float64()
		flat = &v
	}
	if lng != nil {
		v, _ := lng.Float64()
		flng = &v
	}

	return geo.Evaluate(fence, flat, flng)
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// ListEvents implements attendance.Service. Non-elevated callers only see
// their own history regardless of the requested filter.
func (s *AttendanceServiceImpl) ListEvents(ctx context.Context, filter attendance.EventFilter) (attendance.ListEventsResponse, error) {
	ident, err := identity.FromContext(ctx)
	if err != nil {
		return attendance.ListEventsResponse{}, err
	}

	if !s.canBrowseCompany(ident) {
		if ident.EmployeeID == nil {
			return attendance.ListEventsResponse{}, attendance.NewError(attendance.MsgNoLinkedEmployee)
		}
		filter.EmployeeID = ident.EmployeeID
	}

	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	events, total, err := s.events.List(ctx, ident.CompanyID, filter)
	if err != nil {
		return attendance.ListEventsResponse{}, err
	}

	checkInID, err := s.catalogs.Resolve(ctx, catalog.EventType, catalog.CodeCheckIn)
	if err != nil {
		return attendance.ListEventsResponse{}, fmt.Errorf("failed to resolve check-in type: %w", err)
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		tipo := catalog.CodeCheckOut
		if ev.TypeID == checkInID {
			tipo = catalog.CodeCheckIn
		}
		responses = append(responses, attendance.EventResponse{
			ID:           ev.ID,
			EmployeeID:   ev.EmployeeID,
			Tipo:         tipo,
			RegistradoEl: ev.RecordedAt.In(s.loc).Format(time.RFC3339),
			Lat:          decimalString(ev.Lat),
			Lng:          decimalString(ev.Lng),
			DentroFence:  ev.InsideFence,
			FotoURL:      ev.PhotoURL,
			IP:           ev.IP,
		})
	}

	return attendance.ListEventsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Events:     responses,
	}, nil
}

// ListJournal implements attendance.Service.
func (s *AttendanceServiceImpl) ListJournal(ctx context.Context, filter attendance.JournalFilter) ([]attendance.JournalResponse, error) {
	ident, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	if !s.canBrowseCompany(ident) {
		if ident.EmployeeID == nil {
			return nil, attendance.NewError(attendance.MsgNoLinkedEmployee)
		}
		filter.EmployeeID = ident.EmployeeID
	}

	journals, err := s.journals.ListRange(ctx, ident.CompanyID, filter)
	if err != nil {
		return nil, err
	}

	outcomes, err := s.outcomeCodesByID(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.JournalResponse, 0, len(journals))
	for _, j := range journals {
		resp := attendance.JournalResponse{
			EmployeeID:      j.EmployeeID,
			Fecha:           j.Date.Format("2006-01-02"),
			WorkedMinutes:   j.WorkedMinutes,
			LatenessMinutes: j.LatenessMinutes,
			OvertimeMinutes: j.OvertimeMinutes,
			CalculadoEl:     j.ComputedAt.In(s.loc).Format(time.RFC3339),
		}
		if j.FirstIn != nil {
			v := j.FirstIn.In(s.loc).Format(time.RFC3339)
			resp.FirstIn = &v
		}
		if j.LastOut != nil {
			v := j.LastOut.In(s.loc).Format(time.RFC3339)
			resp.LastOut = &v
		}
		if j.OutcomeID != nil {
			resp.Outcome = outcomes[*j.OutcomeID]
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// Recompute implements attendance.Service.
func (s *AttendanceServiceImpl) Recompute(ctx context.Context, req attendance.RecomputeRequest) error {
	ident, err := identity.FromContext(ctx)
	if err != nil {
		return err
	}

	if !ident.HasRole(identity.RoleSuperadmin) && !ident.HasRole(identity.RoleHRAdmin) {
		return attendance.NewForbidden(attendance.MsgMarkForOther)
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if err == employee.ErrEmployeeNotFound {
			return attendance.NewError(attendance.MsgEmployeeNotFound)
		}
		return fmt.Errorf("failed to resolve employee: %w", err)
	}
	if !ident.HasRole(identity.RoleSuperadmin) && emp.CompanyID != ident.CompanyID {
		return attendance.NewForbidden(attendance.MsgMarkCrossCompany)
	}

	day, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return attendance.NewError("Invalid date. Use YYYY-MM-DD.")
	}

	return s.RecomputeDay(ctx, emp.CompanyID, emp.ID, day)
}

// RecomputeDay implements attendance.Service.
func (s *AttendanceServiceImpl) RecomputeDay(ctx context.Context, companyID, employeeID string, day time.Time) error {
	shift, err := s.assignments.ActiveShiftFor(ctx, companyID, employeeID, day)
	if err != nil {
		return err
	}
	rule, err := s.rules.CurrentRuleFor(ctx, companyID)
	if err != nil {
		return err
	}
	return s.recomputeJournal(ctx, companyID, employeeID, day, shift, rule)
}

// canBrowseCompany reports whether the caller may read other employees'
// attendance data.
func (s *AttendanceServiceImpl) canBrowseCompany(ident identity.Identity) bool {
	return ident.HasRole(identity.RoleSuperadmin) ||
		ident.HasRole(identity.RoleHRAdmin) ||
		ident.HasRole(identity.RoleManager) ||
		ident.HasRole(identity.RoleAuditor)
}

// outcomeCodesByID inverts the outcome catalog for response rendering.
func (s *AttendanceServiceImpl) outcomeCodesByID(ctx context.Context) (map[string]string, error) {
	codes := []string{catalog.CodeDayComplete, catalog.CodeDayIncomplete, catalog.CodeDayNoRecords}
	out := make(map[string]string, len(codes))
	for _, code := range codes {
		id, err := s.catalogs.Resolve(ctx, catalog.DayOutcome, code)
		if err != nil {
			if err == catalog.ErrCodeNotFound {
				continue
			}
			return nil, fmt.Errorf("failed to resolve day outcome: %w", err)
		}
		out[id] = code
	}
	return out, nil
}
