package attendance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/attendance"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/catalog"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/employee"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/policy"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/schedule"
)

// Catalog ids used across the tests.
const (
	typeCheckInID    = "11111111-1111-4111-8111-111111111111"
	typeCheckOutID   = "22222222-2222-4222-8222-222222222222"
	sourceWebID      = "33333333-3333-4333-8333-333333333333"
	outcomeDoneID    = "44444444-4444-4444-8444-444444444444"
	outcomePartialID = "55555555-5555-4555-8555-555555555555"
	outcomeEmptyID   = "66666666-6666-4666-8666-666666666666"

	testCompanyID  = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	testEmployeeID = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
	testUserID     = "cccccccc-cccc-4ccc-8ccc-cccccccccccc"
)

type fakeCatalogRepo struct{}

func (f *fakeCatalogRepo) LookupID(ctx context.Context, name catalog.Name, code string) (string, error) {
	key := string(name) + ":" + code
	ids := map[string]string{
		"tipo_evento_asistencia:check_in":  typeCheckInID,
		"tipo_evento_asistencia:check_out": typeCheckOutID,
		"fuente_marcacion:web":             sourceWebID,
		"estado_jornada:completo":          outcomeDoneID,
		"estado_jornada:incompleto":        outcomePartialID,
		"estado_jornada:sin_registros":     outcomeEmptyID,
	}
	if id, ok := ids[key]; ok {
		return id, nil
	}
	return "", catalog.ErrCodeNotFound
}

type fakeEventRepo struct {
	events []attendance.Event
}

func (f *fakeEventRepo) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	event.ID = uuid.New().String()
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeEventRepo) ListByRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.CompanyID == companyID && ev.EmployeeID == employeeID &&
			!ev.RecordedAt.Before(from) && ev.RecordedAt.Before(to) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.Before(out[j].RecordedAt) })
	return out, nil
}

func (f *fakeEventRepo) LastByEmployee(ctx context.Context, companyID, employeeID string) (*attendance.Event, error) {
	var last *attendance.Event
	for i := range f.events {
		ev := f.events[i]
		if ev.CompanyID != companyID || ev.EmployeeID != employeeID {
			continue
		}
		if last == nil || ev.RecordedAt.After(last.RecordedAt) {
			last = &f.events[i]
		}
	}
	return last, nil
}

func (f *fakeEventRepo) UpdateMetadata(ctx context.Context, id string, metadata map[string]any) error {
	for i := range f.events {
		if f.events[i].ID == id {
			f.events[i].Metadata = metadata
			return nil
		}
	}
	return fmt.Errorf("event %s not found", id)
}

func (f *fakeEventRepo) List(ctx context.Context, companyID string, filter attendance.EventFilter) ([]attendance.Event, int64, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && ev.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	return out, int64(len(out)), nil
}

type fakeJournalRepo struct {
	rows    map[string]attendance.Journal
	upserts int
}

func newFakeJournalRepo() *fakeJournalRepo {
	return &fakeJournalRepo{rows: make(map[string]attendance.Journal)}
}

func journalKey(companyID, employeeID string, date time.Time) string {
	return companyID + "|" + employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeJournalRepo) Upsert(ctx context.Context, journal attendance.Journal) error {
	f.upserts++
	f.rows[journalKey(journal.CompanyID, journal.EmployeeID, journal.Date)] = journal
	return nil
}

func (f *fakeJournalRepo) GetByDate(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Journal, error) {
	if j, ok := f.rows[journalKey(companyID, employeeID, date)]; ok {
		return &j, nil
	}
	return nil, nil
}

func (f *fakeJournalRepo) ListRange(ctx context.Context, companyID string, filter attendance.JournalFilter) ([]attendance.Journal, error) {
	var out []attendance.Journal
	for _, j := range f.rows {
		if j.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && j.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type fakeAssignmentRepo struct {
	shift *schedule.Shift
}

func (f *fakeAssignmentRepo) ActiveShiftFor(ctx context.Context, companyID, employeeID string, date time.Time) (*schedule.Shift, error) {
	return f.shift, nil
}

type fakeRuleRepo struct {
	rule *policy.Rule
}

func (f *fakeRuleRepo) CurrentRuleFor(ctx context.Context, companyID string) (*policy.Rule, error) {
	return f.rule, nil
}

type fakeEmployeeRepo struct {
	byID map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if emp, ok := f.byID[id]; ok {
		return emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.byID {
		if emp.CompanyID == companyID {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListCompanyIDs(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, emp := range f.byID {
		if !seen[emp.CompanyID] {
			seen[emp.CompanyID] = true
			out = append(out, emp.CompanyID)
		}
	}
	return out, nil
}

type fakeDeviceRepo struct {
	registered map[string]bool
}

func (f *fakeDeviceRepo) IsRegistered(ctx context.Context, id, companyID, employeeID string) (bool, error) {
	return f.registered[id], nil
}

type fakePhotoStore struct {
	url     *string
	fail    bool
	skipped bool
}

func (f *fakePhotoStore) SaveAttendancePhoto(ctx context.Context, companyID, employeeID, base64Data string) (*string, error) {
	if f.fail {
		return nil, errors.New("storage unavailable")
	}
	if f.skipped {
		return nil, nil
	}
	return f.url, nil
}

// testEnv bundles the service with its fakes for direct inspection.
type testEnv struct {
	svc         *AttendanceServiceImpl
	events      *fakeEventRepo
	journals    *fakeJournalRepo
	assignments *fakeAssignmentRepo
	rules       *fakeRuleRepo
	employees   *fakeEmployeeRepo
	devices     *fakeDeviceRepo
	photos      *fakePhotoStore
}

func newTestEnv(now time.Time) *testEnv {
	env := &testEnv{
		events:      &fakeEventRepo{},
		journals:    newFakeJournalRepo(),
		assignments: &fakeAssignmentRepo{},
		rules:       &fakeRuleRepo{},
		employees: &fakeEmployeeRepo{byID: map[string]employee.Employee{
			testEmployeeID: {ID: testEmployeeID, CompanyID: testCompanyID, FirstNames: "Maria", LastNames: "Lopez"},
		}},
		devices: &fakeDeviceRepo{registered: map[string]bool{}},
		photos:  &fakePhotoStore{},
	}

	env.svc = &AttendanceServiceImpl{
		events:      env.events,
		journals:    env.journals,
		assignments: env.assignments,
		rules:       env.rules,
		catalogs:    catalog.NewResolver(&fakeCatalogRepo{}),
		employees:   env.employees,
		devices:     env.devices,
		photos:      env.photos,
		loc:         time.UTC,
		now:         func() time.Time { return now },
		// fakes have no transactions; run the unit of work directly
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
	return env
}

func (e *testEnv) setNow(now time.Time) {
	e.svc.now = func() time.Time { return now }
}

var testJWTAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

// authedContext builds a context carrying verified claims, the way the
// jwtauth verifier middleware would.
func authedContext(employeeID *string, roles []string, superadmin bool) context.Context {
	claims := map[string]interface{}{
		"user_id":       testUserID,
		"company_id":    testCompanyID,
		"is_superadmin": superadmin,
		"roles":         roles,
		"type":          "access",
	}
	if employeeID != nil {
		claims["empleado_id"] = *employeeID
	}
	token, _, err := testJWTAuth.Encode(claims)
	if err != nil {
		panic(err)
	}
	return jwtauth.NewContext(context.Background(), token, nil)
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func boolPtr(b bool) *bool { return &b }

func timePtr(t time.Time) *time.Time { return &t }

// todOf builds a time-of-day value the way pgx scans a Postgres time column.
func todOf(hour, minute int) *time.Time {
	t := time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
	return &t
}

// shiftNineToSix is the default test shift: 09:00-18:00, 10 min tolerance.
func shiftNineToSix() *schedule.Shift {
	return &schedule.Shift{
		ID:               "77777777-7777-4777-8777-777777777777",
		CompanyID:        testCompanyID,
		Name:             "Office hours",
		StartTime:        todOf(9, 0),
		EndTime:          todOf(18, 0),
		ToleranceMinutes: intPtr(10),
	}
}
