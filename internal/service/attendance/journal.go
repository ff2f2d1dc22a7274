package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/talenttrack/talenttrack-backend-go/internal/domain/attendance"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/catalog"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/policy"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/schedule"
)

// recomputeJournal rebuilds the derived day summary from scratch off the
// day's events. Idempotent: same events, shift and rule always produce the
// same row.
func (s *AttendanceServiceImpl) recomputeJournal(ctx context.Context, companyID, employeeID string, day time.Time, shift *schedule.Shift, rule *policy.Rule) error {
	checkInID, err := s.catalogs.Resolve(ctx, catalog.EventType, catalog.CodeCheckIn)
	if err != nil {
		return fmt.Errorf("failed to resolve check-in type: %w", err)
	}
	checkOutID, err := s.catalogs.Resolve(ctx, catalog.EventType, catalog.CodeCheckOut)
	if err != nil {
		return fmt.Errorf("failed to resolve check-out type: %w", err)
	}

	from, to := s.dayBounds(day)
	events, err := s.events.ListByRange(ctx, companyID, employeeID, from, to)
	if err != nil {
		return err
	}

	var (
		firstIn     *time.Time
		lastOut     *time.Time
		openIn      *time.Time
		worked      int
		provisional bool
	)

	// Pair intervals in order. A check-in opens an interval; the next
	// check-out after it closes one. Unmatched check-outs only move lastOut.
	for i := range events {
		ev := events[i]
		switch ev.TypeID {
		case checkInID:
			if openIn == nil {
				t := ev.RecordedAt
				openIn = &t
				if firstIn == nil {
					firstIn = &t
				}
			}
		case checkOutID:
			if openIn != nil && ev.RecordedAt.After(*openIn) {
				worked += int(ev.RecordedAt.Sub(*openIn).Minutes())
				openIn = nil
			}
			t := ev.RecordedAt
			lastOut = &t
		}
	}

	// An open interval counts up to "now" so dashboards show live progress.
	if openIn != nil {
		now := s.now()
		if now.After(*openIn) {
			worked += int(now.Sub(*openIn).Minutes())
			provisional = true
		}
	}

	var lateness int
	if shift != nil && shift.StartTime != nil && firstIn != nil {
		start := combineDayTime(day.In(s.loc), *shift.StartTime)
		allowed := start.Add(time.Duration(shift.Tolerance()) * time.Minute)
		diff := int(firstIn.Sub(allowed).Minutes())
		if diff > 0 && diff >= rule.LatenessThreshold() {
			lateness = diff
		}
	}

	var overtime int
	if shift != nil && shift.EndTime != nil && lastOut != nil {
		end := combineDayTime(day.In(s.loc), *shift.EndTime)
		diff := int(lastOut.Sub(end).Minutes())
		if diff > 0 {
			overtime = diff
		}
	}

	// A day with only check-outs has no first entry to anchor on, so it
	// counts as having no records.
	outcome := catalog.CodeDayNoRecords
	switch {
	case firstIn != nil && lastOut != nil:
		outcome = catalog.CodeDayComplete
	case firstIn != nil:
		outcome = catalog.CodeDayIncomplete
	}

	var outcomeID *string
	if id, oerr := s.catalogs.Resolve(ctx, catalog.DayOutcome, outcome); oerr == nil {
		outcomeID = &id
	} else if oerr != catalog.ErrCodeNotFound {
		return fmt.Errorf("failed to resolve day outcome: %w", oerr)
	}

	details := map[string]any{}
	if provisional {
		details["provisional"] = true
	}

	journal := attendance.Journal{
		CompanyID:       companyID,
		EmployeeID:      employeeID,
		Date:            from,
		FirstIn:         firstIn,
		LastOut:         lastOut,
		WorkedMinutes:   worked,
		LatenessMinutes: lateness,
		OvertimeMinutes: overtime,
		OutcomeID:       outcomeID,
		Details:         details,
		ComputedAt:      s.now(),
	}

	if err := s.journals.Upsert(ctx, journal); err != nil {
		return fmt.Errorf("failed to upsert daily journal: %w", err)
	}

	return nil
}
