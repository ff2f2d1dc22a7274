package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/talenttrack/talenttrack-backend-go/internal/domain/attendance"
	"github.com/talenttrack/talenttrack-backend-go/internal/domain/employee"
)

// JournalJobs closes out attendance journals after the day ends, so
// employees who never marked still get a sin_registros row and open
// intervals stop accruing provisional minutes.
type JournalJobs struct {
	attendanceSvc attendance.Service
	employeeRepo  employee.Repository
	loc           *time.Location
}

func NewJournalJobs(attendanceSvc attendance.Service, employeeRepo employee.Repository, loc *time.Location) *JournalJobs {
	return &JournalJobs{
		attendanceSvc: attendanceSvc,
		employeeRepo:  employeeRepo,
		loc:           loc,
	}
}

func (j *JournalJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close_yesterday_journals", 1*time.Hour, j.CloseYesterdayJournals)
}

// CloseYesterdayJournals recomputes yesterday's journal for every employee.
// Runs hourly but only acts during the first hour of the local day.
func (j *JournalJobs) CloseYesterdayJournals(ctx context.Context) error {
	now := time.Now().In(j.loc)
	if now.Hour() != 1 {
		return nil
	}

	yesterday := now.AddDate(0, 0, -1)

	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return err
	}

	var failures int
	for _, companyID := range companyIDs {
		employees, err := j.employeeRepo.ListByCompany(ctx, companyID)
		if err != nil {
			slog.Error("Cron: failed to list employees", "company_id", companyID, "error", err)
			failures++
			continue
		}

		for _, emp := range employees {
			if err := j.attendanceSvc.RecomputeDay(ctx, companyID, emp.ID, yesterday); err != nil {
				slog.Error("Cron: journal close failed",
					"company_id", companyID, "empleado_id", emp.ID, "error", err)
				failures++
			}
		}
	}

	slog.Info("Cron: journal close finished",
		"date", yesterday.Format("2006-01-02"), "companies", len(companyIDs), "failures", failures)
	return nil
}
