package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"cz4r/config"
	"cz4r/internal/dto"
	"cz4r/internal/model"
	"cz4r/internal/repository"
	"cz4r/pkg/clock"
)

// displayDate is how job dates appear on pages, e.g. "March 4, 2024".
const displayDate = "January 2, 2006"

// JobService job list, editing and calendar feed
type JobService interface {
	// List searches (job, worker) rows. Only admins may pick workers; everyone
	// else sees their own rows.
	List(ctx context.Context, who dto.Identity, q *dto.JobListQuery) (*dto.JobListPage, error)
	EditPage(ctx context.Context, id *int64) (*dto.JobEditPage, error)
	// Save creates the job when f.ID is nil, otherwise updates it and
	// reconciles its assignments, all in one transaction.
	Save(ctx context.Context, f *dto.JobForm) (int64, error)
	Delete(ctx context.Context, id int64) error
	// Calendar renders a worker's upcoming jobs as an iCalendar feed.
	Calendar(ctx context.Context, workerID int64) ([]byte, error)
}

type jobService struct {
	repo      *repository.Repository
	clock     *clock.Clock
	lookahead int
	siteURL   string
	logger    *zap.Logger
}

// NewJobService creates a JobService.
func NewJobService(cfg *config.Config, repo *repository.Repository, clk *clock.Clock, logger *zap.Logger) JobService {
	return &jobService{
		repo:      repo,
		clock:     clk,
		lookahead: cfg.Payroll.JobListLookaheadDays,
		siteURL:   strings.TrimRight(cfg.Server.SiteURL, "/"),
		logger:    logger,
	}
}

// ────── List ──────

func (s *jobService) List(ctx context.Context, who dto.Identity, q *dto.JobListQuery) (*dto.JobListPage, error) {
	today := s.clock.Today()
	from, to := today, today.AddDate(0, 0, s.lookahead)
	if q.From != nil {
		from = *q.From
	}
	if q.To != nil {
		to = *q.To
	}

	// order is always sent by the search form, so its absence means the
	// page was opened without searching and every status is shown.
	searched := q.Order != ""
	showAssigned := !searched || isSet(q.Assigned)
	showStarted := !searched || isSet(q.Started)
	showCompleted := !searched || isSet(q.Completed)

	order := dto.OrderLatest
	if q.Order == dto.OrderEarliest {
		order = dto.OrderEarliest
	}

	filter := repository.JobFilter{
		From:      from,
		To:        to,
		SiteName:  q.SiteName,
		WorkOrder: q.WorkOrder,
		Address:   q.Address,
		Notes:     q.Notes,
		Ascending: order == dto.OrderEarliest,
	}
	var picked map[int64]bool
	switch {
	case who.Admin && q.Workers != nil:
		filter.WorkerIDs = ParseIDList(*q.Workers)
		picked = make(map[int64]bool, len(filter.WorkerIDs))
		for _, id := range filter.WorkerIDs {
			picked[id] = true
		}
	case !who.Admin:
		filter.WorkerIDs = []int64{who.WorkerID}
	}

	rows, err := s.repo.Job.Search(ctx, filter)
	if err != nil {
		return nil, storeError(s.logger, "search jobs", err, "")
	}

	items := make([]dto.JobListItem, 0, len(rows))
	if who.Admin {
		orphans, err := s.repo.Job.ListUnassigned(ctx, filter)
		if err != nil {
			return nil, storeError(s.logger, "list unassigned jobs", err, "")
		}
		if len(orphans) > 0 {
			ids := make([]int64, len(orphans))
			for i, j := range orphans {
				ids[i] = j.ID
				items = append(items, dto.JobListItem{
					JobID:       j.ID,
					SiteName:    j.SiteName,
					Address:     j.Address,
					Date:        j.Date.Format(displayDate),
					Notes:       j.Notes,
					WorkOrder:   j.WorkOrder,
					ServiceCode: j.ServiceCode,
					Status:      dto.StatusOrphan,
				})
			}
			s.logger.Warn("orphan jobs returned in search", zap.Int64s("job_ids", ids))
		}
	}

	for _, r := range rows {
		status := shiftStatus(r)
		switch status {
		case dto.StatusAssigned:
			if !showAssigned {
				continue
			}
		case dto.StatusStarted:
			if !showStarted {
				continue
			}
		case dto.StatusSignedOut:
			if !showCompleted {
				continue
			}
		}
		items = append(items, dto.JobListItem{
			JobID:       r.JobID,
			WorkerID:    r.WorkerID,
			WorkerName:  r.WorkerName,
			SiteName:    r.SiteName,
			Address:     r.Address,
			Date:        r.Date.Format(displayDate),
			Notes:       r.JobNotes,
			WorkOrder:   r.WorkOrder,
			ServiceCode: r.ServiceCode,
			Status:      status,
		})
	}

	workers, err := s.repo.Worker.List(ctx, false)
	if err != nil {
		return nil, storeError(s.logger, "list workers", err, "")
	}
	options := make([]dto.WorkerOption, len(workers))
	for i, w := range workers {
		options[i] = dto.WorkerOption{ID: w.ID, Name: w.Name, Selected: picked == nil || picked[w.ID]}
	}

	return &dto.JobListPage{
		Jobs: items,
		Params: dto.JobListParams{
			Start:      from.Format(time.DateOnly),
			End:        to.Format(time.DateOnly),
			SiteName:   q.SiteName,
			WorkOrder:  q.WorkOrder,
			Address:    q.Address,
			FieldNotes: q.Notes,
			Workers:    options,
		},
		Order:     order,
		Assigned:  showAssigned,
		Started:   showStarted,
		Completed: showCompleted,
	}, nil
}

// shiftStatus classifies a worker's progress on a job. A shift with no
// times but some recorded data counts as started.
func shiftStatus(r repository.JobRow) string {
	switch {
	case !r.SignIn.Valid && !r.SignOut.Valid:
		if r.HoursDriven != 0 || r.MilesDriven != 0 || r.ExtraExpenseCents != 0 || r.WorkerNotes != "" {
			return dto.StatusStarted
		}
		return dto.StatusAssigned
	case !r.SignIn.Valid:
		return dto.StatusOutNotIn
	case !r.SignOut.Valid:
		return dto.StatusStarted
	default:
		return dto.StatusSignedOut
	}
}

func isSet(b *bool) bool { return b != nil && *b }

// ────── Edit ──────

func (s *jobService) EditPage(ctx context.Context, id *int64) (*dto.JobEditPage, error) {
	workers, err := s.repo.Worker.List(ctx, false)
	if err != nil {
		return nil, storeError(s.logger, "list workers", err, "")
	}

	page := &dto.JobEditPage{}
	current := map[int64]bool{}
	if id != nil {
		job, err := s.repo.Job.GetByID(ctx, *id)
		if err != nil {
			return nil, storeError(s.logger, "load job", err, "Job not found", zap.Int64("job_id", *id))
		}
		page.Job = &dto.JobView{
			ID:          job.ID,
			SiteName:    job.SiteName,
			WorkOrder:   job.WorkOrder,
			ServiceCode: job.ServiceCode,
			Address:     job.Address,
			Date:        job.Date.Format(time.DateOnly),
			Notes:       job.Notes,
		}

		rows, err := s.repo.Assignment.ListForJob(ctx, job.ID)
		if err != nil {
			return nil, storeError(s.logger, "list assignments", err, "", zap.Int64("job_id", job.ID))
		}
		for _, a := range rows {
			current[a.WorkerID] = a.UsingFlatRate
		}
	}

	page.Workers = make([]dto.JobWorkerOption, len(workers))
	for i, w := range workers {
		flat, assigned := current[w.ID]
		page.Workers[i] = dto.JobWorkerOption{ID: w.ID, Name: w.Name, Assigned: assigned, FlatRate: flat}
	}
	return page, nil
}

func (s *jobService) Save(ctx context.Context, f *dto.JobForm) (int64, error) {
	job := &model.Job{
		SiteName:    f.SiteName,
		WorkOrder:   f.WorkOrder,
		ServiceCode: f.ServiceCode,
		Address:     f.Address,
		Date:        f.Date,
		Notes:       f.Notes,
	}
	desired := BuildDesiredAssignments(f.Assigned, f.FlatRate)

	if f.ID == nil {
		err := s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
			if err := tx.Job.Create(ctx, job); err != nil {
				return err
			}
			return tx.Assignment.CreateBatch(ctx, newAssignments(job.ID, desired))
		})
		if err != nil {
			return 0, storeError(s.logger, "create job", err, "")
		}
		s.logger.Info("job created", zap.Int64("job_id", job.ID), zap.Int("assigned", len(desired)))
		return job.ID, nil
	}

	job.ID = *f.ID
	var plan AssignmentPlan
	err := s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Job.Update(ctx, job); err != nil {
			return err
		}
		rows, err := tx.Assignment.ListForJob(ctx, job.ID)
		if err != nil {
			return err
		}
		inactive, err := tx.Worker.List(ctx, true)
		if err != nil {
			return err
		}

		plan = ReconcileAssignments(pairsOf(rows), keepInactive(desired, rows, inactive))
		if err := tx.Assignment.ClearFlatRate(ctx, job.ID, plan.ClearFlatRate); err != nil {
			return err
		}
		if err := tx.Assignment.SetFlatRate(ctx, job.ID, plan.SetFlatRate); err != nil {
			return err
		}
		if err := tx.Assignment.Delete(ctx, job.ID, plan.Remove); err != nil {
			return err
		}
		return tx.Assignment.CreateBatch(ctx, newAssignments(job.ID, plan.Add))
	})
	if err != nil {
		return 0, storeError(s.logger, "update job", err, "Job not found", zap.Int64("job_id", job.ID))
	}

	s.logger.Info("job updated",
		zap.Int64("job_id", job.ID),
		zap.Int64s("removed", plan.Remove),
		zap.Int("added", len(plan.Add)),
		zap.Int64s("flat_rate_cleared", plan.ClearFlatRate),
		zap.Int64s("flat_rate_set", plan.SetFlatRate),
	)
	return job.ID, nil
}

// keepInactive adds the current assignments of deactivated workers to the
// desired set. The edit form never lists those workers, so their rows and
// shift data must survive a save.
func keepInactive(desired []AssignmentPair, current []model.Assignment, inactive []model.Worker) []AssignmentPair {
	if len(inactive) == 0 {
		return desired
	}
	off := make(map[int64]bool, len(inactive))
	for _, w := range inactive {
		off[w.ID] = true
	}
	out := append([]AssignmentPair(nil), desired...)
	for _, a := range current {
		if off[a.WorkerID] {
			out = append(out, AssignmentPair{WorkerID: a.WorkerID, FlatRate: a.UsingFlatRate})
		}
	}
	return out
}

func pairsOf(rows []model.Assignment) []AssignmentPair {
	pairs := make([]AssignmentPair, len(rows))
	for i, a := range rows {
		pairs[i] = AssignmentPair{WorkerID: a.WorkerID, FlatRate: a.UsingFlatRate}
	}
	return pairs
}

func newAssignments(jobID int64, pairs []AssignmentPair) []model.Assignment {
	rows := make([]model.Assignment, len(pairs))
	for i, p := range pairs {
		rows[i] = model.Assignment{JobID: jobID, WorkerID: p.WorkerID, UsingFlatRate: p.FlatRate}
	}
	return rows
}

// ────── Delete ──────

func (s *jobService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Assignment.DeleteForJob(ctx, id); err != nil {
			return err
		}
		return tx.Job.Delete(ctx, id)
	})
	if err != nil {
		return storeError(s.logger, "delete job", err, "Job not found", zap.Int64("job_id", id))
	}
	s.logger.Info("job deleted", zap.Int64("job_id", id))
	return nil
}

// ────── Calendar ──────

func (s *jobService) Calendar(ctx context.Context, workerID int64) ([]byte, error) {
	from := s.clock.Today()
	to := from.AddDate(0, 0, s.lookahead)

	shifts, err := s.repo.Assignment.ListShifts(ctx, workerID, from, to)
	if err != nil {
		return nil, storeError(s.logger, "list upcoming shifts", err, "", zap.Int64("worker_id", workerID))
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//cz4r//jobs//EN")
	cal.SetXWRCalName("CZ4R jobs")

	stamp := s.clock.Now().UTC()
	for _, sh := range shifts {
		ev := cal.AddEvent(fmt.Sprintf("job-%d-worker-%d@cz4r", sh.JobID, sh.WorkerID))
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(sh.Date)
		ev.SetAllDayEndAt(sh.Date.AddDate(0, 0, 1))
		ev.SetSummary(sh.SiteName)
		if sh.Address != "" {
			ev.SetLocation(sh.Address)
		}
		ev.SetDescription(shiftDescription(sh))
		if s.siteURL != "" {
			ev.SetURL(fmt.Sprintf("%s/checkinout?id=%d&worker=%d", s.siteURL, sh.JobID, sh.WorkerID))
		}
	}

	return []byte(cal.Serialize()), nil
}

func shiftDescription(sh model.ShiftRecord) string {
	var b strings.Builder
	if sh.WorkOrder != "" {
		fmt.Fprintf(&b, "Work order: %s\n", sh.WorkOrder)
	}
	if sh.ServiceCode != "" {
		fmt.Fprintf(&b, "Service code: %s\n", sh.ServiceCode)
	}
	if sh.UsingFlatRate {
		b.WriteString("Flat rate\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
