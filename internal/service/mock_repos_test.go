package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cz4r/config"
	"cz4r/internal/model"
	"cz4r/internal/repository"
	"cz4r/pkg/clock"
)

// ── Mock WorkerRepository ──

type mockWorkerRepo struct {
	workers map[int64]*model.Worker
	nextID  int64
	err     error
}

func newMockWorkerRepo() *mockWorkerRepo {
	return &mockWorkerRepo{workers: make(map[int64]*model.Worker)}
}

func (m *mockWorkerRepo) add(w model.Worker) *model.Worker {
	if w.ID == 0 {
		m.nextID++
		w.ID = m.nextID
	} else if w.ID > m.nextID {
		m.nextID = w.ID
	}
	m.workers[w.ID] = &w
	return &w
}

func (m *mockWorkerRepo) Create(_ context.Context, w *model.Worker) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	w.ID = m.nextID
	cp := *w
	m.workers[w.ID] = &cp
	return nil
}

func (m *mockWorkerRepo) GetByID(_ context.Context, id int64) (*model.Worker, error) {
	if m.err != nil {
		return nil, m.err
	}
	if w, ok := m.workers[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkerRepo) GetByName(_ context.Context, name string) (*model.Worker, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, w := range m.workers {
		if w.Name == name {
			cp := *w
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkerRepo) Update(_ context.Context, w *model.Worker) error {
	cur, ok := m.workers[w.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cur.Name, cur.Admin = w.Name, w.Admin
	cur.Address, cur.Phone, cur.Email = w.Address, w.Phone, w.Email
	cur.RateHourlyCents = w.RateHourlyCents
	cur.RateMileageCents = w.RateMileageCents
	cur.RateDriveHourlyCents = w.RateDriveHourlyCents
	cur.FlatRateCents = w.FlatRateCents
	return nil
}

func (m *mockWorkerRepo) List(_ context.Context, deactivated bool) ([]model.Worker, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.Worker
	for _, w := range m.workers {
		if w.Deactivated == deactivated {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockWorkerRepo) SetDeactivated(_ context.Context, id int64, deactivated bool) error {
	w, ok := m.workers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	w.Deactivated = deactivated
	return nil
}

func (m *mockWorkerRepo) SetMustChangePassword(_ context.Context, id int64) error {
	w, ok := m.workers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	w.MustChangePassword = true
	return nil
}

func (m *mockWorkerRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	w, ok := m.workers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	w.PasswordHash = hash
	w.MustChangePassword = false
	return nil
}

// ── Mock AssignmentRepository ──

type assignmentKey struct{ job, worker int64 }

type mockAssignmentRepo struct {
	rows  map[assignmentKey]*model.Assignment
	jobs  *mockJobRepo
	calls []string
	err   error
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{rows: make(map[assignmentKey]*model.Assignment)}
}

func (m *mockAssignmentRepo) add(a model.Assignment) {
	m.rows[assignmentKey{a.JobID, a.WorkerID}] = &a
}

func (m *mockAssignmentRepo) ListForJob(_ context.Context, jobID int64) ([]model.Assignment, error) {
	var out []model.Assignment
	for k, a := range m.rows {
		if k.job == jobID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkerID < out[j].WorkerID })
	return out, nil
}

func (m *mockAssignmentRepo) Get(_ context.Context, jobID, workerID int64) (*model.Assignment, error) {
	if a, ok := m.rows[assignmentKey{jobID, workerID}]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ClearFlatRate(_ context.Context, jobID int64, ids []int64) error {
	return m.flag("clear", jobID, ids, false)
}

func (m *mockAssignmentRepo) SetFlatRate(_ context.Context, jobID int64, ids []int64) error {
	return m.flag("set", jobID, ids, true)
}

func (m *mockAssignmentRepo) flag(op string, jobID int64, ids []int64, v bool) error {
	if len(ids) == 0 {
		return nil
	}
	m.calls = append(m.calls, op)
	for _, id := range ids {
		if a, ok := m.rows[assignmentKey{jobID, id}]; ok {
			a.UsingFlatRate = v
		}
	}
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, jobID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	m.calls = append(m.calls, "delete")
	for _, id := range ids {
		delete(m.rows, assignmentKey{jobID, id})
	}
	return nil
}

func (m *mockAssignmentRepo) DeleteForJob(_ context.Context, jobID int64) error {
	m.calls = append(m.calls, "delete-all")
	for k := range m.rows {
		if k.job == jobID {
			delete(m.rows, k)
		}
	}
	return nil
}

func (m *mockAssignmentRepo) CreateBatch(_ context.Context, rows []model.Assignment) error {
	if len(rows) == 0 {
		return nil
	}
	if m.err != nil {
		return m.err
	}
	m.calls = append(m.calls, "create")
	for _, a := range rows {
		m.add(a)
	}
	return nil
}

func (m *mockAssignmentRepo) UpdateShift(_ context.Context, a *model.Assignment) (int64, error) {
	cur, ok := m.rows[assignmentKey{a.JobID, a.WorkerID}]
	if !ok {
		return 0, nil
	}
	cur.SignIn, cur.SignOut = a.SignIn, a.SignOut
	cur.MilesDriven, cur.HoursDriven = a.MilesDriven, a.HoursDriven
	cur.ExtraExpenseCents = a.ExtraExpenseCents
	cur.Notes = a.Notes
	return 1, nil
}

func (m *mockAssignmentRepo) ListShifts(_ context.Context, workerID int64, from, to time.Time) ([]model.ShiftRecord, error) {
	var out []model.ShiftRecord
	for k, a := range m.rows {
		if k.worker != workerID {
			continue
		}
		job, ok := m.jobs.jobs[k.job]
		if !ok || job.Date.Before(from) || job.Date.After(to) {
			continue
		}
		out = append(out, model.ShiftRecord{
			Assignment:  *a,
			Date:        job.Date,
			SiteName:    job.SiteName,
			Address:     job.Address,
			WorkOrder:   job.WorkOrder,
			ServiceCode: job.ServiceCode,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// ── Mock JobRepository ──

type mockJobRepo struct {
	jobs        map[int64]*model.Job
	nextID      int64
	workers     *mockWorkerRepo
	assignments *mockAssignmentRepo
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{jobs: make(map[int64]*model.Job)}
}

func (m *mockJobRepo) add(j model.Job) *model.Job {
	if j.ID == 0 {
		m.nextID++
		j.ID = m.nextID
	} else if j.ID > m.nextID {
		m.nextID = j.ID
	}
	m.jobs[j.ID] = &j
	return &j
}

func (m *mockJobRepo) Create(_ context.Context, job *model.Job) error {
	m.nextID++
	job.ID = m.nextID
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *mockJobRepo) GetByID(_ context.Context, id int64) (*model.Job, error) {
	if j, ok := m.jobs[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJobRepo) Update(_ context.Context, job *model.Job) error {
	if _, ok := m.jobs[job.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *mockJobRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.jobs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.jobs, id)
	return nil
}

func (m *mockJobRepo) matches(j *model.Job, f repository.JobFilter) bool {
	if j.Date.Before(f.From) || j.Date.After(f.To) {
		return false
	}
	has := func(field, sub string) bool {
		return sub == "" || strings.Contains(strings.ToLower(field), strings.ToLower(sub))
	}
	return has(j.SiteName, f.SiteName) && has(j.WorkOrder, f.WorkOrder) && has(j.Address, f.Address)
}

func (m *mockJobRepo) Search(_ context.Context, f repository.JobFilter) ([]repository.JobRow, error) {
	want := map[int64]bool{}
	for _, id := range f.WorkerIDs {
		want[id] = true
	}
	rows := []repository.JobRow{}
	for k, a := range m.assignments.rows {
		j, ok := m.jobs[k.job]
		if !ok || !m.matches(j, f) {
			continue
		}
		if f.WorkerIDs != nil && !want[k.worker] {
			continue
		}
		if f.Notes != "" && !strings.Contains(strings.ToLower(a.Notes), strings.ToLower(f.Notes)) {
			continue
		}
		w := m.workers.workers[k.worker]
		rows = append(rows, repository.JobRow{
			JobID: j.ID, WorkerID: k.worker, WorkerName: w.Name,
			SiteName: j.SiteName, Address: j.Address, WorkOrder: j.WorkOrder,
			ServiceCode: j.ServiceCode, JobNotes: j.Notes, Date: j.Date,
			SignIn: a.SignIn, SignOut: a.SignOut, WorkerNotes: a.Notes,
			MilesDriven: a.MilesDriven, HoursDriven: a.HoursDriven,
			ExtraExpenseCents: a.ExtraExpenseCents, UsingFlatRate: a.UsingFlatRate,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			if f.Ascending {
				return rows[i].Date.Before(rows[j].Date)
			}
			return rows[i].Date.After(rows[j].Date)
		}
		return rows[i].WorkerName < rows[j].WorkerName
	})
	return rows, nil
}

func (m *mockJobRepo) ListUnassigned(_ context.Context, f repository.JobFilter) ([]model.Job, error) {
	var out []model.Job
	for _, j := range m.jobs {
		if !m.matches(j, f) {
			continue
		}
		assigned := false
		for k := range m.assignments.rows {
			if k.job == j.ID {
				assigned = true
				break
			}
		}
		if !assigned {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

// ── Mock Transactor ──

// mockTx runs fn against the same repositories. It cannot roll back.
type mockTx struct {
	repo  *repository.Repository
	calls int
}

func (m *mockTx) Transaction(_ context.Context, fn func(repo *repository.Repository) error) error {
	m.calls++
	return fn(m.repo)
}

// ── Mock SessionRevoker ──

type mockRevoker struct {
	revoked map[string]time.Duration
	err     error
}

func newMockRevoker() *mockRevoker {
	return &mockRevoker{revoked: make(map[string]time.Duration)}
}

func (m *mockRevoker) RevokeSession(_ context.Context, jti string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.revoked[jti] = ttl
	return nil
}

func (m *mockRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[jti]
	return ok, nil
}

// ── Fixture ──

type fixture struct {
	cfg         *config.Config
	repo        *repository.Repository
	workers     *mockWorkerRepo
	jobs        *mockJobRepo
	assignments *mockAssignmentRepo
	tx          *mockTx
	clock       *clock.Clock
	logger      *zap.Logger
}

// today is the fixed date every service test runs on.
var today = time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	workers := newMockWorkerRepo()
	jobs := newMockJobRepo()
	assignments := newMockAssignmentRepo()
	jobs.workers = workers
	jobs.assignments = assignments
	assignments.jobs = jobs

	repo := &repository.Repository{Worker: workers, Job: jobs, Assignment: assignments}
	tx := &mockTx{repo: repo}
	repo.Tx = tx

	return &fixture{
		cfg: &config.Config{
			Server: config.ServerConfig{SiteURL: "https://cz4r.example.com"},
			Auth: config.AuthConfig{
				SessionSecret: "test-secret-key-for-unit-testing",
				SessionTTL:    time.Hour,
			},
			Payroll: config.PayrollConfig{HoursFloor: DefaultHoursFloor, JobListLookaheadDays: 15},
		},
		repo:        repo,
		workers:     workers,
		jobs:        jobs,
		assignments: assignments,
		tx:          tx,
		clock:       clock.Fixed(today.Add(10 * time.Hour)),
		logger:      zap.NewNop(),
	}
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}
