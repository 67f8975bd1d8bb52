// Package storetest provides an in-memory store.Store for handler and
// service tests, and the conformance suite every backend must pass.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store"
)

// Memory is a store.Store kept in maps. Fault, when set, is consulted at
// the start of every call with the method name; a non-nil result is
// returned as the call's error.
type Memory struct {
	mu           sync.Mutex
	users        map[string]model.User
	jobs         map[string]model.Job
	applications map[string]model.Application
	comments     map[string]model.Comment
	interviews   map[string]model.Interview

	Fault func(op string) error
}

var _ store.Store = (*Memory)(nil)

func NewMemory() *Memory {
	m := &Memory{}
	m.reset()
	return m
}

func (m *Memory) reset() {
	m.users = map[string]model.User{}
	m.jobs = map[string]model.Job{}
	m.applications = map[string]model.Application{}
	m.comments = map[string]model.Comment{}
	m.interviews = map[string]model.Interview{}
}

func (m *Memory) fault(op string) error {
	if m.Fault == nil {
		return nil
	}
	return m.Fault(op)
}

func invalid(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, store.ErrInvalidReference)
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (m *Memory) CreateUser(_ context.Context, user *model.User) error {
	if err := m.fault("CreateUser"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username {
			return fmt.Errorf("username %q: %w", user.Username, store.ErrDuplicate)
		}
	}
	store.Stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if user.PostedJobs == nil {
		user.PostedJobs = []string{}
	}
	m.users[user.ID] = cloneUser(*user)
	return nil
}

func (m *Memory) GetUser(_ context.Context, id string) (*model.User, error) {
	if err := m.fault("GetUser"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func (m *Memory) CreateJob(_ context.Context, job *model.Job) error {
	if err := m.fault("CreateJob"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	author, ok := m.users[job.Author]
	if !ok {
		return invalid("author", job.Author)
	}
	store.Stamp(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	if job.ApplicationIDs == nil {
		job.ApplicationIDs = []string{}
	}
	if job.JobPostingOperationType == "" {
		job.JobPostingOperationType = model.DefaultOperationType
	}
	if job.ListedAt == 0 {
		job.ListedAt = job.CreatedAt.UnixMilli()
	}
	job.Applications = nil

	m.jobs[job.ID] = cloneJob(*job)
	author.PostedJobs = append(cloneStrings(author.PostedJobs), job.ID)
	author.UpdatedAt = now()
	m.users[author.ID] = author
	return nil
}

// populated returns a copy of job with its applications attached.
// Callers hold m.mu.
func (m *Memory) populated(job model.Job) model.Job {
	job = cloneJob(job)
	apps := lo.FilterMap(job.ApplicationIDs, func(id string, _ int) (model.Application, bool) {
		app, ok := m.applications[id]
		return cloneApplication(app), ok
	})
	job.AttachApplications(apps)
	return job
}

func (m *Memory) GetJob(_ context.Context, id string) (*model.Job, error) {
	if err := m.fault("GetJob"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	job = m.populated(job)
	return &job, nil
}

func (m *Memory) ListPostedJobs(_ context.Context, authorID string) ([]model.Job, error) {
	if err := m.fault("ListPostedJobs"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []model.Job{}
	for _, job := range m.jobs {
		if job.Author == authorID {
			out = append(out, m.populated(job))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) CreateApplication(_ context.Context, jobID string, app *model.Application) error {
	if err := m.fault("CreateApplication"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return invalid("job", jobID)
	}
	store.Stamp(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if app.NoteAndFeedBack == nil {
		app.NoteAndFeedBack = []string{}
	}

	m.applications[app.ID] = cloneApplication(*app)
	job.ApplicationIDs = append(cloneStrings(job.ApplicationIDs), app.ID)
	job.UpdatedAt = now()
	m.jobs[job.ID] = job
	return nil
}

func (m *Memory) GetApplication(_ context.Context, id string) (*model.Application, error) {
	if err := m.fault("GetApplication"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.applications[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	app = cloneApplication(app)
	return &app, nil
}

func (m *Memory) CreateComment(_ context.Context, comment *model.Comment) error {
	if err := m.fault("CreateComment"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[comment.Sender]; !ok {
		return invalid("sender", comment.Sender)
	}
	app, ok := m.applications[comment.Receiver]
	if !ok {
		return invalid("receiver", comment.Receiver)
	}
	store.Stamp(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	m.comments[comment.ID] = *comment
	app.NoteAndFeedBack = append(cloneStrings(app.NoteAndFeedBack), comment.ID)
	app.UpdatedAt = now()
	m.applications[app.ID] = app
	return nil
}

func (m *Memory) CountComments(_ context.Context, senderID string) (int64, error) {
	if err := m.fault("CountComments"); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	return int64(lo.CountBy(lo.Values(m.comments), func(c model.Comment) bool {
		return senderID == "" || c.Sender == senderID
	})), nil
}

func (m *Memory) CreateInterview(_ context.Context, interview *model.Interview) error {
	if err := m.fault("CreateInterview"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[interview.Job]; !ok {
		return invalid("job", interview.Job)
	}
	if _, ok := m.applications[interview.Applicant]; !ok {
		return invalid("applicant", interview.Applicant)
	}
	if _, ok := m.users[interview.Interviewer]; !ok {
		return invalid("interviewer", interview.Interviewer)
	}
	if interview.ID == "" {
		interview.ID = model.NewID()
	}
	if interview.Status == "" {
		interview.Status = model.InterviewScheduled
	}
	m.interviews[interview.ID] = *interview
	return nil
}

func (m *Memory) ListInterviews(_ context.Context, filter store.InterviewFilter) ([]model.Interview, error) {
	if err := m.fault("ListInterviews"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := lo.Filter(lo.Values(m.interviews), func(iv model.Interview, _ int) bool {
		return (filter.Status == "" || iv.Status == filter.Status) &&
			(filter.InterviewerID == "" || iv.Interviewer == filter.InterviewerID)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) UpdateInterviewStatus(_ context.Context, id string, status model.InterviewStatus) (*model.Interview, error) {
	if err := m.fault("UpdateInterviewStatus"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	iv, ok := m.interviews[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	iv.Status = status
	m.interviews[id] = iv
	return &iv, nil
}

func (m *Memory) Drop(_ context.Context) error {
	if err := m.fault("Drop"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	return nil
}

func cloneStrings(s []string) []string {
	return append([]string{}, s...)
}

func cloneUser(u model.User) model.User {
	u.PostedJobs = cloneStrings(u.PostedJobs)
	return u
}

func cloneJob(j model.Job) model.Job {
	j.ApplicationIDs = cloneStrings(j.ApplicationIDs)
	j.Applications = nil
	return j
}

func cloneApplication(a model.Application) model.Application {
	a.NoteAndFeedBack = cloneStrings(a.NoteAndFeedBack)
	return a
}
