package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store"
)

// Run exercises s against the store.Store contract. s is dropped before
// every subtest.
func Run(t *testing.T, s store.Store) {
	tests := []struct {
		name string
		fn   func(t *testing.T, ctx context.Context, s store.Store)
	}{
		{"Users", testUsers},
		{"JobsPushIntoAuthor", testJobs},
		{"ApplicationsPushIntoJob", testApplications},
		{"CommentsPushIntoApplication", testComments},
		{"Interviews", testInterviews},
		{"Drop", testDrop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Drop(ctx))
			tt.fn(t, ctx, s)
		})
	}
}

func mustUser(t *testing.T, ctx context.Context, s store.Store, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, Name: username}
	require.NoError(t, s.CreateUser(ctx, u))
	return u
}

func mustJob(t *testing.T, ctx context.Context, s store.Store, author, title string, createdAt time.Time) *model.Job {
	t.Helper()
	j := &model.Job{Author: author, CreatedAt: createdAt}
	j.JobTitle = title
	require.NoError(t, s.CreateJob(ctx, j))
	return j
}

func mustApplication(t *testing.T, ctx context.Context, s store.Store, jobID, name string) *model.Application {
	t.Helper()
	a := &model.Application{Name: name, Email: name + "@example.com"}
	require.NoError(t, s.CreateApplication(ctx, jobID, a))
	return a
}

func testUsers(t *testing.T, ctx context.Context, s store.Store) {
	u := mustUser(t, ctx, s, "alice")
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Empty(t, got.PostedJobs)

	err = s.CreateUser(ctx, &model.User{Username: "alice"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	_, err = s.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testJobs(t *testing.T, ctx context.Context, s store.Store) {
	author := mustUser(t, ctx, s, "author")
	other := mustUser(t, ctx, s, "other")

	base := time.Now().UTC().Truncate(time.Millisecond)
	second := mustJob(t, ctx, s, author.ID, "Backend Engineer", base.Add(time.Second))
	first := mustJob(t, ctx, s, author.ID, "Frontend Engineer", base)
	mustJob(t, ctx, s, other.ID, "Designer", base)

	assert.Equal(t, model.DefaultOperationType, first.JobPostingOperationType)
	assert.NotZero(t, first.ListedAt)

	got, err := s.GetUser(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, first.ID}, []string(got.PostedJobs))

	jobs, err := s.ListPostedJobs(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, first.ID, jobs[0].ID)
	assert.Equal(t, "Frontend Engineer", jobs[0].JobTitle)
	assert.Equal(t, second.ID, jobs[1].ID)

	none, err := s.ListPostedJobs(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)

	orphan := &model.Job{Author: "missing"}
	err = s.CreateJob(ctx, orphan)
	assert.ErrorIs(t, err, store.ErrInvalidReference)
	_, err = s.GetJob(ctx, orphan.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testApplications(t *testing.T, ctx context.Context, s store.Store) {
	author := mustUser(t, ctx, s, "author")
	job := mustJob(t, ctx, s, author.ID, "Backend Engineer", time.Time{})

	a1 := mustApplication(t, ctx, s, job.ID, "ada")
	a2 := mustApplication(t, ctx, s, job.ID, "grace")
	a3 := mustApplication(t, ctx, s, job.ID, "linus")

	got, err := s.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a1.ID, a2.ID, a3.ID}, []string(got.ApplicationIDs))
	require.Len(t, got.Applications, 3)
	for i, want := range []*model.Application{a1, a2, a3} {
		assert.Equal(t, want.ID, got.Applications[i].ID)
		assert.Equal(t, want.Email, got.Applications[i].Email)
	}

	app, err := s.GetApplication(ctx, a2.ID)
	require.NoError(t, err)
	assert.Equal(t, "grace", app.Name)
	assert.Empty(t, app.NoteAndFeedBack)

	orphan := &model.Application{Name: "nobody", Email: "nobody@example.com"}
	err = s.CreateApplication(ctx, "missing", orphan)
	assert.ErrorIs(t, err, store.ErrInvalidReference)
	_, err = s.GetApplication(ctx, orphan.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetJob(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testComments(t *testing.T, ctx context.Context, s store.Store) {
	reviewer := mustUser(t, ctx, s, "reviewer")
	other := mustUser(t, ctx, s, "other")
	job := mustJob(t, ctx, s, reviewer.ID, "Backend Engineer", time.Time{})
	app := mustApplication(t, ctx, s, job.ID, "ada")

	var ids []string
	for _, c := range []*model.Comment{
		{Content: "strong resume", Sender: reviewer.ID, Receiver: app.ID},
		{Content: "good call", Sender: reviewer.ID, Receiver: app.ID},
		{Content: "agree", Sender: other.ID, Receiver: app.ID},
	} {
		require.NoError(t, s.CreateComment(ctx, c))
		ids = append(ids, c.ID)
	}

	got, err := s.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, ids, []string(got.NoteAndFeedBack))

	jobs, err := s.ListPostedJobs(ctx, reviewer.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Len(t, jobs[0].Applications, 1)
	assert.Len(t, jobs[0].Applications[0].NoteAndFeedBack, 3)

	n, err := s.CountComments(ctx, reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.CountComments(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	err = s.CreateComment(ctx, &model.Comment{Content: "x", Sender: reviewer.ID, Receiver: "missing"})
	assert.ErrorIs(t, err, store.ErrInvalidReference)
	err = s.CreateComment(ctx, &model.Comment{Content: "x", Sender: "missing", Receiver: app.ID})
	assert.ErrorIs(t, err, store.ErrInvalidReference)

	n, err = s.CountComments(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func testInterviews(t *testing.T, ctx context.Context, s store.Store) {
	alice := mustUser(t, ctx, s, "alice")
	bob := mustUser(t, ctx, s, "bob")
	job := mustJob(t, ctx, s, alice.ID, "Backend Engineer", time.Time{})
	app := mustApplication(t, ctx, s, job.ID, "ada")

	newInterview := func(interviewer string) *model.Interview {
		iv := &model.Interview{Interviewer: interviewer}
		iv.Job = job.ID
		iv.Applicant = app.ID
		iv.Title = "first round"
		return iv
	}

	first := newInterview(alice.ID)
	require.NoError(t, s.CreateInterview(ctx, first))
	assert.Equal(t, model.InterviewScheduled, first.Status)

	second := newInterview(bob.ID)
	require.NoError(t, s.CreateInterview(ctx, second))

	bad := newInterview(alice.ID)
	bad.Applicant = "missing"
	assert.ErrorIs(t, s.CreateInterview(ctx, bad), store.ErrInvalidReference)
	bad = newInterview("missing")
	assert.ErrorIs(t, s.CreateInterview(ctx, bad), store.ErrInvalidReference)
	bad = newInterview(alice.ID)
	bad.Job = "missing"
	assert.ErrorIs(t, s.CreateInterview(ctx, bad), store.ErrInvalidReference)

	updated, err := s.UpdateInterviewStatus(ctx, second.ID, model.InterviewCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.InterviewCompleted, updated.Status)
	assert.Equal(t, "first round", updated.Title)

	scheduled, err := s.ListInterviews(ctx, store.InterviewFilter{Status: model.InterviewScheduled})
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	assert.Equal(t, first.ID, scheduled[0].ID)

	all, err := s.ListInterviews(ctx, store.InterviewFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	bobs, err := s.ListInterviews(ctx, store.InterviewFilter{InterviewerID: bob.ID})
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	assert.Equal(t, second.ID, bobs[0].ID)

	_, err = s.UpdateInterviewStatus(ctx, "missing", model.InterviewCanceled)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testDrop(t *testing.T, ctx context.Context, s store.Store) {
	u := mustUser(t, ctx, s, "alice")
	mustJob(t, ctx, s, u.ID, "Backend Engineer", time.Time{})

	require.NoError(t, s.Drop(ctx))

	_, err := s.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	jobs, err := s.ListPostedJobs(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, jobs)

	// Collections are usable again after a drop.
	mustUser(t, ctx, s, "alice")
}
