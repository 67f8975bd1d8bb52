package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GameXcalibur/LynxATS/internal/dashboard"
	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store"
	"github.com/GameXcalibur/LynxATS/internal/store/storetest"
)

var anchor = time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)

func TestRun(t *testing.T) {
	ctx := context.Background()
	mem := storetest.NewMemory()

	counts, err := Run(ctx, mem, anchor)
	require.NoError(t, err)
	assert.Equal(t, Counts{Users: 3, Jobs: 5, Applications: 12, Comments: 18, Interviews: 5}, counts)

	sarah, err := mem.GetUser(ctx, "seed_user_001")
	require.NoError(t, err)
	assert.Equal(t, []string{JobID(0), JobID(1)}, []string(sarah.PostedJobs))

	jobs, err := mem.ListPostedJobs(ctx, sarah.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Senior Frontend Engineer", jobs[0].JobTitle)
	assert.Len(t, jobs[0].Applications, 3)
	assert.Equal(t, "Alex Johnson", jobs[0].Applications[0].Name)

	all, err := mem.CountComments(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(18), all)

	scheduled, err := mem.ListInterviews(ctx, store.InterviewFilter{Status: model.InterviewScheduled})
	require.NoError(t, err)
	assert.Len(t, scheduled, 5)
	for _, iv := range scheduled {
		require.NotNil(t, iv.ScheduledDate)
		assert.Equal(t, 10, iv.ScheduledDate.Hour())
		assert.True(t, iv.ScheduledDate.After(anchor))
	}
}

func TestRun_Twice(t *testing.T) {
	ctx := context.Background()
	mem := storetest.NewMemory()

	_, err := Run(ctx, mem, anchor)
	require.NoError(t, err)

	counts, err := Run(ctx, mem, anchor)
	require.NoError(t, err)
	assert.Equal(t, Counts{}, counts)

	all, err := mem.CountComments(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(18), all)
}

func TestRun_FeedsDashboard(t *testing.T) {
	ctx := context.Background()
	mem := storetest.NewMemory()
	_, err := Run(ctx, mem, anchor)
	require.NoError(t, err)

	summary, err := dashboard.NewAggregator(mem).Aggregate(ctx, "seed_user_001")
	require.NoError(t, err)

	assert.Equal(t, dashboard.Populated, summary.State)
	assert.Len(t, summary.Jobs, 2)
	assert.Equal(t, 5, summary.InterviewCount)

	var feedback int
	for _, job := range summary.Jobs {
		for _, app := range job.Applications {
			feedback += len(app.NoteAndFeedBack)
		}
	}
	assert.Equal(t, feedback, summary.FeedbackTotal)
	assert.Positive(t, summary.CommentCount)
}

func TestRun_StoreFailure(t *testing.T) {
	mem := storetest.NewMemory()
	boom := errors.New("write concern failed")
	mem.Fault = func(op string) error {
		if op == "CreateJob" {
			return boom
		}
		return nil
	}

	counts, err := Run(context.Background(), mem, anchor)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, counts.Users)
	assert.Zero(t, counts.Jobs)
}
