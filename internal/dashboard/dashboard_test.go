package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store"
)

type mockSources struct {
	mock.Mock
}

func (m *mockSources) CountComments(ctx context.Context, senderID string) (int64, error) {
	args := m.Called(ctx, senderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSources) ListInterviews(ctx context.Context, filter store.InterviewFilter) ([]model.Interview, error) {
	args := m.Called(ctx, filter)
	ivs, _ := args.Get(0).([]model.Interview)
	return ivs, args.Error(1)
}

func (m *mockSources) ListPostedJobs(ctx context.Context, authorID string) ([]model.Job, error) {
	args := m.Called(ctx, authorID)
	jobs, _ := args.Get(0).([]model.Job)
	return jobs, args.Error(1)
}

var scheduled = store.InterviewFilter{Status: model.InterviewScheduled}

func feedbackJobs() []model.Job {
	return []model.Job{
		{ID: "j1", Applications: []model.Application{{ID: "a1", NoteAndFeedBack: []string{"a", "b"}}}},
		{ID: "j2", Applications: []model.Application{{ID: "a2", NoteAndFeedBack: []string{"c"}}}},
	}
}

func interviews() []model.Interview {
	return []model.Interview{{ID: "i1", Status: model.InterviewScheduled}, {ID: "i2", Status: model.InterviewScheduled}}
}

func TestFeedbackTotal(t *testing.T) {
	assert.Equal(t, 3, FeedbackTotal(feedbackJobs()))

	jobs := append(feedbackJobs(),
		model.Job{ID: "no applications"},
		model.Job{ID: "nil feedback", Applications: []model.Application{{ID: "a3"}, {ID: "a4", NoteAndFeedBack: []string{"d"}}}},
	)
	assert.Equal(t, 4, FeedbackTotal(jobs))
	assert.Zero(t, FeedbackTotal(nil))
}

func TestAggregate_AllSourcesSucceed(t *testing.T) {
	src := &mockSources{}
	src.On("CountComments", mock.Anything, "viewer").Return(int64(7), nil)
	src.On("ListInterviews", mock.Anything, scheduled).Return(interviews(), nil)
	src.On("ListPostedJobs", mock.Anything, "viewer").Return(feedbackJobs(), nil)

	s, err := NewAggregator(src).Aggregate(context.Background(), "viewer")
	require.NoError(t, err)

	assert.Equal(t, Populated, s.State)
	assert.Equal(t, int64(7), s.CommentCount)
	assert.Equal(t, 2, s.InterviewCount)
	assert.Len(t, s.Jobs, 2)
	assert.Equal(t, 3, s.FeedbackTotal)
	assert.Empty(t, s.FailedSources)
	src.AssertExpectations(t)
}

func TestAggregate_OneSourceFails(t *testing.T) {
	tests := []struct {
		name   string
		failed string
	}{
		{"comments", SourceComments},
		{"interviews", SourceInterviews},
		{"jobs", SourceJobs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boom := errors.New("boom")
			src := &mockSources{}
			if tt.failed == SourceComments {
				src.On("CountComments", mock.Anything, "viewer").Return(int64(0), boom)
			} else {
				src.On("CountComments", mock.Anything, "viewer").Return(int64(7), nil)
			}
			if tt.failed == SourceInterviews {
				src.On("ListInterviews", mock.Anything, scheduled).Return(nil, boom)
			} else {
				src.On("ListInterviews", mock.Anything, scheduled).Return(interviews(), nil)
			}
			if tt.failed == SourceJobs {
				src.On("ListPostedJobs", mock.Anything, "viewer").Return(nil, boom)
			} else {
				src.On("ListPostedJobs", mock.Anything, "viewer").Return(feedbackJobs(), nil)
			}

			s, err := NewAggregator(src).Aggregate(context.Background(), "viewer")
			require.NoError(t, err)

			assert.Equal(t, Degraded, s.State)
			assert.Equal(t, []string{tt.failed}, s.FailedSources)

			if tt.failed == SourceComments {
				assert.Zero(t, s.CommentCount)
			} else {
				assert.Equal(t, int64(7), s.CommentCount)
			}
			if tt.failed == SourceInterviews {
				assert.NotNil(t, s.Interviews)
				assert.Empty(t, s.Interviews)
			} else {
				assert.Len(t, s.Interviews, 2)
			}
			if tt.failed == SourceJobs {
				assert.NotNil(t, s.Jobs)
				assert.Empty(t, s.Jobs)
				assert.Zero(t, s.FeedbackTotal)
			} else {
				assert.Len(t, s.Jobs, 2)
				assert.Equal(t, 3, s.FeedbackTotal)
			}
		})
	}
}

type panickingSources struct{ *mockSources }

func (p panickingSources) ListPostedJobs(context.Context, string) ([]model.Job, error) {
	var jobs map[string][]model.Job
	jobs["viewer"] = nil // nil map write
	return nil, nil
}

func TestAggregate_PanickingSourceIsContained(t *testing.T) {
	src := &mockSources{}
	src.On("CountComments", mock.Anything, "viewer").Return(int64(1), nil)
	src.On("ListInterviews", mock.Anything, scheduled).Return(interviews(), nil)

	var s Summary
	require.NotPanics(t, func() {
		var err error
		s, err = NewAggregator(panickingSources{src}).Aggregate(context.Background(), "viewer")
		require.NoError(t, err)
	})

	assert.Equal(t, Degraded, s.State)
	assert.Equal(t, []string{SourceJobs}, s.FailedSources)
	assert.Equal(t, int64(1), s.CommentCount)
}

func TestAggregate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	src := &mockSources{}
	src.On("CountComments", mock.Anything, "viewer").Return(int64(1), nil).Run(func(mock.Arguments) { cancel() })
	src.On("ListInterviews", mock.Anything, scheduled).Return(interviews(), nil)
	src.On("ListPostedJobs", mock.Anything, "viewer").Return(feedbackJobs(), nil)

	_, err := NewAggregator(src).Aggregate(ctx, "viewer")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBoard_Load(t *testing.T) {
	src := &mockSources{}
	src.On("CountComments", mock.Anything, "viewer").Return(int64(2), nil)
	src.On("ListInterviews", mock.Anything, scheduled).Return(interviews(), nil)
	src.On("ListPostedJobs", mock.Anything, "viewer").Return(feedbackJobs(), nil)

	b := NewBoard(NewAggregator(src), "viewer")
	assert.Equal(t, Idle, b.State())

	s, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Populated, b.State())
	assert.Equal(t, s, b.Summary())
}

func TestBoard_CancelledLoadCommitsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})

	src := &mockSources{}
	src.On("CountComments", mock.Anything, "viewer").Return(int64(2), nil).Run(func(mock.Arguments) { <-release })
	src.On("ListInterviews", mock.Anything, scheduled).Return(interviews(), nil)
	src.On("ListPostedJobs", mock.Anything, "viewer").Return(feedbackJobs(), nil)

	b := NewBoard(NewAggregator(src), "viewer")

	done := make(chan error, 1)
	go func() {
		_, err := b.Load(ctx)
		done <- err
	}()

	require.Eventually(t, func() bool { return b.State() == Loading }, time.Second, 5*time.Millisecond)
	cancel()
	close(release)

	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, Idle, b.State())
	assert.Equal(t, Summary{}, b.Summary())
}

func TestService_CachesPopulatedBoards(t *testing.T) {
	src := &mockSources{}
	src.On("CountComments", mock.Anything, "viewer").Return(int64(2), nil).Once()
	src.On("ListInterviews", mock.Anything, scheduled).Return(interviews(), nil).Once()
	src.On("ListPostedJobs", mock.Anything, "viewer").Return(feedbackJobs(), nil).Once()

	svc := NewService(src, time.Minute)

	first, err := svc.Summary(context.Background(), "viewer")
	require.NoError(t, err)
	second, err := svc.Summary(context.Background(), "viewer")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	src.AssertExpectations(t)
	src.AssertNumberOfCalls(t, "CountComments", 1)
}

func TestService_ReloadsDegradedBoards(t *testing.T) {
	src := &mockSources{}
	src.On("CountComments", mock.Anything, "viewer").Return(int64(0), errors.New("down")).Once()
	src.On("CountComments", mock.Anything, "viewer").Return(int64(4), nil).Once()
	src.On("ListInterviews", mock.Anything, scheduled).Return(interviews(), nil)
	src.On("ListPostedJobs", mock.Anything, "viewer").Return(feedbackJobs(), nil)

	svc := NewService(src, time.Minute)

	first, err := svc.Summary(context.Background(), "viewer")
	require.NoError(t, err)
	assert.Equal(t, Degraded, first.State)

	second, err := svc.Summary(context.Background(), "viewer")
	require.NoError(t, err)
	assert.Equal(t, Populated, second.State)
	assert.Equal(t, int64(4), second.CommentCount)
}

func TestService_CollapsesConcurrentLoads(t *testing.T) {
	release := make(chan struct{})
	src := &mockSources{}
	src.On("CountComments", mock.Anything, "viewer").Return(int64(2), nil).Run(func(mock.Arguments) { <-release })
	src.On("ListInterviews", mock.Anything, scheduled).Return(interviews(), nil)
	src.On("ListPostedJobs", mock.Anything, "viewer").Return(feedbackJobs(), nil)

	svc := NewService(src, time.Minute)

	const callers = 10
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := svc.Summary(context.Background(), "viewer")
			assert.NoError(t, err)
			assert.Equal(t, Populated, s.State)
		}()
	}

	require.Eventually(t, func() bool {
		return svc.board("viewer").State() == Loading
	}, time.Second, 5*time.Millisecond)
	close(release)
	wg.Wait()

	src.AssertNumberOfCalls(t, "CountComments", 1)
}

func TestSummary_JSON(t *testing.T) {
	raw, err := json.Marshal(Summary{State: Degraded, Interviews: []model.Interview{}, Jobs: []model.Job{}, FailedSources: []string{SourceJobs}})
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "degraded", body["state"])
	assert.Equal(t, []interface{}{"jobs"}, body["failedSources"])
}

func TestService_ForgetDuringLoad(t *testing.T) {
	release := make(chan struct{})
	src := &mockSources{}
	src.On("CountComments", mock.Anything, "viewer").Return(int64(1), nil).Run(func(mock.Arguments) { <-release }).Once()
	src.On("CountComments", mock.Anything, "viewer").Return(int64(2), nil)
	src.On("ListInterviews", mock.Anything, scheduled).Return(interviews(), nil)
	src.On("ListPostedJobs", mock.Anything, "viewer").Return(feedbackJobs(), nil)

	svc := NewService(src, time.Minute)

	stale := make(chan Summary, 1)
	go func() {
		s, err := svc.Summary(context.Background(), "viewer")
		assert.NoError(t, err)
		stale <- s
	}()
	require.Eventually(t, func() bool {
		return svc.board("viewer").State() == Loading
	}, time.Second, 5*time.Millisecond)

	// A write by the viewer lands while the first load is still fetching.
	svc.Forget("viewer")

	// The next read must not wait for, or reuse, the load started before it.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	fresh, err := svc.Summary(ctx, "viewer")
	require.NoError(t, err)
	assert.Equal(t, int64(2), fresh.CommentCount)

	close(release)
	assert.Equal(t, int64(1), (<-stale).CommentCount)

	cached, err := svc.Summary(context.Background(), "viewer")
	require.NoError(t, err)
	assert.Equal(t, int64(2), cached.CommentCount)
	src.AssertNumberOfCalls(t, "CountComments", 2)
}
