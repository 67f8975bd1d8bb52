// Package dashboard builds the landing-page summary of a reviewer from
// three independent sources, fetched concurrently. A failing source is
// replaced by an empty result instead of failing the summary.
package dashboard

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/GameXcalibur/LynxATS/internal/logger"
	"github.com/GameXcalibur/LynxATS/internal/metrics"
	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store"
)

// Source names, used in FailedSources, logs and metrics.
const (
	SourceComments   = "comments"
	SourceInterviews = "interviews"
	SourceJobs       = "jobs"
)

// Sources is the part of store.Store the dashboard reads.
type Sources interface {
	CountComments(ctx context.Context, senderID string) (int64, error)
	ListInterviews(ctx context.Context, filter store.InterviewFilter) ([]model.Interview, error)
	ListPostedJobs(ctx context.Context, authorID string) ([]model.Job, error)
}

// Summary is what the dashboard renders.
type Summary struct {
	State          State             `json:"state"`
	CommentCount   int64             `json:"commentCount"`
	Interviews     []model.Interview `json:"interviews"`
	InterviewCount int               `json:"interviewCount"`
	Jobs           []model.Job       `json:"jobs"`
	FeedbackTotal  int               `json:"feedbackTotal"`
	FailedSources  []string          `json:"failedSources,omitempty"`
}

// Aggregator composes a Summary from Sources.
type Aggregator struct {
	sources Sources
}

func NewAggregator(sources Sources) *Aggregator {
	return &Aggregator{sources: sources}
}

// Aggregate fetches the viewer's comment count, the scheduled interviews
// and the viewer's posted jobs in parallel, then merges them.
//
// Source failures never surface as an error; they degrade the summary.
// The only error is ctx's, when it ends before the merge, in which case
// the fetched results are thrown away.
func (a *Aggregator) Aggregate(ctx context.Context, viewerID string) (Summary, error) {
	start := time.Now()
	defer func() {
		metrics.DashboardDuration.Observe(time.Since(start).Seconds())
	}()

	var (
		comments   = Result[int64]{Source: SourceComments}
		interviews = Result[[]model.Interview]{Source: SourceInterviews, Data: []model.Interview{}}
		jobs       = Result[[]model.Job]{Source: SourceJobs, Data: []model.Job{}}
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		comments = fetch(ctx, SourceComments, 0, func(ctx context.Context) (int64, error) {
			return a.sources.CountComments(ctx, viewerID)
		})
	})
	wg.Go(func() {
		interviews = fetch(ctx, SourceInterviews, []model.Interview{}, func(ctx context.Context) ([]model.Interview, error) {
			return a.sources.ListInterviews(ctx, store.InterviewFilter{Status: model.InterviewScheduled})
		})
	})
	wg.Go(func() {
		jobs = fetch(ctx, SourceJobs, []model.Job{}, func(ctx context.Context) ([]model.Job, error) {
			return a.sources.ListPostedJobs(ctx, viewerID)
		})
	})
	if r := wg.WaitAndRecover(); r != nil {
		// fetch recovers its own panics; this is a last resort.
		log.WithField(logger.ErrorTypeField, logger.ErrorTypePanic).Errorf("dashboard fetch panicked: %v", r.Value)
		return failedSummary(), nil
	}

	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	var (
		summary Summary
		pc      panics.Catcher
	)
	pc.Try(func() {
		summary = merge(comments, interviews, jobs)
	})
	if r := pc.Recovered(); r != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDashboard).Errorf("dashboard composition failed: %v", r.Value)
		return failedSummary(), nil
	}
	return summary, nil
}

// merge combines the three results. Nil data is treated as empty.
func merge(comments Result[int64], interviews Result[[]model.Interview], jobs Result[[]model.Job]) Summary {
	s := Summary{
		State:        Populated,
		CommentCount: comments.Data,
		Interviews:   interviews.Data,
		Jobs:         jobs.Data,
	}
	if s.Interviews == nil {
		s.Interviews = []model.Interview{}
	}
	if s.Jobs == nil {
		s.Jobs = []model.Job{}
	}
	s.InterviewCount = len(s.Interviews)
	s.FeedbackTotal = FeedbackTotal(s.Jobs)

	for _, failed := range []struct {
		source string
		failed bool
	}{
		{comments.Source, comments.Failed()},
		{interviews.Source, interviews.Failed()},
		{jobs.Source, jobs.Failed()},
	} {
		if failed.failed {
			s.FailedSources = append(s.FailedSources, failed.source)
			s.State = Degraded
		}
	}
	return s
}

// failedSummary is the empty summary shown when composition itself failed.
func failedSummary() Summary {
	return Summary{
		State:         Degraded,
		Interviews:    []model.Interview{},
		Jobs:          []model.Job{},
		FailedSources: []string{SourceComments, SourceInterviews, SourceJobs},
	}
}
