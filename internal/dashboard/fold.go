package dashboard

import (
	"github.com/samber/lo"

	"github.com/GameXcalibur/LynxATS/internal/model"
)

// FeedbackTotal counts feedback entries over every application of every
// job: the sum over jobs of the sum over their applications of
// len(NoteAndFeedBack). Nil jobs, application lists and feedback lists
// count as zero. It runs in O(jobs + applications).
func FeedbackTotal(jobs []model.Job) int {
	return lo.SumBy(jobs, func(job model.Job) int {
		return lo.SumBy(job.Applications, func(app model.Application) int {
			return len(app.NoteAndFeedBack)
		})
	})
}
