// Package seed fills a store with a fixed set of sample reviewers, jobs,
// applications, comments and interviews. Record ids are stable, so running
// it twice leaves a single copy.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store"
)

// Counts reports what a run created.
type Counts struct {
	Users        int
	Jobs         int
	Applications int
	Comments     int
	Interviews   int
}

func (c Counts) String() string {
	return fmt.Sprintf("users=%d jobs=%d applications=%d comments=%d interviews=%d",
		c.Users, c.Jobs, c.Applications, c.Comments, c.Interviews)
}

// JobID is the id given to Jobs[i].
func JobID(i int) string {
	return fmt.Sprintf("seed_job_%03d", i)
}

// ApplicationID is the id given to Applicants[i].
func ApplicationID(i int) string {
	return fmt.Sprintf("seed_applicant_%d", i)
}

// commentsFor is how many comments placement i gets.
func commentsFor(i int) int {
	if i%2 == 0 {
		return 2
	}
	return 1
}

// Run seeds s. Users that already exist are kept. A job that already
// exists is taken as seeded along with its applications, comments and
// interviews. now anchors interview dates.
func Run(ctx context.Context, s store.Store, now time.Time) (Counts, error) {
	var counts Counts

	for _, u := range Users {
		_, err := s.GetUser(ctx, u.ID)
		if err == nil {
			log.Infof("User %q already exists, skipping", u.Username)
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return counts, fmt.Errorf("failed to look up user %s: %w", u.ID, err)
		}

		user := u
		if err := s.CreateUser(ctx, &user); err != nil {
			return counts, fmt.Errorf("failed to create user %s: %w", u.ID, err)
		}
		counts.Users++
		log.Infof("Created user: %s", u.Name)
	}

	fresh := make([]bool, len(Jobs))
	for i, info := range Jobs {
		_, err := s.GetJob(ctx, JobID(i))
		if err == nil {
			log.Infof("Job %q already exists, skipping", info.JobTitle)
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return counts, fmt.Errorf("failed to look up job %s: %w", JobID(i), err)
		}

		author := Users[jobAuthors[i]]
		job := model.Job{
			ID:                      JobID(i),
			Author:                  author.ID,
			EditableJobInfo:         info,
			ListedAt:                now.UnixMilli(),
			JobPostingOperationType: model.DefaultOperationType,
		}
		job.IntegrationContext = "urn:li:organization:2414183"
		job.CompanyApplyURL = "https://lynxats.com/careers"
		job.ExternalJobPostingID = fmt.Sprintf("LYNX-%d", 1000+i)

		if err := s.CreateJob(ctx, &job); err != nil {
			return counts, fmt.Errorf("failed to create job %s: %w", job.ID, err)
		}
		fresh[i] = true
		counts.Jobs++
		log.Infof("Created job: %q (by %s)", info.JobTitle, author.Name)
	}

	comment := 0
	for i, p := range placements {
		if !fresh[p.job] {
			continue
		}

		app := Applicants[p.applicant]
		app.ID = ApplicationID(p.applicant)
		if err := s.CreateApplication(ctx, JobID(p.job), &app); err != nil {
			return counts, fmt.Errorf("failed to create application %s: %w", app.ID, err)
		}
		counts.Applications++
		log.Infof("%s applied to %q", app.Name, Jobs[p.job].JobTitle)

		for c := 0; c < commentsFor(i); c++ {
			reviewer := Users[(p.job+c)%len(Users)]
			cm := model.Comment{
				Content:  CommentTemplates[comment%len(CommentTemplates)],
				Sender:   reviewer.ID,
				Receiver: app.ID,
			}
			if err := s.CreateComment(ctx, &cm); err != nil {
				return counts, fmt.Errorf("failed to comment on %s: %w", app.ID, err)
			}
			comment++
			counts.Comments++
		}
	}

	for _, b := range bookings {
		p := placements[b.placement]
		if !fresh[p.job] {
			continue
		}

		start := time.Date(now.Year(), now.Month(), now.Day()+b.daysFromNow, 10, 0, 0, 0, time.UTC)
		end := start.Add(time.Hour)
		name := Applicants[p.applicant].Name
		title := Jobs[p.job].JobTitle

		venue := "Virtual (Google Meet)"
		if p.job%2 == 0 {
			venue = "Conference Room A, 4th Floor"
		}

		interview := model.Interview{
			ID:          fmt.Sprintf("seed_interview_%d", b.placement),
			Interviewer: Users[jobAuthors[p.job]].ID,
			EditableInterviewInfo: model.EditableInterviewInfo{
				Job:                JobID(p.job),
				Applicant:          ApplicationID(p.applicant),
				ScheduledDate:      &start,
				InterviewStartTime: "10:00 AM",
				InterviewEndTime:   end.Format(time.RFC3339),
				Title:              fmt.Sprintf("Interview: %s for %s", name, title),
				Description:        fmt.Sprintf("Technical interview round for the %s position.", title),
				Summary:            "Evaluate technical skills, cultural fit, and role-specific competencies.",
				Venue:              venue,
				Details:            "Please review the candidate's resume and portfolio before the interview. Prepare 2-3 technical questions relevant to the role.",
				InviteLink:         fmt.Sprintf("https://meet.google.com/seed-%d", 1000+b.placement),
			},
			Status: model.InterviewScheduled,
		}
		if err := s.CreateInterview(ctx, &interview); err != nil {
			return counts, fmt.Errorf("failed to create interview %s: %w", interview.ID, err)
		}
		counts.Interviews++
		log.Infof("Scheduled: %s for %s (%s)", name, title, start.Format("2006-01-02"))
	}

	return counts, nil
}
