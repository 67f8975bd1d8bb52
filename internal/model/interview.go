package model

import (
	"fmt"
	"time"
)

// InterviewStatus is the lifecycle state of an interview
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
	InterviewCanceled  InterviewStatus = "canceled"
	InterviewRejected  InterviewStatus = "rejected"
)

// ParseInterviewStatus validates s against the known statuses.
func ParseInterviewStatus(s string) (InterviewStatus, error) {
	switch st := InterviewStatus(s); st {
	case InterviewScheduled, InterviewCompleted, InterviewCanceled, InterviewRejected:
		return st, nil
	}
	return "", fmt.Errorf("invalid interview status: %s", s)
}

// EditableInterviewInfo is the part of an interview supplied by the scheduler.
type EditableInterviewInfo struct {
	Job                string     `gorm:"type:text;not null;index" bson:"job" json:"job" binding:"required"`
	Applicant          string     `gorm:"type:text;not null;index" bson:"applicant" json:"applicant" binding:"required"`
	ScheduledDate      *time.Time `gorm:"type:timestamp" bson:"scheduledDate,omitempty" json:"scheduledDate,omitempty"`
	InterviewStartTime string     `gorm:"type:text" bson:"interviewStartTime,omitempty" json:"interviewStartTime,omitempty"`
	InterviewEndTime   string     `gorm:"type:text" bson:"interviewEndTime,omitempty" json:"interviewEndTime,omitempty"`
	Title              string     `gorm:"type:text" bson:"title,omitempty" json:"title,omitempty"`
	Description        string     `gorm:"type:text" bson:"description,omitempty" json:"description,omitempty"`
	Summary            string     `gorm:"type:text" bson:"summary,omitempty" json:"summary,omitempty"`
	Venue              string     `gorm:"type:text" bson:"venue,omitempty" json:"venue,omitempty"`
	Details            string     `gorm:"type:text" bson:"details,omitempty" json:"details,omitempty"`
	InviteLink         string     `gorm:"type:text" bson:"inviteLink,omitempty" json:"inviteLink,omitempty"`
}

// Interview links exactly one interviewer, applicant and job.
type Interview struct {
	ID          string `gorm:"primaryKey;type:text" bson:"_id" json:"_id"`
	Interviewer string `gorm:"type:text;not null;index" bson:"interviewer" json:"interviewer"`

	EditableInterviewInfo `bson:",inline"`

	Status InterviewStatus `gorm:"type:text;default:'scheduled';index;check:chk_interviews_status,status IN ('scheduled','completed','canceled','rejected')" bson:"status" json:"status"`
}
