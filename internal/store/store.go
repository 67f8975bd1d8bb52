// Package store defines the persistence contract shared by the mongo and
// postgres backends.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/GameXcalibur/LynxATS/internal/model"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidReference is returned when a record points at a missing parent.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrDuplicate is returned when a unique field is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

// InterviewFilter narrows ListInterviews. Empty fields match everything.
type InterviewFilter struct {
	Status        model.InterviewStatus
	InterviewerID string
}

// Store is implemented by every storage backend. Each call acquires its
// database handle from the connection cache, so the first call of the
// process is the one that connects.
//
// Create methods assign an id when the record has none, set timestamps and
// push the new id into the parent's reference list.
type Store interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)

	// CreateJob pushes the job id into the author's postedJobs.
	CreateJob(ctx context.Context, job *model.Job) error
	// GetJob returns the job with its applications populated.
	GetJob(ctx context.Context, id string) (*model.Job, error)
	// ListPostedJobs returns the jobs authored by authorID, oldest first,
	// with applications populated.
	ListPostedJobs(ctx context.Context, authorID string) ([]model.Job, error)

	// CreateApplication pushes the application id into the job's applications.
	CreateApplication(ctx context.Context, jobID string, app *model.Application) error
	GetApplication(ctx context.Context, id string) (*model.Application, error)

	// CreateComment pushes the comment id into the receiving application's
	// noteAndFeedBack.
	CreateComment(ctx context.Context, comment *model.Comment) error
	// CountComments counts comments sent by senderID; "" counts all comments.
	CountComments(ctx context.Context, senderID string) (int64, error)

	// CreateInterview fails with ErrInvalidReference unless the job,
	// applicant and interviewer all exist.
	CreateInterview(ctx context.Context, interview *model.Interview) error
	ListInterviews(ctx context.Context, filter InterviewFilter) ([]model.Interview, error)
	UpdateInterviewStatus(ctx context.Context, id string, status model.InterviewStatus) (*model.Interview, error)

	// Drop removes every record and leaves the five collections empty.
	Drop(ctx context.Context) error
}

// Stamp fills in the id and timestamps of a new record.
func Stamp(id *string, createdAt, updatedAt *time.Time) {
	if *id == "" {
		*id = model.NewID()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
