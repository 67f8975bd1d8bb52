// Package pgstore implements store.Store on PostgreSQL through gorm.
// Reference lists are text[] columns grown with array_append.
package pgstore

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/GameXcalibur/LynxATS/internal/connection"
	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store"
)

// postgres error codes
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type Store struct {
	cache *connection.Cache[*gorm.DB]
}

var _ store.Store = (*Store)(nil)

func New(cache *connection.Cache[*gorm.DB]) *Store {
	return &Store{cache: cache}
}

func (s *Store) db(ctx context.Context) (*gorm.DB, error) {
	gdb, err := s.cache.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return gdb.WithContext(ctx), nil
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return errors.Wrap(store.ErrDuplicate, pgErr.Detail)
		case foreignKeyViolation:
			return errors.Wrap(store.ErrInvalidReference, pgErr.Detail)
		}
	}
	return err
}

// push appends id to column of the parent row inside tx. name labels the
// parent in the error when the row does not exist.
func push(tx *gorm.DB, parent interface{}, name, parentID, column, id string) error {
	res := tx.Model(parent).
		Where("id = ?", parentID).
		Updates(map[string]interface{}{
			column:       gorm.Expr("array_append("+column+", ?::text)", id),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(store.ErrInvalidReference, "%s %s", name, parentID)
	}
	return nil
}

func count(db *gorm.DB, value interface{}, query string, args ...interface{}) (int64, error) {
	var n int64
	err := db.Model(value).Where(query, args...).Count(&n).Error
	return n, err
}

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	store.Stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if user.PostedJobs == nil {
		user.PostedJobs = []string{}
	}

	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	return translate(db.Create(user).Error)
}

func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) CreateJob(ctx context.Context, job *model.Job) error {
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

	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	return translate(db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(job).Error; err != nil {
			return err
		}
		return push(tx, &model.User{}, "author", job.Author, "posted_jobs", job.ID)
	}))
}

// populate loads the applications of every job in one query.
func populate(db *gorm.DB, jobs []model.Job) error {
	ids := lo.Uniq(lo.FlatMap(jobs, func(j model.Job, _ int) []string { return j.ApplicationIDs }))
	apps := []model.Application{}
	if len(ids) > 0 {
		if err := db.Where("id IN ?", ids).Find(&apps).Error; err != nil {
			return err
		}
	}
	for i := range jobs {
		jobs[i].AttachApplications(apps)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*model.Job, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	var job model.Job
	if err := db.First(&job, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	jobs := []model.Job{job}
	if err := populate(db, jobs); err != nil {
		return nil, translate(err)
	}
	return &jobs[0], nil
}

func (s *Store) ListPostedJobs(ctx context.Context, authorID string) ([]model.Job, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	jobs := []model.Job{}
	if err := db.Where("author = ?", authorID).Order("created_at ASC, id ASC").Find(&jobs).Error; err != nil {
		return nil, translate(err)
	}
	if err := populate(db, jobs); err != nil {
		return nil, translate(err)
	}
	return jobs, nil
}

func (s *Store) CreateApplication(ctx context.Context, jobID string, app *model.Application) error {
	store.Stamp(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if app.NoteAndFeedBack == nil {
		app.NoteAndFeedBack = []string{}
	}

	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	return translate(db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return err
		}
		return push(tx, &model.Job{}, "job", jobID, "applications", app.ID)
	}))
}

func (s *Store) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	var app model.Application
	if err := db.First(&app, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (s *Store) CreateComment(ctx context.Context, comment *model.Comment) error {
	store.Stamp(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	return translate(db.Transaction(func(tx *gorm.DB) error {
		n, err := count(tx, &model.User{}, "id = ?", comment.Sender)
		if err != nil {
			return err
		}
		if n == 0 {
			return errors.Wrapf(store.ErrInvalidReference, "sender %s", comment.Sender)
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return push(tx, &model.Application{}, "receiver", comment.Receiver, "note_and_feed_back", comment.ID)
	}))
}

func (s *Store) CountComments(ctx context.Context, senderID string) (int64, error) {
	db, err := s.db(ctx)
	if err != nil {
		return 0, err
	}

	q := db.Model(&model.Comment{})
	if senderID != "" {
		q = q.Where("sender = ?", senderID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return n, nil
}

func (s *Store) CreateInterview(ctx context.Context, interview *model.Interview) error {
	if interview.ID == "" {
		interview.ID = model.NewID()
	}
	if interview.Status == "" {
		interview.Status = model.InterviewScheduled
	}

	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	return translate(db.Transaction(func(tx *gorm.DB) error {
		refs := []struct {
			value interface{}
			name  string
			id    string
		}{
			{&model.Job{}, "job", interview.Job},
			{&model.Application{}, "applicant", interview.Applicant},
			{&model.User{}, "interviewer", interview.Interviewer},
		}
		for _, ref := range refs {
			n, err := count(tx, ref.value, "id = ?", ref.id)
			if err != nil {
				return err
			}
			if n == 0 {
				return errors.Wrapf(store.ErrInvalidReference, "%s %q", ref.name, ref.id)
			}
		}
		return tx.Create(interview).Error
	}))
}

func (s *Store) ListInterviews(ctx context.Context, filter store.InterviewFilter) ([]model.Interview, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	q := db.Model(&model.Interview{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.InterviewerID != "" {
		q = q.Where("interviewer = ?", filter.InterviewerID)
	}

	out := []model.Interview{}
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (s *Store) UpdateInterviewStatus(ctx context.Context, id string, status model.InterviewStatus) (*model.Interview, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}

	res := db.Model(&model.Interview{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}

	var out model.Interview
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// Drop drops and re-creates every table.
func (s *Store) Drop(ctx context.Context) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	if err := db.Migrator().DropTable(model.MigrateAble...); err != nil {
		return errors.Wrap(err, "drop tables")
	}
	return errors.Wrap(db.AutoMigrate(model.MigrateAble...), "migrate")
}
