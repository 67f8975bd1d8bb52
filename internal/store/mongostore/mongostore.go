// Package mongostore implements store.Store on MongoDB.
package mongostore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/GameXcalibur/LynxATS/internal/connection"
	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store"
)

const (
	users        = "users"
	jobs         = "jobs"
	applications = "applications"
	comments     = "comments"
	interviews   = "interviews"
)

// Store reads and writes the five LynxATS collections of one database.
type Store struct {
	cache    *connection.Cache[*mongo.Client]
	database string
}

var _ store.Store = (*Store)(nil)

func New(cache *connection.Cache[*mongo.Client], database string) *Store {
	return &Store{cache: cache, database: database}
}

func (s *Store) db(ctx context.Context) (*mongo.Database, error) {
	client, err := s.cache.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(s.database), nil
}

func (s *Store) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(name), nil
}

// EnsureIndexes creates the indexes the queries rely on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		users: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		jobs: {
			{Keys: bson.D{{Key: "author", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		comments: {
			{Keys: bson.D{{Key: "sender", Value: 1}}},
			{Keys: bson.D{{Key: "receiver", Value: 1}}},
		},
		interviews: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "interviewer", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "create %s indexes", name)
		}
	}
	return nil
}

func (s *Store) exists(ctx context.Context, name, id string) (bool, error) {
	coll, err := s.collection(ctx, name)
	if err != nil {
		return false, err
	}
	n, err := coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// insertAndPush inserts doc into child, then appends its id to the field
// list of the parent document. The insert is undone when the parent has
// gone away in between.
func (s *Store) insertAndPush(ctx context.Context, child string, id string, doc interface{}, parent, parentID, field string) error {
	ok, err := s.exists(ctx, parent, parentID)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(store.ErrInvalidReference, "%s %s", parent, parentID)
	}

	childColl, err := s.collection(ctx, child)
	if err != nil {
		return err
	}
	if _, err := childColl.InsertOne(ctx, doc); err != nil {
		return err
	}

	parentColl, err := s.collection(ctx, parent)
	if err != nil {
		return err
	}
	res, err := parentColl.UpdateOne(ctx,
		bson.M{"_id": parentID},
		bson.M{
			"$push": bson.M{field: id},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
	if err == nil && res.MatchedCount == 0 {
		err = errors.Wrapf(store.ErrInvalidReference, "%s %s", parent, parentID)
	}
	if err != nil {
		_, _ = childColl.DeleteOne(ctx, bson.M{"_id": id})
		return err
	}
	return nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, id string) (*T, error) {
	var out T
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	store.Stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if user.PostedJobs == nil {
		user.PostedJobs = []string{}
	}

	coll, err := s.collection(ctx, users)
	if err != nil {
		return err
	}
	_, err = coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return errors.Wrapf(store.ErrDuplicate, "username %q", user.Username)
	}
	return err
}

func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	coll, err := s.collection(ctx, users)
	if err != nil {
		return nil, err
	}
	return findOne[model.User](ctx, coll, id)
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

	return s.insertAndPush(ctx, jobs, job.ID, job, users, job.Author, "postedJobs")
}

// populatedJobs runs match through a $lookup of the job applications.
// $lookup does not keep the order of the id array, so it is restored here.
func (s *Store) populatedJobs(ctx context.Context, match bson.M) ([]model.Job, error) {
	coll, err := s.collection(ctx, jobs)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         applications,
			"localField":   "applications",
			"foreignField": "_id",
			"as":           "populatedApplications",
		}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	out := []model.Job{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].AttachApplications(out[i].Applications)
	}
	return out, nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*model.Job, error) {
	found, err := s.populatedJobs(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, store.ErrNotFound
	}
	return &found[0], nil
}

func (s *Store) ListPostedJobs(ctx context.Context, authorID string) ([]model.Job, error) {
	return s.populatedJobs(ctx, bson.M{"author": authorID})
}

func (s *Store) CreateApplication(ctx context.Context, jobID string, app *model.Application) error {
	store.Stamp(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if app.NoteAndFeedBack == nil {
		app.NoteAndFeedBack = []string{}
	}
	return s.insertAndPush(ctx, applications, app.ID, app, jobs, jobID, "applications")
}

func (s *Store) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	coll, err := s.collection(ctx, applications)
	if err != nil {
		return nil, err
	}
	return findOne[model.Application](ctx, coll, id)
}

func (s *Store) CreateComment(ctx context.Context, comment *model.Comment) error {
	store.Stamp(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	ok, err := s.exists(ctx, users, comment.Sender)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(store.ErrInvalidReference, "sender %s", comment.Sender)
	}
	return s.insertAndPush(ctx, comments, comment.ID, comment, applications, comment.Receiver, "noteAndFeedBack")
}

func (s *Store) CountComments(ctx context.Context, senderID string) (int64, error) {
	coll, err := s.collection(ctx, comments)
	if err != nil {
		return 0, err
	}
	filter := bson.M{}
	if senderID != "" {
		filter["sender"] = senderID
	}
	return coll.CountDocuments(ctx, filter)
}

func (s *Store) CreateInterview(ctx context.Context, interview *model.Interview) error {
	if interview.ID == "" {
		interview.ID = model.NewID()
	}
	if interview.Status == "" {
		interview.Status = model.InterviewScheduled
	}

	refs := []struct{ coll, id string }{
		{jobs, interview.Job},
		{applications, interview.Applicant},
		{users, interview.Interviewer},
	}
	for _, ref := range refs {
		ok, err := s.exists(ctx, ref.coll, ref.id)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(store.ErrInvalidReference, "%s %q", ref.coll, ref.id)
		}
	}

	coll, err := s.collection(ctx, interviews)
	if err != nil {
		return err
	}
	_, err = coll.InsertOne(ctx, interview)
	return err
}

func (s *Store) ListInterviews(ctx context.Context, filter store.InterviewFilter) ([]model.Interview, error) {
	coll, err := s.collection(ctx, interviews)
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.InterviewerID != "" {
		query["interviewer"] = filter.InterviewerID
	}

	cursor, err := coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []model.Interview{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UpdateInterviewStatus(ctx context.Context, id string, status model.InterviewStatus) (*model.Interview, error) {
	coll, err := s.collection(ctx, interviews)
	if err != nil {
		return nil, err
	}

	var out model.Interview
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) Drop(ctx context.Context) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	for _, name := range model.Collections {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return errors.Wrapf(err, "drop %s", name)
		}
	}
	return EnsureIndexes(ctx, db)
}
