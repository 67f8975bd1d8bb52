package application

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GameXcalibur/LynxATS/internal/auth"
	"github.com/GameXcalibur/LynxATS/internal/middleware"
	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store/storetest"
	"github.com/GameXcalibur/LynxATS/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type forgotten []string

func (f *forgotten) Forget(viewerID string) { *f = append(*f, viewerID) }

type fixture struct {
	r      *gin.Engine
	db     *storetest.Memory
	boards *forgotten
	token  string
	user   *model.User
	job    *model.Job
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	db := storetest.NewMemory()
	user := &model.User{Username: "reviewer"}
	require.NoError(t, db.CreateUser(ctx, user))
	job := &model.Job{Author: user.ID, EditableJobInfo: model.EditableJobInfo{JobTitle: "Data Analyst"}}
	require.NoError(t, db.CreateJob(ctx, job))

	tokens := auth.NewTestJWT(t)
	boards := &forgotten{}
	ac := NewApplicationController(db, boards)

	r := gin.New()
	r.POST("/jobs/:id/applications", ac.Apply)
	g := r.Group("/applications", middleware.RequireAuth(tokens, db))
	g.GET("/:id", ac.GetApplication)
	g.POST("/:id/comments", ac.CreateComment)

	return fixture{r: r, db: db, boards: boards, token: auth.GetAccessToken(t, tokens, user.ID), user: user, job: job}
}

func TestApply_Success(t *testing.T) {
	f := setup(t)

	body := gin.H{
		"_id":             "chosen-by-client",
		"name":            "Grace Hopper",
		"email":           "grace@example.com",
		"resume":          "https://files.example.com/grace.pdf",
		"noteAndFeedBack": []string{"forged"},
	}
	rec, resp := testutil.MakeJSONRequest(body, "", f.r, "/jobs/"+f.job.ID+"/applications", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Grace Hopper", resp["name"])
	assert.NotEqual(t, "chosen-by-client", resp["_id"])
	assert.Empty(t, resp["noteAndFeedBack"])

	job, err := f.db.GetJob(context.Background(), f.job.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{resp["_id"].(string)}, []string(job.ApplicationIDs))
}

func TestApply_InvalidBody(t *testing.T) {
	f := setup(t)

	rec, _ := testutil.MakeJSONRequest(gin.H{"name": "No Email"}, "", f.r, "/jobs/"+f.job.ID+"/applications", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{"name": "Bad", "email": "not-an-email"}, "", f.r, "/jobs/"+f.job.ID+"/applications", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApply_UnknownJob(t *testing.T) {
	f := setup(t)

	rec, resp := testutil.MakeJSONRequest(gin.H{"name": "Ada", "email": "ada@example.com"}, "", f.r, "/jobs/missing/applications", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Failed to create application")
}

func TestGetApplication(t *testing.T) {
	f := setup(t)
	app := &model.Application{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, f.db.CreateApplication(context.Background(), f.job.ID, app))

	rec, resp := testutil.MakeJSONRequest(nil, f.token, f.r, "/applications/"+app.ID, http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ada", resp["name"])

	rec, _ = testutil.MakeJSONRequest(nil, f.token, f.r, "/applications/missing", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateComment(t *testing.T) {
	f := setup(t)
	app := &model.Application{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, f.db.CreateApplication(context.Background(), f.job.ID, app))

	rec, resp := testutil.MakeJSONRequest(gin.H{"content": "Strong SQL"}, f.token, f.r, "/applications/"+app.ID+"/comments", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, f.user.ID, resp["sender"])
	assert.Equal(t, app.ID, resp["receiver"])
	assert.Equal(t, []string{f.user.ID}, []string(*f.boards))

	stored, err := f.db.GetApplication(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{resp["_id"].(string)}, []string(stored.NoteAndFeedBack))

	count, err := f.db.CountComments(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateComment_Errors(t *testing.T) {
	f := setup(t)

	rec, _ := testutil.MakeJSONRequest(gin.H{}, f.token, f.r, "/applications/any/comments", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{"content": "hi"}, f.token, f.r, "/applications/missing/comments", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{"content": "hi"}, "", f.r, "/applications/missing/comments", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Empty(t, *f.boards)
}
