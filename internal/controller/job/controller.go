// Package job provides HTTP handlers for job posting operations.
package job

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GameXcalibur/LynxATS/internal/controller"
	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store"
	"github.com/GameXcalibur/LynxATS/internal/utilities"
)

// JobController handles job posting endpoints
type JobController struct {
	DB     store.Store
	Boards controller.BoardInvalidator
}

// NewJobController creates a new instance of JobController
func NewJobController(db store.Store, boards controller.BoardInvalidator) *JobController {
	return &JobController{
		DB:     db,
		Boards: boards,
	}
}

// CreateJob posts a job authored by the caller.
func (jc *JobController) CreateJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info model.EditableJobInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.AbortWithBindError(c, err)
		return
	}

	job := model.Job{
		Author:                  user.ID,
		EditableJobInfo:         info,
		ListedAt:                time.Now().UnixMilli(),
		JobPostingOperationType: model.DefaultOperationType,
	}
	if err := jc.DB.CreateJob(c.Request.Context(), &job); err != nil {
		utilities.AbortWithStoreError(c, err, "Failed to create job")
		return
	}

	jc.Boards.Forget(user.ID)
	c.JSON(http.StatusCreated, job)
}

// GetJob returns one job with its applications populated.
func (jc *JobController) GetJob(c *gin.Context) {
	job, err := jc.DB.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		utilities.AbortWithStoreError(c, err, "Failed to retrieve job")
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListJobs returns the jobs posted by the caller, oldest first.
func (jc *JobController) ListJobs(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobs, err := jc.DB.ListPostedJobs(c.Request.Context(), user.ID)
	if err != nil {
		utilities.AbortWithStoreError(c, err, "Failed to list jobs")
		return
	}
	c.JSON(http.StatusOK, jobs)
}
