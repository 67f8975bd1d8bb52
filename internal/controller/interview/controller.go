// Package interview provides HTTP handlers for scheduling interviews.
package interview

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GameXcalibur/LynxATS/internal/controller"
	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store"
	"github.com/GameXcalibur/LynxATS/internal/utilities"
)

// InterviewController handles interview endpoints
type InterviewController struct {
	DB     store.Store
	Boards controller.BoardInvalidator
}

// NewInterviewController creates a new instance of InterviewController
func NewInterviewController(db store.Store, boards controller.BoardInvalidator) *InterviewController {
	return &InterviewController{
		DB:     db,
		Boards: boards,
	}
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateInterview schedules an interview run by the caller.
func (ic *InterviewController) CreateInterview(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info model.EditableInterviewInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.AbortWithBindError(c, err)
		return
	}

	interview := model.Interview{
		Interviewer:           user.ID,
		EditableInterviewInfo: info,
		Status:                model.InterviewScheduled,
	}
	if err := ic.DB.CreateInterview(c.Request.Context(), &interview); err != nil {
		utilities.AbortWithStoreError(c, err, "Failed to create interview")
		return
	}

	ic.Boards.Forget(user.ID)
	c.JSON(http.StatusCreated, interview)
}

// ListInterviews returns interviews, optionally narrowed by the status and
// interviewer query parameters. interviewer=me names the caller.
func (ic *InterviewController) ListInterviews(c *gin.Context) {
	var filter store.InterviewFilter
	if s := c.Query("status"); s != "" {
		status, err := model.ParseInterviewStatus(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
			return
		}
		filter.Status = status
	}

	filter.InterviewerID = c.Query("interviewer")
	if filter.InterviewerID == "me" {
		user, err := utilities.ExtractUser(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
			return
		}
		filter.InterviewerID = user.ID
	}

	interviews, err := ic.DB.ListInterviews(c.Request.Context(), filter)
	if err != nil {
		utilities.AbortWithStoreError(c, err, "Failed to list interviews")
		return
	}
	c.JSON(http.StatusOK, interviews)
}

// UpdateStatus moves the interview in the path to another status.
func (ic *InterviewController) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.AbortWithBindError(c, err)
		return
	}
	status, err := model.ParseInterviewStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	interview, err := ic.DB.UpdateInterviewStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		utilities.AbortWithStoreError(c, err, "Failed to update interview")
		return
	}

	ic.Boards.Forget(interview.Interviewer)
	c.JSON(http.StatusOK, interview)
}
