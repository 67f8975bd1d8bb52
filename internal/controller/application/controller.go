// Package application provides HTTP handlers for job applications and the
// reviewer comments left on them.
package application

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GameXcalibur/LynxATS/internal/controller"
	"github.com/GameXcalibur/LynxATS/internal/model"
	"github.com/GameXcalibur/LynxATS/internal/store"
	"github.com/GameXcalibur/LynxATS/internal/utilities"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB     store.Store
	Boards controller.BoardInvalidator
}

// NewApplicationController creates a new instance of ApplicationController.
func NewApplicationController(db store.Store, boards controller.BoardInvalidator) *ApplicationController {
	return &ApplicationController{
		DB:     db,
		Boards: boards,
	}
}

// commentRequest is the body of CreateComment
type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Apply submits a candidate's application to the job in the path. It is
// public: candidates have no account.
func (ac *ApplicationController) Apply(c *gin.Context) {
	var app model.Application
	if err := c.ShouldBindJSON(&app); err != nil {
		utilities.AbortWithBindError(c, err)
		return
	}

	// Server owned fields.
	app.ID = ""
	app.NoteAndFeedBack = nil

	if err := ac.DB.CreateApplication(c.Request.Context(), c.Param("id"), &app); err != nil {
		utilities.AbortWithStoreError(c, err, "Failed to create application")
		return
	}
	c.JSON(http.StatusCreated, app)
}

// GetApplication returns one application.
func (ac *ApplicationController) GetApplication(c *gin.Context) {
	app, err := ac.DB.GetApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		utilities.AbortWithStoreError(c, err, "Failed to retrieve application")
		return
	}
	c.JSON(http.StatusOK, app)
}

// CreateComment leaves the caller's feedback on the application in the path.
func (ac *ApplicationController) CreateComment(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utilities.AbortWithBindError(c, err)
		return
	}

	comment := model.Comment{
		Content:  req.Content,
		Sender:   user.ID,
		Receiver: c.Param("id"),
	}
	if err := ac.DB.CreateComment(c.Request.Context(), &comment); err != nil {
		utilities.AbortWithStoreError(c, err, "Failed to create comment")
		return
	}

	ac.Boards.Forget(user.ID)
	c.JSON(http.StatusCreated, comment)
}
