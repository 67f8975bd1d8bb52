// Package dashboard provides the HTTP handler of the reviewer dashboard.
package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GameXcalibur/LynxATS/internal/dashboard"
	"github.com/GameXcalibur/LynxATS/internal/utilities"
)

// Summarizer produces a viewer's dashboard.
type Summarizer interface {
	Summary(ctx context.Context, viewerID string) (dashboard.Summary, error)
}

// DashboardController handles the dashboard endpoint
type DashboardController struct {
	Boards Summarizer
}

func NewDashboardController(boards Summarizer) *DashboardController {
	return &DashboardController{Boards: boards}
}

// GetDashboard returns the caller's dashboard. Failed sources degrade the
// summary but never fail the request; the only failure is the request
// ending first.
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	summary, err := dc.Boards.Summary(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, utilities.ErrorResponse{
			Error: "Dashboard not ready: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, summary)
}
