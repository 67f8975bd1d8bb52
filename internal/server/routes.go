package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GameXcalibur/LynxATS/internal/auth"
	"github.com/GameXcalibur/LynxATS/internal/controller/application"
	dashboardcontroller "github.com/GameXcalibur/LynxATS/internal/controller/dashboard"
	"github.com/GameXcalibur/LynxATS/internal/controller/interview"
	"github.com/GameXcalibur/LynxATS/internal/controller/job"
	"github.com/GameXcalibur/LynxATS/internal/controller/user"
	"github.com/GameXcalibur/LynxATS/internal/health"
	"github.com/GameXcalibur/LynxATS/internal/metrics"
	"github.com/GameXcalibur/LynxATS/internal/middleware"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger(), middleware.SafeHeader())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.HTTP.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	reporter := health.NewReporter(s.db, s.started)
	r.GET("/api/health", reporter.Handler)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	lc := auth.NewLogoutController(s.tokens)
	uc := user.NewUserController()
	jc := job.NewJobController(s.db, s.boards)
	ac := application.NewApplicationController(s.db, s.boards)
	ic := interview.NewInterviewController(s.db, s.boards)
	dc := dashboardcontroller.NewDashboardController(s.boards)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.SizeLimit(s.cfg.HTTP.MaxBodyBytes))
	{
		// Candidates apply without an account, limited per client address.
		public := v1.Group("")
		public.Use(middleware.RateLimiterMiddleware(s.cfg.HTTP.RateLimitPerSecond))
		public.POST("/jobs/:id/applications", ac.Apply)

		// Reviewers are limited per user once authenticated.
		needAuth := v1.Group("")
		needAuth.Use(middleware.RequireAuth(s.tokens, s.db), middleware.RateLimiterMiddleware(s.cfg.HTTP.RateLimitPerSecond))
		{
			needAuth.POST("/auth/logout", lc.LogoutHandler)
			needAuth.GET("/users/me", uc.Me)

			jobRoute := needAuth.Group("/jobs")
			{
				jobRoute.POST("", jc.CreateJob)
				jobRoute.GET("", jc.ListJobs)
				jobRoute.GET("/:id", jc.GetJob)
			}

			applicationRoute := needAuth.Group("/applications")
			{
				applicationRoute.GET("/:id", ac.GetApplication)
				applicationRoute.POST("/:id/comments", ac.CreateComment)
			}

			interviewRoute := needAuth.Group("/interviews")
			{
				interviewRoute.POST("", ic.CreateInterview)
				interviewRoute.GET("", ic.ListInterviews)
				interviewRoute.PATCH("/:id/status", ic.UpdateStatus)
			}

			needAuth.GET("/dashboard", dc.GetDashboard)
		}
	}

	return r
}
