package router

import (
	"github.com/chronodo/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the API exposes
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Team      *handler.TeamHandler
	Project   *handler.ProjectHandler
	Category  *handler.CategoryHandler
	TimeEntry *handler.TimeEntryHandler
	Timesheet *handler.TimesheetHandler
	Dashboard *handler.DashboardHandler
}

// Setup wires the full route table. requireManager guards the
// management surface; everything else only needs a valid token.
func Setup(engine *gin.Engine, h Handlers, requireManager gin.HandlerFunc) {
	api := engine.Group("/api/v1")

	api.GET("/health", h.System.Health)
	api.GET("/ping", h.System.Ping)

	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", h.Auth.Me)
		auth.POST("/change-password", h.Auth.ChangePassword)
	}

	users := api.Group("/users")
	{
		users.PUT("/me", h.User.UpdateProfile)
		users.GET("", requireManager, h.User.List)
		users.POST("", requireManager, h.User.Create)
		users.GET("/:id", requireManager, h.User.Get)
		users.PUT("/:id", requireManager, h.User.AdminUpdate)
		users.DELETE("/:id", requireManager, h.User.Delete)
	}

	teams := api.Group("/teams")
	{
		teams.GET("", h.Team.List)
		teams.GET("/:id", h.Team.Get)
		teams.POST("", requireManager, h.Team.Create)
		teams.PUT("/:id", requireManager, h.Team.Update)
		teams.DELETE("/:id", requireManager, h.Team.Delete)
		teams.POST("/:id/members", requireManager, h.Team.AddMember)
		teams.DELETE("/:id/members/:userId", requireManager, h.Team.RemoveMember)
	}

	projects := api.Group("/projects")
	{
		projects.GET("", h.Project.List)
		projects.GET("/:id", h.Project.Get)
		projects.POST("", requireManager, h.Project.Create)
		projects.PUT("/:id", requireManager, h.Project.Update)
		projects.POST("/:id/archive", requireManager, h.Project.Archive)
		projects.POST("/:id/restore", requireManager, h.Project.Restore)
		projects.DELETE("/:id", requireManager, h.Project.Delete)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", requireManager, h.Category.Create)
		categories.PUT("/:id", requireManager, h.Category.Update)
		categories.DELETE("/:id", requireManager, h.Category.Delete)
	}

	entries := api.Group("/time-entries")
	{
		entries.GET("", h.TimeEntry.List)
		entries.POST("", h.TimeEntry.Create)
		entries.DELETE("/:id", h.TimeEntry.Delete)
	}

	timesheets := api.Group("/timesheets")
	{
		timesheets.GET("", h.Timesheet.ListOwn)
		timesheets.POST("/submit", h.Timesheet.Submit)
		timesheets.GET("/review", requireManager, h.Timesheet.ReviewQueue)
		timesheets.POST("/:id/validate", requireManager, h.Timesheet.Validate)
		timesheets.POST("/:id/reject", requireManager, h.Timesheet.Reject)
	}

	dashboardGroup := api.Group("/dashboard")
	{
		dashboardGroup.GET("", h.Dashboard.Employee)
		dashboardGroup.GET("/by-project", h.Dashboard.ByProject)
		dashboardGroup.GET("/by-category", h.Dashboard.ByCategory)
		dashboardGroup.GET("/trend", h.Dashboard.Trend)
	}
}
