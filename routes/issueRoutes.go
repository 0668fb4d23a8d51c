package routes

import (
	"samasya-be/controllers"
	"samasya-be/middlewares"

	"github.com/gin-gonic/gin"
)

// issuesPerUserPerDay caps how many issues one account may report in 24h.
const issuesPerUserPerDay = 5

// IssueRoutes sets up the issue routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issue")
	{
		issue.GET("/feed", controllers.GetAllIssues)
		issue.GET("/recent", controllers.RecentIssues)
		issue.POST("/create",
			middlewares.AuthMiddleware(),
			middlewares.IssueRateLimiter(issuesPerUserPerDay),
			controllers.CreateIssue)
		issue.GET("/:id", controllers.GetIssue)
		issue.GET("/:id/responses", controllers.GetIssueResponses)
		issue.PUT("/:id", middlewares.AuthMiddleware(), controllers.UpdateIssue)
		issue.DELETE("/:id", middlewares.AuthMiddleware(), controllers.DeleteIssue)
		issue.POST("/:id/like", middlewares.AuthMiddleware(), controllers.HandleLikeIssue)
		issue.POST("/:id/volunteer", middlewares.AuthMiddleware(), controllers.HandleVolunteerIssue)
		issue.PATCH("/:id/status", middlewares.AuthMiddleware(), controllers.TransitionStatus)
		issue.PATCH("/:id/response", middlewares.AuthMiddleware(), controllers.AmendResponse)
	}
}
