package routes

import (
	"samasya-be/controllers"
	"samasya-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AuthorityRoutes sets up the authority triage routes
func AuthorityRoutes(r *gin.Engine) {
	user := r.Group("/api/user")
	{
		user.GET("/issues", middlewares.AuthMiddleware(), controllers.GetIssuesByUser)
		user.PATCH("/area", middlewares.AuthMiddleware(), controllers.SetAuthorityArea)
	}

	authority := r.Group("/api/authority")
	{
		authority.GET("/dashboard", middlewares.AuthMiddleware(), controllers.AuthorityDashboard)
	}
}
