package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/snap-point/activity-api/config"
	"github.com/snap-point/activity-api/controllers"
	"github.com/snap-point/activity-api/middleware"
)

// SetupResourceRoutes mounts CRUD for one resource. With auth enabled only the
// owner of a record may change or delete it.
func SetupResourceRoutes(group *gin.RouterGroup, res config.ResourceConfig, auth config.AuthConfig, resourceController *controllers.ResourceController) {
	group.POST("/create", resourceController.Create)
	group.GET("/", resourceController.List)
	group.GET("/:id", resourceController.Get)

	owner := []gin.HandlerFunc{}
	if auth.Enabled() {
		owner = append(owner, middleware.AuthMiddleware(auth.JWTSecret), middleware.OwnerOnly(res.Kind))
	}
	group.PUT("/:id", append(owner, resourceController.Update)...)
	group.DELETE("/:id", append(owner, resourceController.Delete)...)
}
