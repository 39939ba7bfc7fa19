package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/snap-point/activity-api/controllers"
)

func SetupPostRoutes(group *gin.RouterGroup, postController *controllers.PostController) {
	group.POST("/:id/posts", postController.CreatePost)
}
