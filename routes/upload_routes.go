package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/snap-point/activity-api/controllers"
)

func SetupUploadRoutes(group *gin.RouterGroup, uploadController *controllers.UploadController) {
	group.POST("/:id/posts/:postId/image", uploadController.UploadImage)
}
