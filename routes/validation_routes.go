package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/snap-point/activity-api/controllers"
)

func SetupValidationRoutes(group *gin.RouterGroup, validationController *controllers.ValidationController) {
	group.GET("/exists/:uid", validationController.UIDExists)
}

func SetupAuthRoutes(group *gin.RouterGroup, authController *controllers.AuthController) {
	group.POST("/authenticate", authController.Authenticate)
}
