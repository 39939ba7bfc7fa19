package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/activity-api/attachments"
	"github.com/snap-point/activity-api/config"
	"github.com/snap-point/activity-api/controllers"
	"github.com/snap-point/activity-api/store"
	"go.uber.org/zap"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, st store.Store, files attachments.Storage, log *zap.Logger) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	validationController := controllers.NewValidationController(st, log)

	for _, res := range cfg.Resources {
		group := api.Group("/" + res.Name)
		{
			SetupResourceRoutes(group, res, cfg.Auth, controllers.NewResourceController(st, files, res, log))
			SetupPostRoutes(group, controllers.NewPostController(st, files, res, log))
			SetupUploadRoutes(group, controllers.NewUploadController(st, files, res, log))
			SetupAuthRoutes(group, controllers.NewAuthController(st, res, cfg.Auth, log))
			SetupValidationRoutes(group, validationController)
		}
	}
}
